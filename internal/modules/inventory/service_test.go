package inventory

import (
	"context"
	"testing"

	"assetdesk/internal/domain"
	"assetdesk/internal/pkg/imagekit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, it *domain.InventoryItem) error {
	args := m.Called(ctx, it)
	if it != nil {
		it.ID = 101 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, it *domain.InventoryItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) CountActiveByItem(ctx context.Context, itemID int64) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPhotoStore struct {
	mock.Mock
}

func (m *MockPhotoStore) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockPhotoStore) Upload(ctx context.Context, data []byte, fileName string) (*imagekit.UploadResult, error) {
	args := m.Called(ctx, data, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*imagekit.UploadResult), args.Error(1)
}

func (m *MockPhotoStore) Delete(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Append(ctx context.Context, l *domain.AuditLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Broadcast(entityType string, entityID int64, action string) {
	m.Called(entityType, entityID, action)
}

func newTestService() (*Service, *MockItemRepository, *MockRequestRepository, *MockPhotoStore, *MockAuditRecorder) {
	items := new(MockItemRepository)
	requests := new(MockRequestRepository)
	photos := new(MockPhotoStore)
	audit := new(MockAuditRecorder)
	notifs := new(MockNotifier)

	audit.On("Append", mock.Anything, mock.Anything).Return(nil).Maybe()
	notifs.On("Broadcast", mock.Anything, mock.Anything, mock.Anything).Maybe()

	return NewService(items, requests, photos, audit, notifs), items, requests, photos, audit
}

func admin() *domain.User   { return &domain.User{ID: 1, Role: domain.RoleAdmin} }
func manager() *domain.User { return &domain.User{ID: 2, Role: domain.RoleManager} }
func staff() *domain.User   { return &domain.User{ID: 3, Role: domain.RoleStaff} }

func TestCreate_Success(t *testing.T) {
	svc, items, _, _, audit := newTestService()

	items.On("Create", mock.Anything, mock.Anything).Return(nil)

	it, err := svc.Create(context.Background(), manager(), CreateItemRequest{
		Name:     "Projector",
		Category: "electronics",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(101), it.ID)
	assert.Equal(t, domain.ItemAvailable, it.Status)
	assert.Equal(t, domain.ConditionGood, it.Condition)
	items.AssertExpectations(t)
	audit.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return l.Action == "created" && l.EntityType == domain.EntityItem && l.EntityID == 101
	}))
}

func TestCreate_MissingCategory(t *testing.T) {
	svc, items, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), admin(), CreateItemRequest{Name: "Projector"})

	assert.ErrorIs(t, err, ErrValidation)
	items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_StaffForbidden(t *testing.T) {
	svc, items, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), staff(), CreateItemRequest{
		Name:     "Projector",
		Category: "electronics",
	})

	assert.ErrorIs(t, err, ErrForbidden)
	items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_InvalidCondition(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), admin(), CreateItemRequest{
		Name:      "Projector",
		Category:  "electronics",
		Condition: "brand-new",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_PartialFieldsOnly(t *testing.T) {
	svc, items, _, _, _ := newTestService()

	items.On("GetByID", mock.Anything, int64(10)).Return(&domain.InventoryItem{
		ID:       10,
		Name:     "Projector",
		Category: "electronics",
		Location: "Room 2",
		Status:   domain.ItemAvailable,
	}, nil)
	items.On("Update", mock.Anything, mock.Anything).Return(nil)

	loc := "Room 5"
	it, err := svc.Update(context.Background(), manager(), 10, UpdateItemRequest{Location: &loc})

	assert.NoError(t, err)
	assert.Equal(t, "Room 5", it.Location)
	assert.Equal(t, "Projector", it.Name)
	assert.Equal(t, domain.ItemAvailable, it.Status)
}

func TestUpdate_StatusRequiresAdmin(t *testing.T) {
	svc, items, _, _, _ := newTestService()

	items.On("GetByID", mock.Anything, int64(10)).Return(&domain.InventoryItem{
		ID:     10,
		Name:   "Projector",
		Status: domain.ItemAvailable,
	}, nil)

	status := string(domain.ItemMaintenance)
	_, err := svc.Update(context.Background(), manager(), 10, UpdateItemRequest{Status: &status})

	assert.ErrorIs(t, err, ErrForbidden)
	items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_AdminCanSetStatus(t *testing.T) {
	svc, items, _, _, _ := newTestService()

	items.On("GetByID", mock.Anything, int64(10)).Return(&domain.InventoryItem{
		ID:     10,
		Name:   "Projector",
		Status: domain.ItemAvailable,
	}, nil)
	items.On("Update", mock.Anything, mock.Anything).Return(nil)

	status := string(domain.ItemMaintenance)
	it, err := svc.Update(context.Background(), admin(), 10, UpdateItemRequest{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, domain.ItemMaintenance, it.Status)
}

func TestDelete_BorrowedItemRefused(t *testing.T) {
	svc, items, _, _, _ := newTestService()

	items.On("GetByID", mock.Anything, int64(10)).Return(&domain.InventoryItem{
		ID:     10,
		Status: domain.ItemBorrowed,
	}, nil)

	err := svc.Delete(context.Background(), admin(), 10)

	assert.ErrorIs(t, err, ErrItemBorrowed)
	items.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_ActiveRequestRefused(t *testing.T) {
	svc, items, requests, _, _ := newTestService()

	items.On("GetByID", mock.Anything, int64(10)).Return(&domain.InventoryItem{
		ID:     10,
		Status: domain.ItemAvailable,
	}, nil)
	requests.On("CountActiveByItem", mock.Anything, int64(10)).Return(int64(1), nil)

	err := svc.Delete(context.Background(), admin(), 10)

	assert.ErrorIs(t, err, ErrItemBorrowed)
	items.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_Success(t *testing.T) {
	svc, items, requests, photos, audit := newTestService()

	items.On("GetByID", mock.Anything, int64(10)).Return(&domain.InventoryItem{
		ID:          10,
		Status:      domain.ItemAvailable,
		PhotoFileID: "fid-1",
	}, nil)
	requests.On("CountActiveByItem", mock.Anything, int64(10)).Return(int64(0), nil)
	items.On("Delete", mock.Anything, int64(10)).Return(nil)
	photos.On("Enabled").Return(true)
	photos.On("Delete", mock.Anything, "fid-1").Return(nil)

	err := svc.Delete(context.Background(), admin(), 10)

	assert.NoError(t, err)
	photos.AssertCalled(t, "Delete", mock.Anything, "fid-1")
	audit.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return l.Action == "deleted" && l.EntityID == 10
	}))
}

func TestDelete_ManagerForbidden(t *testing.T) {
	svc, items, _, _, _ := newTestService()

	err := svc.Delete(context.Background(), manager(), 10)

	assert.ErrorIs(t, err, ErrForbidden)
	items.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAttachPhoto_ReplacesPrevious(t *testing.T) {
	svc, items, _, photos, _ := newTestService()

	items.On("GetByID", mock.Anything, int64(10)).Return(&domain.InventoryItem{
		ID:          10,
		PhotoURL:    "https://ik.example/old.jpg",
		PhotoFileID: "fid-old",
	}, nil)
	photos.On("Upload", mock.Anything, []byte("img"), "new.jpg").Return(&imagekit.UploadResult{
		URL:    "https://ik.example/new.jpg",
		FileID: "fid-new",
	}, nil)
	items.On("Update", mock.Anything, mock.Anything).Return(nil)
	photos.On("Delete", mock.Anything, "fid-old").Return(nil)

	it, err := svc.AttachPhoto(context.Background(), manager(), 10, []byte("img"), "new.jpg")

	assert.NoError(t, err)
	assert.Equal(t, "https://ik.example/new.jpg", it.PhotoURL)
	assert.Equal(t, "fid-new", it.PhotoFileID)
	photos.AssertCalled(t, "Delete", mock.Anything, "fid-old")
}

func TestAttachPhoto_UploadErrorLeavesItemUntouched(t *testing.T) {
	svc, items, _, photos, _ := newTestService()

	items.On("GetByID", mock.Anything, int64(10)).Return(&domain.InventoryItem{ID: 10}, nil)
	photos.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(nil, imagekit.ErrFileTooLarge)

	_, err := svc.AttachPhoto(context.Background(), manager(), 10, []byte("img"), "big.jpg")

	assert.ErrorIs(t, err, imagekit.ErrFileTooLarge)
	items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRemovePhoto_NoPhoto(t *testing.T) {
	svc, items, _, _, _ := newTestService()

	items.On("GetByID", mock.Anything, int64(10)).Return(&domain.InventoryItem{ID: 10}, nil)

	_, err := svc.RemovePhoto(context.Background(), admin(), 10)

	assert.ErrorIs(t, err, ErrNoPhoto)
}

func TestRemovePhoto_Success(t *testing.T) {
	svc, items, _, photos, _ := newTestService()

	items.On("GetByID", mock.Anything, int64(10)).Return(&domain.InventoryItem{
		ID:          10,
		PhotoURL:    "https://ik.example/a.jpg",
		PhotoFileID: "fid-1",
	}, nil)
	items.On("Update", mock.Anything, mock.Anything).Return(nil)
	photos.On("Delete", mock.Anything, "fid-1").Return(nil)

	it, err := svc.RemovePhoto(context.Background(), admin(), 10)

	assert.NoError(t, err)
	assert.Empty(t, it.PhotoURL)
	assert.Empty(t, it.PhotoFileID)
}
