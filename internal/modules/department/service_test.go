package department

import (
	"context"
	"testing"

	"assetdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gorm.io/gorm"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, d *domain.Department) error {
	args := m.Called(ctx, d)
	if d != nil {
		d.ID = 11 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, d *domain.Department) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CreateSub(ctx context.Context, sd *domain.SubDepartment) error {
	args := m.Called(ctx, sd)
	if sd != nil {
		sd.ID = 21
	}
	return args.Error(0)
}

func (m *MockRepository) GetSubByID(ctx context.Context, id int64) (*domain.SubDepartment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubDepartment), args.Error(1)
}

func (m *MockRepository) UpdateSub(ctx context.Context, sd *domain.SubDepartment) error {
	args := m.Called(ctx, sd)
	return args.Error(0)
}

func (m *MockRepository) ListSubs(ctx context.Context) ([]domain.SubDepartment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubDepartment), args.Error(1)
}

func (m *MockRepository) ListSubsByDepartment(ctx context.Context, departmentID int64) ([]domain.SubDepartment, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubDepartment), args.Error(1)
}

func (m *MockRepository) DeleteSub(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.User, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
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

func newTestService() (*Service, *MockRepository, *MockAuditRecorder) {
	repo := new(MockRepository)
	users := new(MockUserRepository)
	audit := new(MockAuditRecorder)
	notifs := new(MockNotifier)

	users.On("ListByDepartment", mock.Anything, mock.Anything).Return([]domain.User{}, nil).Maybe()
	audit.On("Append", mock.Anything, mock.Anything).Return(nil).Maybe()
	notifs.On("Broadcast", mock.Anything, mock.Anything, mock.Anything).Maybe()

	return NewService(repo, users, audit, notifs), repo, audit
}

func admin() *domain.User { return &domain.User{ID: 1, Role: domain.RoleAdmin} }
func staff() *domain.User { return &domain.User{ID: 3, Role: domain.RoleStaff} }

func TestCreate_Success(t *testing.T) {
	svc, repo, audit := newTestService()

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	d, err := svc.Create(context.Background(), admin(), CreateDepartmentRequest{Name: "Engineering"})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), d.ID)
	audit.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return l.EntityType == domain.EntityDepartment && l.Action == "created"
	}))
}

func TestCreate_NonAdminForbidden(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.Create(context.Background(), staff(), CreateDepartmentRequest{Name: "Engineering"})

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_EmptyName(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), admin(), CreateDepartmentRequest{Name: "  "})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestList_GroupsSubDepartments(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.On("List", mock.Anything).Return([]domain.Department{
		{ID: 1, Name: "Engineering"},
		{ID: 2, Name: "Operations"},
	}, nil)
	repo.On("ListSubs", mock.Anything).Return([]domain.SubDepartment{
		{ID: 10, DepartmentID: 1, Name: "Platform"},
		{ID: 11, DepartmentID: 1, Name: "QA"},
	}, nil)

	views, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Len(t, views[0].SubDepartments, 2)
	assert.Empty(t, views[1].SubDepartments)
}

func TestDelete_NotFound(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.On("Delete", mock.Anything, int64(99)).Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), admin(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_Success(t *testing.T) {
	svc, repo, audit := newTestService()

	repo.On("Delete", mock.Anything, int64(1)).Return(nil)

	err := svc.Delete(context.Background(), admin(), 1)

	assert.NoError(t, err)
	audit.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return l.Action == "deleted" && l.EntityID == 1
	}))
}

func TestCreateSub_ParentMustExist(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateSub(context.Background(), admin(), CreateSubDepartmentRequest{
		DepartmentID: 7,
		Name:         "Platform",
	})

	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "CreateSub", mock.Anything, mock.Anything)
}

func TestCreateSub_Success(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Department{ID: 1, Name: "Engineering"}, nil)
	repo.On("CreateSub", mock.Anything, mock.Anything).Return(nil)

	sd, err := svc.CreateSub(context.Background(), admin(), CreateSubDepartmentRequest{
		DepartmentID: 1,
		Name:         "Platform",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(21), sd.ID)
	assert.Equal(t, int64(1), sd.DepartmentID)
}

func TestUpdateSub_RenameKeepsParent(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.On("GetSubByID", mock.Anything, int64(21)).Return(&domain.SubDepartment{
		ID:           21,
		DepartmentID: 1,
		Name:         "Platform",
	}, nil)
	repo.On("UpdateSub", mock.Anything, mock.Anything).Return(nil)

	name := "Infrastructure"
	sd, err := svc.UpdateSub(context.Background(), admin(), 21, UpdateSubDepartmentRequest{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "Infrastructure", sd.Name)
	assert.Equal(t, int64(1), sd.DepartmentID)
}

func TestUpdateSub_EmptyName(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.On("GetSubByID", mock.Anything, int64(21)).Return(&domain.SubDepartment{ID: 21, DepartmentID: 1, Name: "Platform"}, nil)

	name := "  "
	_, err := svc.UpdateSub(context.Background(), admin(), 21, UpdateSubDepartmentRequest{Name: &name})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "UpdateSub", mock.Anything, mock.Anything)
}
