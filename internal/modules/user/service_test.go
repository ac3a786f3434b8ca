package user

import (
	"context"
	"testing"

	"assetdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 31 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) GetSubByID(ctx context.Context, id int64) (*domain.SubDepartment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubDepartment), args.Error(1)
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

func newTestService() (*Service, *MockRepository, *MockDepartmentRepository) {
	users := new(MockRepository)
	depts := new(MockDepartmentRepository)
	audit := new(MockAuditRecorder)
	notifs := new(MockNotifier)

	audit.On("Append", mock.Anything, mock.Anything).Return(nil).Maybe()
	notifs.On("Broadcast", mock.Anything, mock.Anything, mock.Anything).Maybe()

	return NewService(users, depts, audit, notifs), users, depts
}

func admin() *domain.User { return &domain.User{ID: 1, Role: domain.RoleAdmin} }
func staff() *domain.User { return &domain.User{ID: 3, Role: domain.RoleStaff} }

func TestCreate_GeneratesTemporaryPassword(t *testing.T) {
	svc, users, _ := newTestService()

	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	created, err := svc.Create(context.Background(), admin(), CreateUserRequest{
		Email: "New.Person@Example.com",
		Name:  "New Person",
		Role:  "staff",
	})

	assert.NoError(t, err)
	assert.Len(t, created.TemporaryPassword, 12)
	assert.Equal(t, "new.person@example.com", created.User.Email)

	// the stored hash must verify against the returned password
	err = bcrypt.CompareHashAndPassword([]byte(created.User.PasswordHash), []byte(created.TemporaryPassword))
	assert.NoError(t, err)
}

func TestCreate_InvalidRole(t *testing.T) {
	svc, users, _ := newTestService()

	_, err := svc.Create(context.Background(), admin(), CreateUserRequest{
		Email: "a@b.c",
		Name:  "A",
		Role:  "superuser",
	})

	assert.ErrorIs(t, err, ErrValidation)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_NonAdminForbidden(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), staff(), CreateUserRequest{
		Email: "a@b.c",
		Name:  "A",
		Role:  "staff",
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreate_SubDepartmentWithoutDepartment(t *testing.T) {
	svc, _, _ := newTestService()

	subID := int64(5)
	_, err := svc.Create(context.Background(), admin(), CreateUserRequest{
		Email:           "a@b.c",
		Name:            "A",
		Role:            "staff",
		SubDepartmentID: &subID,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_SubDepartmentOfOtherDepartment(t *testing.T) {
	svc, _, depts := newTestService()

	deptID, subID := int64(1), int64(5)
	depts.On("GetByID", mock.Anything, deptID).Return(&domain.Department{ID: 1}, nil)
	depts.On("GetSubByID", mock.Anything, subID).Return(&domain.SubDepartment{ID: 5, DepartmentID: 2}, nil)

	_, err := svc.Create(context.Background(), admin(), CreateUserRequest{
		Email:           "a@b.c",
		Name:            "A",
		Role:            "staff",
		DepartmentID:    &deptID,
		SubDepartmentID: &subID,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_DemoteLastAdminRefused(t *testing.T) {
	svc, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleAdmin}, nil)
	users.On("List", mock.Anything).Return([]domain.User{
		{ID: 1, Role: domain.RoleAdmin},
		{ID: 3, Role: domain.RoleStaff},
	}, nil)

	role := "staff"
	_, err := svc.Update(context.Background(), admin(), 1, UpdateUserRequest{Role: &role})

	assert.ErrorIs(t, err, ErrLastAdmin)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_DemoteWithSecondAdmin(t *testing.T) {
	svc, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleAdmin}, nil)
	users.On("List", mock.Anything).Return([]domain.User{
		{ID: 1, Role: domain.RoleAdmin},
		{ID: 2, Role: domain.RoleAdmin},
	}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	role := "manager"
	u, err := svc.Update(context.Background(), admin(), 1, UpdateUserRequest{Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleManager, u.Role)
}

func TestUpdate_MovingDepartmentClearsSubDepartment(t *testing.T) {
	svc, users, depts := newTestService()

	oldDept, oldSub := int64(1), int64(5)
	users.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{
		ID:              3,
		Role:            domain.RoleStaff,
		DepartmentID:    &oldDept,
		SubDepartmentID: &oldSub,
	}, nil)
	depts.On("GetByID", mock.Anything, int64(2)).Return(&domain.Department{ID: 2}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	newDept := int64(2)
	u, err := svc.Update(context.Background(), admin(), 3, UpdateUserRequest{DepartmentID: &newDept})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), *u.DepartmentID)
	assert.Nil(t, u.SubDepartmentID)
}

func TestDelete_Self(t *testing.T) {
	svc, users, _ := newTestService()

	err := svc.Delete(context.Background(), admin(), 1)

	assert.ErrorIs(t, err, ErrSelfDeletion)
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_NotFound(t *testing.T) {
	svc, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), admin(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_Success(t *testing.T) {
	svc, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3, Role: domain.RoleStaff, Email: "a@b.c"}, nil)
	users.On("Delete", mock.Anything, int64(3)).Return(nil)

	err := svc.Delete(context.Background(), admin(), 3)

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestResetPassword_UpdatesHash(t *testing.T) {
	svc, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3, Role: domain.RoleStaff}, nil)
	users.On("UpdatePassword", mock.Anything, int64(3), mock.Anything).Return(nil)

	created, err := svc.ResetPassword(context.Background(), admin(), 3)

	assert.NoError(t, err)
	assert.Len(t, created.TemporaryPassword, 12)
	users.AssertCalled(t, "UpdatePassword", mock.Anything, int64(3), mock.Anything)
}
