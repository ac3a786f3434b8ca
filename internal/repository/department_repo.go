package repository

import (
	"context"
	"time"

	"assetdesk/internal/domain"

	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

type departmentModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (departmentModel) TableName() string { return "departments" }

type subDepartmentModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	DepartmentID int64     `gorm:"column:department_id;index"`
	Name         string    `gorm:"column:name"`
	Description  string    `gorm:"column:description"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (subDepartmentModel) TableName() string { return "sub_departments" }

func toDomainDepartment(m departmentModel) *domain.Department {
	return &domain.Department{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDomainSubDepartment(m subDepartmentModel) *domain.SubDepartment {
	return &domain.SubDepartment{
		ID:           m.ID,
		DepartmentID: m.DepartmentID,
		Name:         m.Name,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *DepartmentRepository) Create(ctx context.Context, d *domain.Department) error {
	m := departmentModel{Name: d.Name, Description: d.Description}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainDepartment(m)
	return nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var m departmentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDepartment(m), nil
}

func (r *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var ms []departmentModel
	tx := r.db.WithContext(ctx).Order("name").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Department, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainDepartment(m))
	}
	return out, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, d *domain.Department) error {
	m := departmentModel{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   time.Now(),
	}
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainDepartment(m)
	return nil
}

// Delete removes a department together with its sub-departments in one
// transaction. Users assigned to the department are not touched; their
// department reference is left dangling on purpose.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&departmentModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("department_id = ?", id).Delete(&subDepartmentModel{}).Error
	})
}

func (r *DepartmentRepository) CreateSub(ctx context.Context, sd *domain.SubDepartment) error {
	m := subDepartmentModel{
		DepartmentID: sd.DepartmentID,
		Name:         sd.Name,
		Description:  sd.Description,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*sd = *toDomainSubDepartment(m)
	return nil
}

func (r *DepartmentRepository) UpdateSub(ctx context.Context, sd *domain.SubDepartment) error {
	m := subDepartmentModel{
		ID:           sd.ID,
		DepartmentID: sd.DepartmentID,
		Name:         sd.Name,
		Description:  sd.Description,
		CreatedAt:    sd.CreatedAt,
		UpdatedAt:    time.Now(),
	}
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*sd = *toDomainSubDepartment(m)
	return nil
}

func (r *DepartmentRepository) GetSubByID(ctx context.Context, id int64) (*domain.SubDepartment, error) {
	var m subDepartmentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSubDepartment(m), nil
}

func (r *DepartmentRepository) ListSubs(ctx context.Context) ([]domain.SubDepartment, error) {
	var ms []subDepartmentModel
	tx := r.db.WithContext(ctx).Order("name").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.SubDepartment, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainSubDepartment(m))
	}
	return out, nil
}

func (r *DepartmentRepository) ListSubsByDepartment(ctx context.Context, departmentID int64) ([]domain.SubDepartment, error) {
	var ms []subDepartmentModel
	tx := r.db.WithContext(ctx).Where("department_id = ?", departmentID).Order("name").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.SubDepartment, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainSubDepartment(m))
	}
	return out, nil
}

func (r *DepartmentRepository) DeleteSub(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&subDepartmentModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
