package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the repositories read and write.
// Used by cmd/seed and the test suites; production deployments run the same
// schema through it at startup.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&itemModel{},
		&requestModel{},
		&departmentModel{},
		&subDepartmentModel{},
		&auditLogModel{},
	)
}
