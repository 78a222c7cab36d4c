// database/migrate.go
package database

import (
	"repair-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MasterMaterial{},
		&models.AllocationRun{},
		&models.AllocationResult{},
		&models.FileLog{},
	)
}
