// database/seeder.go
package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"repair-app/models"
)

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
	SeedMasterMaterials(db)
}

func SeedUserMaster(db *gorm.DB) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash default password: %v", err)
	}

	admin := models.User{
		Username: "admin",
		Password: string(hashed),
		Name:     "Administrator",
		Email:    "admin@local",
		Role:     "admin",
	}

	var existing models.User
	if err := db.Where("username = ?", admin.Username).First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&admin).Error; err != nil {
				log.Fatalf("Failed to create admin user: %v", err)
			}
		} else {
			log.Fatalf("Unexpected DB error: %v", err)
		}
	}
}

func SeedMasterMaterials(db *gorm.DB) {
	materials := []models.MasterMaterial{
		{Material: "MISCELENEOUS - SECURING DEVICE / OTHER MATERIAL REMOVE", MhrSpil: 0.5, MhrVendor: 0.5, CostMaterial: 0},
		{Material: "CROSS MEMBER - INSERT 30 CM", MhrSpil: 2.0, MhrVendor: 2.0, CostMaterial: 45000, Surcharge: 5000},
		{Material: "FORKLIFT POCKET - WEB STRAIGHTEN", MhrSpil: 1.0, MhrVendor: 1.0, CostMaterial: 0},
		{Material: "SIDE PANEL - STRAIGHTEN AND WELD 30 CM", MhrSpil: 1.5, MhrVendor: 1.5, CostMaterial: 25000},
		{Material: "ROOF PANEL STRAIGHTEN AND WELD 30 CM", MhrSpil: 1.5, MhrVendor: 1.5, CostMaterial: 25000},
		{Material: "SIDE PANEL - STRAIGHTEN 30 X 90 CM", MhrSpil: 2.0, MhrVendor: 2.0, CostMaterial: 0},
	}

	for _, m := range materials {
		var existing models.MasterMaterial
		if err := db.Where("material = ?", m.Material).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				db.Create(&m)
			}
		}
	}
}
