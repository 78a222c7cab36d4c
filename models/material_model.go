package models

import "gorm.io/gorm"

// MasterMaterial adalah master harga material perbaikan kontainer.
// Satu baris per kode material.
type MasterMaterial struct {
	gorm.Model
	Material     string  `json:"material" gorm:"unique;not null"`
	MhrSpil      float64 `json:"mhr_spil" gorm:"default:0"`
	MhrVendor    float64 `json:"mhr_vendor" gorm:"default:0"`
	CostMaterial float64 `json:"cost_material" gorm:"default:0"`
	Surcharge    float64 `json:"surcharge" gorm:"default:0"`
	CreatedBy    int
	UpdatedBy    int
}
