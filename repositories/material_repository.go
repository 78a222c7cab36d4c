package repositories

import (
	"strings"

	"gorm.io/gorm"

	"repair-app/models"
	"repair-app/pricing"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) GetAll() ([]models.MasterMaterial, error) {
	var materials []models.MasterMaterial
	err := r.DB.Order("material asc").Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) GetByID(id uint) (*models.MasterMaterial, error) {
	var material models.MasterMaterial
	if err := r.DB.First(&material, id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) Create(material *models.MasterMaterial) error {
	material.Material = strings.TrimSpace(material.Material)
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) Update(material *models.MasterMaterial) error {
	material.Material = strings.TrimSpace(material.Material)
	return r.DB.Save(material).Error
}

func (r *MaterialRepository) Delete(id uint) error {
	return r.DB.Delete(&models.MasterMaterial{}, id).Error
}

// Upsert membuat atau memperbarui material berdasarkan kode materialnya.
// Mengembalikan true kalau baris baru dibuat.
func (r *MaterialRepository) Upsert(material *models.MasterMaterial) (bool, error) {
	material.Material = strings.TrimSpace(material.Material)

	var existing models.MasterMaterial
	err := r.DB.Where("material = ?", material.Material).First(&existing).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return true, r.DB.Create(material).Error
		}
		return false, err
	}

	existing.MhrSpil = material.MhrSpil
	existing.MhrVendor = material.MhrVendor
	existing.CostMaterial = material.CostMaterial
	existing.Surcharge = material.Surcharge
	existing.UpdatedBy = material.UpdatedBy
	return false, r.DB.Save(&existing).Error
}

// LoadCatalog mengambil snapshot seluruh master material untuk satu run
// kalkulasi. Kode material di-trim supaya pencocokan konsisten dengan
// input upload.
func (r *MaterialRepository) LoadCatalog() (pricing.MemoryCatalog, error) {
	materials, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	catalog := make(pricing.MemoryCatalog, len(materials))
	for _, m := range materials {
		catalog[strings.TrimSpace(m.Material)] = pricing.MaterialSpec{
			MhrSpil:      m.MhrSpil,
			MhrVendor:    m.MhrVendor,
			CostMaterial: m.CostMaterial,
			Surcharge:    m.Surcharge,
		}
	}
	return catalog, nil
}
