package pricing

// MaterialSpec adalah satu baris master material: faktor jam kerja,
// harga material, dan surcharge untuk satu kode material.
type MaterialSpec struct {
	MhrSpil      float64 `json:"mhr_spil"`
	MhrVendor    float64 `json:"mhr_vendor"`
	CostMaterial float64 `json:"cost_material"`
	Surcharge    float64 `json:"surcharge"`
}

// MaterialCatalog menyediakan lookup master material. Material yang tidak
// ada harus dibedakan dari material dengan nilai nol (ok == false memicu
// warning di engine).
type MaterialCatalog interface {
	Lookup(material string) (MaterialSpec, bool)
}

// MemoryCatalog adalah MaterialCatalog berbasis map, dipakai untuk test dan
// untuk snapshot master material yang diambil dari database sebelum satu
// run kalkulasi.
type MemoryCatalog map[string]MaterialSpec

func (m MemoryCatalog) Lookup(material string) (MaterialSpec, bool) {
	spec, ok := m[material]
	return spec, ok
}
