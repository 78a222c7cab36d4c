package pricing

// LineItem adalah satu baris kerusakan/material dari EOR. Grade dan tipe
// kontainer sudah harus terisi sebelum masuk engine (hasil klasifikasi
// nomor kontainer atau input manual).
type LineItem struct {
	OrderID        string  `json:"order_id"`
	Depot          string  `json:"depot"`
	ContainerType  string  `json:"container_type"`
	ContainerGrade string  `json:"container_grade"`
	Material       string  `json:"material"`
	Qty            float64 `json:"qty"`
}

// VendorEstimate adalah hasil kalkulasi satu vendor untuk satu EOR.
// Field nil berarti tidak terdefinisi: vendor tidak eligible untuk grade
// tersebut, atau (khusus Ratio) total MHR nol.
type VendorEstimate struct {
	Cost  *float64 `json:"cost"`
	Mhr   *float64 `json:"mhr"`
	Ratio *float64 `json:"ratio"`
}

// CostRecord adalah satu baris hasil per EOR dengan estimasi semua vendor
// yang tersedia di deponya.
type CostRecord struct {
	OrderID        string                    `json:"order_id"`
	Depot          string                    `json:"depot"`
	ContainerType  string                    `json:"container_type"`
	ContainerGrade string                    `json:"container_grade"`
	WarningCount   int                       `json:"warning_count"`
	Vendors        map[string]VendorEstimate `json:"vendors"`
}

// CostEngine menghitung estimasi biaya perbaikan per EOR per vendor.
// Konfigurasi dan katalog di-inject saat pembuatan dan tidak berubah.
type CostEngine struct {
	cfg     Config
	catalog MaterialCatalog
}

func NewCostEngine(cfg Config, catalog MaterialCatalog) *CostEngine {
	return &CostEngine{cfg: cfg, catalog: catalog}
}

type vendorTotals struct {
	mhr  float64
	cost float64
}

// PriceOrders menghitung satu CostRecord per EOR. Urutan output mengikuti
// urutan kemunculan pertama EOR di input, supaya hasil selalu identik
// untuk input yang sama.
//
// Per baris: biaya = qty * (mhr * tarif + harga material + surcharge).
// Total MHR per vendor dijumlahkan per baris TANPA dikali qty; ini
// mengikuti perhitungan bisnis yang berjalan, jangan "diperbaiki".
func (e *CostEngine) PriceOrders(items []LineItem) []CostRecord {
	records := make([]CostRecord, 0)
	index := make(map[string]int)
	totals := make(map[string]map[string]*vendorTotals)

	for _, item := range items {
		pos, seen := index[item.OrderID]
		if !seen {
			pos = len(records)
			index[item.OrderID] = pos
			records = append(records, CostRecord{
				OrderID:        item.OrderID,
				Depot:          item.Depot,
				ContainerType:  item.ContainerType,
				ContainerGrade: item.ContainerGrade,
				Vendors:        make(map[string]VendorEstimate),
			})
			totals[item.OrderID] = make(map[string]*vendorTotals)
		}

		spec, found := e.catalog.Lookup(item.Material)
		if !found {
			// Material tidak dikenal: tetap dihitung dengan komponen nol,
			// hanya dicatat sebagai warning.
			records[pos].WarningCount++
		}

		for _, vendor := range e.cfg.Vendors(item.Depot) {
			mhr := spec.MhrVendor
			if vendor == e.cfg.PrimaryVendor {
				mhr = spec.MhrSpil
			}
			surcharge := 0.0
			if e.cfg.SurchargeVendors[vendor] {
				surcharge = spec.Surcharge
			}
			rate := e.cfg.LaborRate(item.Depot, vendor)

			t := totals[item.OrderID][vendor]
			if t == nil {
				t = &vendorTotals{}
				totals[item.OrderID][vendor] = t
			}
			t.mhr += mhr
			t.cost += item.Qty * (mhr*rate + spec.CostMaterial + surcharge)
		}
	}

	for i := range records {
		rec := &records[i]
		for _, vendor := range e.cfg.Vendors(rec.Depot) {
			estimate := VendorEstimate{}
			t := totals[rec.OrderID][vendor]
			if t != nil && e.cfg.GradeAllowed(rec.Depot, vendor, rec.ContainerGrade) {
				estimate.Cost = f64(t.cost)
				estimate.Mhr = f64(t.mhr)
				if t.mhr > 0 {
					estimate.Ratio = f64(t.cost / t.mhr)
				}
			}
			rec.Vendors[vendor] = estimate
		}
	}

	return records
}

func f64(v float64) *float64 {
	return &v
}
