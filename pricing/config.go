package pricing

// Config menyimpan aturan harga vendor per depo. Nilainya dibuat sekali
// lewat DefaultConfig dan tidak boleh diubah setelah engine dibuat.
type Config struct {
	// Daftar vendor yang tersedia per depo, urutannya dipakai untuk
	// output dan tie-break alokasi.
	DepotVendors map[string][]string

	// Tarif labour flat per vendor.
	LaborRates map[string]float64

	// Tarif khusus SPIL untuk depo JKT (menimpa LaborRates["SPIL"]).
	SpilJakartaRate float64

	// Vendor yang dikenakan surcharge dari master material.
	SurchargeVendors map[string]bool

	// Grade kontainer yang boleh dikerjakan per depo per vendor.
	ValidGrades map[string]map[string][]string

	// Vendor utama yang jadi acuan alokasi.
	PrimaryVendor string
}

func DefaultConfig() Config {
	return Config{
		DepotVendors: map[string][]string{
			"SBY": {"MTCP", "SPIL"},
			"JKT": {"MDS", "SPIL", "MDSBC", "MACBC", "PTMAC", "MCPNL", "MCPCONCH"},
		},
		LaborRates: map[string]float64{
			"MACBC":    29000,
			"MCPCONCH": 29000,
			"MCPNL":    15000,
			"MDS":      29000,
			"MDSBC":    29000,
			"MTCP":     15000,
			"PTMAC":    29000,
			"SPIL":     14000,
		},
		SpilJakartaRate: 21500,
		SurchargeVendors: map[string]bool{
			"MCPCONCH": true,
			"MCPNL":    true,
			"MDS":      true,
			"MTCP":     true,
			"PTMAC":    true,
		},
		ValidGrades: map[string]map[string][]string{
			"JKT": {
				"MDS":      {"A", "Others"},
				"SPIL":     {"A", "B", "C", "Others"},
				"MDSBC":    {"B", "C", "Others"},
				"MACBC":    {"B", "C", "Others"},
				"PTMAC":    {"A", "Others"},
				"MCPNL":    {"A", "B", "C", "Others"},
				"MCPCONCH": {"B", "C", "Others"},
			},
			"SBY": {
				"MTCP": {"A", "B", "C", "Others"},
				"SPIL": {"A", "B", "C", "Others"},
			},
		},
		PrimaryVendor: "SPIL",
	}
}

// Vendors mengembalikan daftar vendor untuk sebuah depo. Depo yang tidak
// terdaftar menghasilkan slice kosong, bukan error.
func (c Config) Vendors(depot string) []string {
	return c.DepotVendors[depot]
}

// OtherVendors mengembalikan vendor selain vendor utama untuk sebuah depo.
func (c Config) OtherVendors(depot string) []string {
	vendors := c.DepotVendors[depot]
	others := make([]string, 0, len(vendors))
	for _, v := range vendors {
		if v != c.PrimaryVendor {
			others = append(others, v)
		}
	}
	return others
}

// LaborRate memilih tarif labour untuk kombinasi depo dan vendor.
func (c Config) LaborRate(depot, vendor string) float64 {
	if vendor == c.PrimaryVendor && depot == "JKT" {
		return c.SpilJakartaRate
	}
	return c.LaborRates[vendor]
}

// GradeAllowed mengecek apakah vendor boleh mengerjakan grade tersebut di
// depo yang dipilih.
func (c Config) GradeAllowed(depot, vendor, grade string) bool {
	for _, g := range c.ValidGrades[depot][vendor] {
		if g == grade {
			return true
		}
	}
	return false
}
