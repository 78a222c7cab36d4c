package allocation

// Budget adalah kapasitas satu vendor untuk satu hari: jumlah slot
// kontainer dan total MHR yang tersedia.
type Budget struct {
	Units float64 `json:"units"`
	Mhr   float64 `json:"mhr"`
}

// budgetState adalah sisa kapasitas yang dikurangi selama satu run alokasi.
// Dimensi yang filternya dimatikan dianggap tak terbatas.
type budgetState struct {
	useUnits bool
	useMhr   bool
	units    float64
	mhr      float64
}

func newBudgetState(b Budget, useUnits, useMhr bool) *budgetState {
	return &budgetState{
		useUnits: useUnits,
		useMhr:   useMhr,
		units:    b.Units,
		mhr:      b.Mhr,
	}
}

// admit mengecek sisa kapasitas untuk satu EOR dan langsung menguranginya
// kalau cukup. Kedua dimensi harus lolos sekaligus.
func (b *budgetState) admit(mhrNeeded float64) bool {
	if b.useUnits && b.units <= 0 {
		return false
	}
	if b.useMhr && b.mhr < mhrNeeded {
		return false
	}
	if b.useUnits {
		b.units--
	}
	if b.useMhr {
		b.mhr -= mhrNeeded
	}
	return true
}
