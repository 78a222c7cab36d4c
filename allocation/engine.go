package allocation

import (
	"fmt"

	"golang.org/x/exp/slices"

	"repair-app/pricing"
)

// Method menentukan metrik penghematan yang dipakai untuk meranking EOR.
type Method string

const (
	// MethodTotalCost: selisih biaya total vendor lain termurah terhadap
	// vendor utama.
	MethodTotalCost Method = "total"
	// MethodCostPerMhr: selisih rasio biaya per MHR.
	MethodCostPerMhr Method = "per_mhr"
)

// Unhandled adalah disposisi untuk EOR yang tidak tertampung di vendor
// manapun.
const Unhandled = "Unhandled"

// WaitingList adalah label disposisi slot besok untuk vendor utama.
func WaitingList(vendor string) string {
	return "Waiting List " + vendor
}

// Options mengatur satu run alokasi. Budget yang diberikan disalin ke state
// internal; caller yang mau carry-over antar hari harus menyimpan dan
// mengirim ulang sisa kapasitasnya sendiri.
type Options struct {
	Method         Method            `json:"method"`
	UseUnitFilter  bool              `json:"use_unit_filter"`
	UseMhrFilter   bool              `json:"use_mhr_filter"`
	Today          Budget            `json:"today"`
	UseWaitingList bool              `json:"use_waiting_list"`
	Tomorrow       Budget            `json:"tomorrow"`
	UseOtherVendors bool             `json:"use_other_vendors"`
	OtherVendors   map[string]Budget `json:"other_vendors"`
}

// Decision adalah hasil akhir satu EOR: vendor tujuan (atau waiting list /
// Unhandled), harga final sesuai metrik yang dipilih, MHR vendor tujuan,
// dan metrik penghematannya.
type Decision struct {
	OrderID    string   `json:"order_id"`
	Allocation string   `json:"allocation"`
	FinalPrice *float64 `json:"final_price"`
	FinalMhr   *float64 `json:"final_mhr"`
	Savings    *float64 `json:"savings"`
}

// Engine menjalankan alokasi greedy tiga tahap di atas hasil CostEngine.
type Engine struct {
	cfg pricing.Config
}

func NewEngine(cfg pricing.Config) *Engine {
	return &Engine{cfg: cfg}
}

type candidate struct {
	idx     int
	rec     *pricing.CostRecord
	savings *float64
}

// Allocate memberi tepat satu Decision untuk setiap CostRecord, urut sesuai
// urutan input. Tahap 1: vendor utama dengan budget hari ini, ranking
// penghematan terbesar dulu. Tahap 2 (opsional): waiting list dengan budget
// besok. Tahap 3 (opsional): vendor lain, EOR dengan penghematan terkecil
// dicoba dulu, vendor diurutkan dari biaya termurah.
//
// Fungsi ini murni: input dan budget yang sama selalu menghasilkan
// keputusan yang identik. Tie di metrik dipecah dengan urutan input.
func (e *Engine) Allocate(records []pricing.CostRecord, opts Options) ([]Decision, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	primary := e.cfg.PrimaryVendor
	decisions := make([]Decision, len(records))
	candidates := make([]*candidate, 0, len(records))
	for i := range records {
		rec := &records[i]
		candidates = append(candidates, &candidate{
			idx:     i,
			rec:     rec,
			savings: e.savings(rec, opts.Method),
		})
	}

	// Tahap 1: vendor utama, budget hari ini.
	sortBySavings(candidates, true)
	today := newBudgetState(opts.Today, opts.UseUnitFilter, opts.UseMhrFilter)
	overflow := make([]*candidate, 0)
	for _, c := range candidates {
		est := c.rec.Vendors[primary]
		if today.admit(deref(est.Mhr)) {
			decisions[c.idx] = Decision{
				OrderID:    c.rec.OrderID,
				Allocation: primary,
				FinalPrice: finalPrice(est, opts.Method),
				FinalMhr:   est.Mhr,
				Savings:    c.savings,
			}
			continue
		}
		overflow = append(overflow, c)
	}

	// Tahap 2: waiting list vendor utama, budget besok.
	if opts.UseWaitingList {
		sortBySavings(overflow, true)
		tomorrow := newBudgetState(opts.Tomorrow, opts.UseUnitFilter, opts.UseMhrFilter)
		rest := make([]*candidate, 0)
		for _, c := range overflow {
			est := c.rec.Vendors[primary]
			if tomorrow.admit(deref(est.Mhr)) {
				decisions[c.idx] = Decision{
					OrderID:    c.rec.OrderID,
					Allocation: WaitingList(primary),
					FinalPrice: finalPrice(est, opts.Method),
					FinalMhr:   est.Mhr,
					Savings:    c.savings,
				}
				continue
			}
			rest = append(rest, c)
		}
		overflow = rest
	}

	// Tahap 3: vendor lain. EOR yang paling sedikit untung di vendor utama
	// dilepas duluan.
	if opts.UseOtherVendors {
		sortBySavings(overflow, false)
		states := make(map[string]*budgetState, len(opts.OtherVendors))
		for vendor, budget := range opts.OtherVendors {
			states[vendor] = newBudgetState(budget, opts.UseUnitFilter, opts.UseMhrFilter)
		}
		for _, c := range overflow {
			assigned := false
			for _, vendor := range e.rankedOthers(c.rec) {
				est := c.rec.Vendors[vendor]
				state := states[vendor]
				if state == nil {
					// Vendor tanpa budget dianggap kapasitas nol.
					state = newBudgetState(Budget{}, opts.UseUnitFilter, opts.UseMhrFilter)
					states[vendor] = state
				}
				if !state.admit(deref(est.Mhr)) {
					continue
				}
				decisions[c.idx] = Decision{
					OrderID:    c.rec.OrderID,
					Allocation: vendor,
					FinalPrice: finalPrice(est, opts.Method),
					FinalMhr:   est.Mhr,
					Savings:    c.savings,
				}
				assigned = true
				break
			}
			if !assigned {
				decisions[c.idx] = unhandledDecision(c)
			}
		}
		return decisions, nil
	}

	for _, c := range overflow {
		decisions[c.idx] = unhandledDecision(c)
	}
	return decisions, nil
}

func unhandledDecision(c *candidate) Decision {
	return Decision{
		OrderID:    c.rec.OrderID,
		Allocation: Unhandled,
		Savings:    c.savings,
	}
}

// savings menghitung metrik penghematan: nilai termurah vendor lain
// dikurangi nilai vendor utama. Nil kalau salah satu sisinya tidak
// terdefinisi.
func (e *Engine) savings(rec *pricing.CostRecord, method Method) *float64 {
	primary := pick(rec.Vendors[e.cfg.PrimaryVendor], method)
	var best *float64
	for _, vendor := range e.cfg.OtherVendors(rec.Depot) {
		v := pick(rec.Vendors[vendor], method)
		if v == nil {
			continue
		}
		if best == nil || *v < *best {
			best = v
		}
	}
	if primary == nil || best == nil {
		return nil
	}
	diff := *best - *primary
	return &diff
}

// rankedOthers mengurutkan vendor non-utama dari biaya termurah; vendor
// tanpa estimasi dilewati. Tie mengikuti urutan vendor depo.
func (e *Engine) rankedOthers(rec *pricing.CostRecord) []string {
	ranked := make([]string, 0)
	for _, vendor := range e.cfg.OtherVendors(rec.Depot) {
		if rec.Vendors[vendor].Cost != nil {
			ranked = append(ranked, vendor)
		}
	}
	slices.SortStableFunc(ranked, func(a, b string) int {
		ca, cb := *rec.Vendors[a].Cost, *rec.Vendors[b].Cost
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		default:
			return 0
		}
	})
	return ranked
}

// sortBySavings mengurutkan kandidat secara stabil; metrik nil selalu di
// belakang, baik ascending maupun descending.
func sortBySavings(candidates []*candidate, descending bool) {
	slices.SortStableFunc(candidates, func(a, b *candidate) int {
		if a.savings == nil && b.savings == nil {
			return 0
		}
		if a.savings == nil {
			return 1
		}
		if b.savings == nil {
			return -1
		}
		switch {
		case *a.savings < *b.savings:
			if descending {
				return 1
			}
			return -1
		case *a.savings > *b.savings:
			if descending {
				return -1
			}
			return 1
		default:
			return 0
		}
	})
}

func pick(est pricing.VendorEstimate, method Method) *float64 {
	if method == MethodCostPerMhr {
		return est.Ratio
	}
	return est.Cost
}

func finalPrice(est pricing.VendorEstimate, method Method) *float64 {
	return pick(est, method)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func validateOptions(opts Options) error {
	if opts.Method != MethodTotalCost && opts.Method != MethodCostPerMhr {
		return fmt.Errorf("unknown allocation method: %q", opts.Method)
	}
	if err := validateBudget("today", opts.Today); err != nil {
		return err
	}
	if err := validateBudget("tomorrow", opts.Tomorrow); err != nil {
		return err
	}
	for vendor, budget := range opts.OtherVendors {
		if err := validateBudget(vendor, budget); err != nil {
			return err
		}
	}
	return nil
}

func validateBudget(name string, b Budget) error {
	if b.Units < 0 || b.Mhr < 0 {
		return fmt.Errorf("budget %s: capacity cannot be negative", name)
	}
	return nil
}
