package allocation

import (
	"reflect"
	"testing"

	"repair-app/pricing"
)

func fp(v float64) *float64 {
	return &v
}

// record membuat CostRecord SBY dengan estimasi SPIL dan MTCP.
func record(orderID string, spilCost, spilMhr, mtcpCost, mtcpMhr *float64) pricing.CostRecord {
	vendors := map[string]pricing.VendorEstimate{
		"SPIL": {Cost: spilCost, Mhr: spilMhr},
		"MTCP": {Cost: mtcpCost, Mhr: mtcpMhr},
	}
	for code, est := range vendors {
		if est.Cost != nil && est.Mhr != nil && *est.Mhr > 0 {
			est.Ratio = fp(*est.Cost / *est.Mhr)
			vendors[code] = est
		}
	}
	return pricing.CostRecord{
		OrderID:        orderID,
		Depot:          "SBY",
		ContainerGrade: "B",
		Vendors:        vendors,
	}
}

func newTestEngine() *Engine {
	return NewEngine(pricing.DefaultConfig())
}

func decisionByOrder(t *testing.T, decisions []Decision, orderID string) Decision {
	t.Helper()
	for _, d := range decisions {
		if d.OrderID == orderID {
			return d
		}
	}
	t.Fatalf("no decision for order %s", orderID)
	return Decision{}
}

func TestAllocateGreedyPriorityOnUnitSlot(t *testing.T) {
	engine := newTestEngine()
	records := []pricing.CostRecord{
		// Penghematan 200.000.
		record("EOR/2", fp(800000), fp(10), fp(1000000), fp(12)),
		// Penghematan 500.000: harus masuk duluan walau urutannya belakangan.
		record("EOR/1", fp(1000000), fp(20), fp(1500000), fp(25)),
	}

	decisions, err := engine.Allocate(records, Options{
		Method:        MethodTotalCost,
		UseUnitFilter: true,
		Today:         Budget{Units: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	first := decisionByOrder(t, decisions, "EOR/1")
	if first.Allocation != "SPIL" {
		t.Errorf("EOR/1 allocation = %s, want SPIL", first.Allocation)
	}
	if first.FinalPrice == nil || *first.FinalPrice != 1000000 {
		t.Errorf("EOR/1 final price = %v, want 1000000", first.FinalPrice)
	}
	if first.Savings == nil || *first.Savings != 500000 {
		t.Errorf("EOR/1 savings = %v, want 500000", first.Savings)
	}

	second := decisionByOrder(t, decisions, "EOR/2")
	if second.Allocation != Unhandled {
		t.Errorf("EOR/2 allocation = %s, want %s", second.Allocation, Unhandled)
	}
	if second.FinalPrice != nil {
		t.Errorf("EOR/2 final price should be undefined, got %v", *second.FinalPrice)
	}
}

func TestAllocateMhrBudget(t *testing.T) {
	engine := newTestEngine()
	records := []pricing.CostRecord{
		record("EOR/1", fp(1000000), fp(30), fp(1500000), fp(25)),
		record("EOR/2", fp(800000), fp(10), fp(1000000), fp(12)),
	}

	// Slot unit longgar, MHR cuma cukup untuk EOR/1.
	decisions, err := engine.Allocate(records, Options{
		Method:        MethodTotalCost,
		UseUnitFilter: true,
		UseMhrFilter:  true,
		Today:         Budget{Units: 10, Mhr: 35},
	})
	if err != nil {
		t.Fatal(err)
	}

	if d := decisionByOrder(t, decisions, "EOR/1"); d.Allocation != "SPIL" {
		t.Errorf("EOR/1 allocation = %s, want SPIL", d.Allocation)
	}
	if d := decisionByOrder(t, decisions, "EOR/2"); d.Allocation != Unhandled {
		t.Errorf("EOR/2 allocation = %s, want %s", d.Allocation, Unhandled)
	}
}

func TestAllocateWaitingListStage(t *testing.T) {
	engine := newTestEngine()
	records := []pricing.CostRecord{
		record("EOR/1", fp(1000000), fp(20), fp(1500000), fp(25)),
		record("EOR/2", fp(800000), fp(10), fp(1000000), fp(12)),
	}

	decisions, err := engine.Allocate(records, Options{
		Method:         MethodTotalCost,
		UseUnitFilter:  true,
		Today:          Budget{Units: 1},
		UseWaitingList: true,
		Tomorrow:       Budget{Units: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	if d := decisionByOrder(t, decisions, "EOR/1"); d.Allocation != "SPIL" {
		t.Errorf("EOR/1 allocation = %s, want SPIL", d.Allocation)
	}
	d := decisionByOrder(t, decisions, "EOR/2")
	if d.Allocation != WaitingList("SPIL") {
		t.Errorf("EOR/2 allocation = %s, want %s", d.Allocation, WaitingList("SPIL"))
	}
	if d.FinalPrice == nil || *d.FinalPrice != 800000 {
		t.Errorf("EOR/2 final price = %v, want 800000", d.FinalPrice)
	}
}

func TestAllocateOtherVendorStage(t *testing.T) {
	engine := newTestEngine()
	records := []pricing.CostRecord{
		record("EOR/1", fp(1000000), fp(20), fp(1500000), fp(25)),
		record("EOR/2", fp(800000), fp(10), fp(1000000), fp(12)),
	}

	decisions, err := engine.Allocate(records, Options{
		Method:          MethodTotalCost,
		UseUnitFilter:   true,
		Today:           Budget{Units: 1},
		UseOtherVendors: true,
		OtherVendors:    map[string]Budget{"MTCP": {Units: 5}},
	})
	if err != nil {
		t.Fatal(err)
	}

	d := decisionByOrder(t, decisions, "EOR/2")
	if d.Allocation != "MTCP" {
		t.Errorf("EOR/2 allocation = %s, want MTCP", d.Allocation)
	}
	if d.FinalPrice == nil || *d.FinalPrice != 1000000 {
		t.Errorf("EOR/2 final price = %v, want 1000000", d.FinalPrice)
	}
	if d.FinalMhr == nil || *d.FinalMhr != 12 {
		t.Errorf("EOR/2 final mhr = %v, want 12", d.FinalMhr)
	}
}

func TestAllocateOtherVendorWithoutBudgetIsZeroCapacity(t *testing.T) {
	engine := newTestEngine()
	records := []pricing.CostRecord{
		record("EOR/1", fp(1000000), fp(20), fp(1500000), fp(25)),
	}

	decisions, err := engine.Allocate(records, Options{
		Method:          MethodTotalCost,
		UseUnitFilter:   true,
		Today:           Budget{Units: 0},
		UseOtherVendors: true,
		OtherVendors:    map[string]Budget{},
	})
	if err != nil {
		t.Fatal(err)
	}

	if d := decisionByOrder(t, decisions, "EOR/1"); d.Allocation != Unhandled {
		t.Errorf("allocation = %s, want %s (vendor tanpa budget = kapasitas nol)", d.Allocation, Unhandled)
	}
}

func TestAllocateDisabledFiltersAreUnlimited(t *testing.T) {
	engine := newTestEngine()
	records := []pricing.CostRecord{
		record("EOR/1", fp(1000000), fp(20), fp(1500000), fp(25)),
		record("EOR/2", fp(800000), fp(10), fp(1000000), fp(12)),
		record("EOR/3", fp(700000), fp(5), fp(900000), fp(6)),
	}

	// Kedua filter mati: semua EOR masuk SPIL walau budget nol.
	decisions, err := engine.Allocate(records, Options{
		Method: MethodTotalCost,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range decisions {
		if d.Allocation != "SPIL" {
			t.Errorf("%s allocation = %s, want SPIL", d.OrderID, d.Allocation)
		}
	}
}

func TestAllocateUndefinedSavingsSortLast(t *testing.T) {
	engine := newTestEngine()
	// EOR/1 tidak punya estimasi SPIL (grade tidak valid) -> metrik nil.
	noSpil := record("EOR/1", nil, nil, fp(900000), fp(10))
	records := []pricing.CostRecord{
		noSpil,
		record("EOR/2", fp(800000), fp(10), fp(1000000), fp(12)),
	}

	decisions, err := engine.Allocate(records, Options{
		Method:        MethodTotalCost,
		UseUnitFilter: true,
		Today:         Budget{Units: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Slot satu-satunya jatuh ke EOR/2 yang metriknya terdefinisi.
	if d := decisionByOrder(t, decisions, "EOR/2"); d.Allocation != "SPIL" {
		t.Errorf("EOR/2 allocation = %s, want SPIL", d.Allocation)
	}
	if d := decisionByOrder(t, decisions, "EOR/1"); d.Allocation != Unhandled {
		t.Errorf("EOR/1 allocation = %s, want %s", d.Allocation, Unhandled)
	}
}

func TestAllocatePerMhrMethod(t *testing.T) {
	engine := newTestEngine()
	records := []pricing.CostRecord{
		// Rasio SPIL 50.000/MHR, MTCP 60.000/MHR -> penghematan 10.000.
		record("EOR/1", fp(1000000), fp(20), fp(1500000), fp(25)),
	}

	decisions, err := engine.Allocate(records, Options{
		Method:        MethodCostPerMhr,
		UseUnitFilter: true,
		Today:         Budget{Units: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	d := decisionByOrder(t, decisions, "EOR/1")
	if d.Allocation != "SPIL" {
		t.Fatalf("allocation = %s, want SPIL", d.Allocation)
	}
	if d.FinalPrice == nil || *d.FinalPrice != 50000 {
		t.Errorf("final price = %v, want ratio 50000", d.FinalPrice)
	}
	if d.Savings == nil || *d.Savings != 10000 {
		t.Errorf("savings = %v, want 10000", d.Savings)
	}
}

func TestAllocateDeterministic(t *testing.T) {
	engine := newTestEngine()
	records := []pricing.CostRecord{
		record("EOR/1", fp(1000000), fp(20), fp(1500000), fp(25)),
		record("EOR/2", fp(800000), fp(10), fp(1000000), fp(12)),
		record("EOR/3", fp(800000), fp(10), fp(1000000), fp(12)), // tie dengan EOR/2
		record("EOR/4", nil, nil, fp(900000), fp(10)),
	}
	opts := Options{
		Method:          MethodTotalCost,
		UseUnitFilter:   true,
		UseMhrFilter:    true,
		Today:           Budget{Units: 2, Mhr: 40},
		UseWaitingList:  true,
		Tomorrow:        Budget{Units: 1, Mhr: 15},
		UseOtherVendors: true,
		OtherVendors:    map[string]Budget{"MTCP": {Units: 2, Mhr: 40}},
	}

	first, err := engine.Allocate(records, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.Allocate(records, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Allocate is not deterministic for identical input")
	}

	// Tie 800.000: EOR/2 duluan karena urutan input.
	if d := decisionByOrder(t, first, "EOR/2"); d.Allocation != "SPIL" {
		t.Errorf("EOR/2 allocation = %s, want SPIL", d.Allocation)
	}
}

func TestAllocateCapacityInvariant(t *testing.T) {
	engine := newTestEngine()
	var records []pricing.CostRecord
	orderIDs := []string{"EOR/1", "EOR/2", "EOR/3", "EOR/4", "EOR/5", "EOR/6"}
	for i, id := range orderIDs {
		cost := 500000 + float64(i)*100000
		records = append(records, record(id, fp(cost), fp(10), fp(cost+200000), fp(12)))
	}
	opts := Options{
		Method:          MethodTotalCost,
		UseUnitFilter:   true,
		UseMhrFilter:    true,
		Today:           Budget{Units: 2, Mhr: 100},
		UseWaitingList:  true,
		Tomorrow:        Budget{Units: 1, Mhr: 10},
		UseOtherVendors: true,
		OtherVendors:    map[string]Budget{"MTCP": {Units: 2, Mhr: 24}},
	}

	decisions, err := engine.Allocate(records, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(decisions) != len(records) {
		t.Fatalf("got %d decisions for %d records", len(decisions), len(records))
	}

	counts := map[string]int{}
	mhr := map[string]float64{}
	for _, d := range decisions {
		counts[d.Allocation]++
		if d.FinalMhr != nil {
			mhr[d.Allocation] += *d.FinalMhr
		}
	}
	if counts["SPIL"] > 2 || mhr["SPIL"] > 100 {
		t.Errorf("today budget exceeded: %d units, %.1f MHR", counts["SPIL"], mhr["SPIL"])
	}
	if wl := WaitingList("SPIL"); counts[wl] > 1 || mhr[wl] > 10 {
		t.Errorf("tomorrow budget exceeded: %d units, %.1f MHR", counts[wl], mhr[wl])
	}
	if counts["MTCP"] > 2 || mhr["MTCP"] > 24 {
		t.Errorf("MTCP budget exceeded: %d units, %.1f MHR", counts["MTCP"], mhr["MTCP"])
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != len(records) {
		t.Errorf("every order needs exactly one decision, got %d for %d orders", total, len(records))
	}
}

func TestAllocateRejectsNegativeBudget(t *testing.T) {
	engine := newTestEngine()
	_, err := engine.Allocate(nil, Options{
		Method: MethodTotalCost,
		Today:  Budget{Units: -1},
	})
	if err == nil {
		t.Error("negative budget should be rejected")
	}
}

func TestAllocateRejectsUnknownMethod(t *testing.T) {
	engine := newTestEngine()
	_, err := engine.Allocate(nil, Options{Method: "fastest"})
	if err == nil {
		t.Error("unknown method should be rejected")
	}
}

func TestSummarize(t *testing.T) {
	records := []pricing.CostRecord{
		record("EOR/1", fp(1000000), fp(20), fp(1500000), fp(25)),
		record("EOR/2", fp(800000), fp(10), fp(1000000), fp(12)),
	}
	records[1].WarningCount = 2

	decisions := []Decision{
		{OrderID: "EOR/1", Allocation: "SPIL", FinalPrice: fp(1000000), FinalMhr: fp(20)},
		{OrderID: "EOR/2", Allocation: Unhandled},
	}

	groups := Summarize(records, decisions)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	// Urut alfabet: SPIL sebelum Unhandled.
	if groups[0].Allocation != "SPIL" || groups[1].Allocation != Unhandled {
		t.Fatalf("unexpected group order: %s, %s", groups[0].Allocation, groups[1].Allocation)
	}
	if groups[0].Orders != 1 || groups[0].TotalCost != 1000000 || groups[0].TotalMhr != 20 {
		t.Errorf("SPIL group = %+v", groups[0])
	}
	if groups[1].Orders != 1 || groups[1].TotalCost != 0 || groups[1].UnknownMaterials != 2 {
		t.Errorf("Unhandled group = %+v", groups[1])
	}
}
