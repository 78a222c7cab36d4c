package allocation

import (
	"strings"

	"golang.org/x/exp/slices"

	"repair-app/pricing"
)

// GroupSummary adalah rekap satu disposisi: berapa EOR, total biaya final,
// total MHR, dan jumlah material yang tidak dikenal.
type GroupSummary struct {
	Allocation       string  `json:"allocation"`
	Orders           int     `json:"orders"`
	TotalCost        float64 `json:"total_cost"`
	TotalMhr         float64 `json:"total_mhr"`
	UnknownMaterials int     `json:"unknown_materials"`
}

// Summarize merekap hasil alokasi per disposisi, diurutkan berdasarkan nama
// disposisi supaya output stabil.
func Summarize(records []pricing.CostRecord, decisions []Decision) []GroupSummary {
	warnings := make(map[string]int, len(records))
	for _, rec := range records {
		warnings[rec.OrderID] = rec.WarningCount
	}

	groups := make(map[string]*GroupSummary)
	for _, d := range decisions {
		g := groups[d.Allocation]
		if g == nil {
			g = &GroupSummary{Allocation: d.Allocation}
			groups[d.Allocation] = g
		}
		g.Orders++
		if d.FinalPrice != nil {
			g.TotalCost += *d.FinalPrice
		}
		if d.FinalMhr != nil {
			g.TotalMhr += *d.FinalMhr
		}
		g.UnknownMaterials += warnings[d.OrderID]
	}

	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	slices.SortFunc(out, func(a, b GroupSummary) int {
		return strings.Compare(a.Allocation, b.Allocation)
	})
	return out
}
