package aggregation

import (
	"github.com/shopspring/decimal"

	"finboard/internal/models"
	"finboard/internal/money"
)

// Segment is one investment's share of an objective's target, for a stacked bar.
type Segment struct {
	InvestmentID models.ID       `json:"investment_id"`
	Name         string          `json:"name"`
	Value        decimal.Decimal `json:"value"`
	Percent      decimal.Decimal `json:"percent"`
}

// Progress describes how far the linked investments are towards a target.
type Progress struct {
	ObjectiveID models.ID       `json:"objective_id"`
	Name        string          `json:"name"`
	Target      decimal.Decimal `json:"target"`
	Current     decimal.Decimal `json:"current"`
	Percent     decimal.Decimal `json:"percent"`
	Segments    []Segment       `json:"segments"`
}

// ObjectiveProgress sums the investments linked to o. Percentages are taken
// against the target, so segments may add up to more than 100 when the
// objective is overfunded. A zero target yields zero percentages.
func ObjectiveProgress(o models.Objective, investments []models.Investment) Progress {
	p := Progress{
		ObjectiveID: o.ID,
		Name:        o.Name,
		Target:      o.Target,
		Current:     decimal.Zero,
		Segments:    make([]Segment, 0),
	}
	for _, inv := range investments {
		if o.ID == "" || inv.ObjectiveID == nil || *inv.ObjectiveID != o.ID {
			continue
		}
		p.Current = p.Current.Add(inv.Value)
		p.Segments = append(p.Segments, Segment{
			InvestmentID: inv.ID,
			Name:         inv.Name,
			Value:        inv.Value,
			Percent:      money.RoundPercent(money.Percent(inv.Value, o.Target)),
		})
	}
	p.Percent = money.RoundPercent(money.Percent(p.Current, o.Target))
	return p
}

// ObjectivesProgress evaluates every objective, preserving order.
func ObjectivesProgress(objectives []models.Objective, investments []models.Investment) []Progress {
	out := make([]Progress, 0, len(objectives))
	for _, o := range objectives {
		out = append(out, ObjectiveProgress(o, investments))
	}
	return out
}
