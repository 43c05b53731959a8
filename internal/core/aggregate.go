package core

import "sort"

type (
	// Dataset is a chart-ready aggregation: labels, values and colors are
	// co-indexed and always the same length. It is recomputed on every
	// render pass and never persisted.
	Dataset struct {
		Labels []string
		Values []float64
		Colors []ColorPair
	}

	// ExperienceSummary is the per-project XP view plus the scalars the
	// profile text needs.
	ExperienceSummary struct {
		Dataset      Dataset
		TotalAmount  int64 // raw, pre-conversion
		ProjectCount int
	}

	// AuditSummary is the audit-activity view. Dataset values are record
	// counts; the byte totals are kept raw for text display in MB.
	AuditSummary struct {
		Dataset        Dataset
		GivenAmount    int64
		ReceivedAmount int64
		GivenCount     int
		ReceivedCount  int
		Ratio          float64 // provider ratio rounded to 2 decimals
	}
)

// sortedByAmount returns a copy of records stable-sorted ascending by
// amount. The provider delivers records chronologically, so the stable
// tie-break keeps equal amounts in chronological order.
func sortedByAmount(records []Transaction) []Transaction {
	sorted := make([]Transaction, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount < sorted[j].Amount
	})
	return sorted
}

// SummarizeExperience filters xp records, orders them ascending by amount
// and converts each to kB for the bar chart. An empty input yields an
// empty dataset with zero totals, which is a valid render input.
func SummarizeExperience(records []Transaction) ExperienceSummary {
	var s ExperienceSummary
	for _, t := range sortedByAmount(records) {
		if t.Kind != KindXP {
			continue
		}
		s.Dataset.Labels = append(s.Dataset.Labels, t.Object)
		s.Dataset.Values = append(s.Dataset.Values, ToKilobytes(t.Amount))
		s.Dataset.Colors = append(s.Dataset.Colors, RandomColor())
		s.TotalAmount += t.Amount
		s.ProjectCount++
	}
	return s
}

// SummarizeAudits accumulates given ("up") and received ("down") audit
// totals and counts, and produces the two-entry doughnut dataset. The
// dataset carries counts, not magnitudes; the MB totals and the ratio are
// rendered as text alongside the chart.
func SummarizeAudits(records []Transaction, providerRatio float64) AuditSummary {
	s := AuditSummary{Ratio: RoundRatio(providerRatio)}
	for _, t := range sortedByAmount(records) {
		switch t.Kind {
		case KindAuditGiven:
			s.GivenAmount += t.Amount
			s.GivenCount++
		case KindAuditReceived:
			s.ReceivedAmount += t.Amount
			s.ReceivedCount++
		}
	}
	s.Dataset = Dataset{
		Labels: []string{"Audits done", "Audits received"},
		Values: []float64{float64(s.GivenCount), float64(s.ReceivedCount)},
		Colors: []ColorPair{RandomColor(), RandomColor()},
	}
	return s
}
