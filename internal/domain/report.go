package domain

import "slices"

// topStreetCount is how many streets a report ranks.
const topStreetCount = 3

// Aggregator reduces incident records into a CrimeReport. It holds only its
// field configuration and is safe for concurrent use.
type Aggregator struct {
	keys FieldKeys
}

// NewAggregator creates an Aggregator reading the given record fields.
// Empty keys fall back to DefaultFieldKeys.
func NewAggregator(keys FieldKeys) *Aggregator {
	if keys.Address == "" {
		keys.Address = DefaultFieldKeys.Address
	}
	if keys.Category == "" {
		keys.Category = DefaultFieldKeys.Category
	}
	if keys.OccurredAt == "" {
		keys.OccurredAt = DefaultFieldKeys.OccurredAt
	}
	return &Aggregator{keys: keys}
}

// Aggregate builds a report over records. Malformed fields never abort the
// run: a record missing a field, or with an unparsable timestamp, still
// counts toward TotalCount.
func (a *Aggregator) Aggregate(records []RawIncident) CrimeReport {
	streets := newStreetTally()
	report := CrimeReport{
		TotalCount:     len(records),
		CategoryCounts: make(map[string]int),
		TimeBandCounts: newBandCounts(),
	}

	for _, rec := range records {
		if addr, ok := rec[a.keys.Address]; ok {
			for _, s := range NormalizeAddress(addr) {
				streets.add(s)
			}
		}

		if category, ok := rec[a.keys.Category]; ok {
			report.CategoryCounts[category]++
		}

		occurredAt, ok := rec[a.keys.OccurredAt]
		if !ok {
			report.UnparsedTimes++
			continue
		}
		hour, minute, err := ParseOccurredAt(occurredAt)
		if err != nil {
			report.UnparsedTimes++
			continue
		}
		if band, ok := BandFor(hour, minute); ok {
			report.TimeBandCounts[band]++
		}
	}

	report.TopStreets = streets.top(topStreetCount)
	return report
}

// streetTally counts streets and remembers the order they were first seen.
type streetTally struct {
	counts map[string]int
	order  []string
}

func newStreetTally() *streetTally {
	return &streetTally{counts: make(map[string]int)}
}

func (t *streetTally) add(street string) {
	if _, seen := t.counts[street]; !seen {
		t.order = append(t.order, street)
	}
	t.counts[street]++
}

// top returns up to n streets by descending count, ties in first-seen order.
func (t *streetTally) top(n int) []string {
	ranked := slices.Clone(t.order)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return t.counts[b] - t.counts[a]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	if ranked == nil {
		return []string{}
	}
	return ranked
}
