package report

import "github.com/shopspring/decimal"

// Bucket is one group in a breakdown: a key with a record count and a
// money total. Percent is the bucket's share of the breakdown total.
type Bucket struct {
	Key     string
	Count   int
	Total   float64
	Percent float64
}

// grouper accumulates (count, sum) per string key in first-seen order.
type grouper struct {
	order []string
	sums  map[string]decimal.Decimal
	count map[string]int
}

func newGrouper() *grouper {
	return &grouper{
		sums:  map[string]decimal.Decimal{},
		count: map[string]int{},
	}
}

func (g *grouper) add(key string, amount float64) {
	if _, seen := g.sums[key]; !seen {
		g.order = append(g.order, key)
	}
	g.sums[key] = g.sums[key].Add(decimal.NewFromFloat(amount))
	g.count[key]++
}

// buckets returns the groups in first-seen order. When total is non-zero
// each bucket's Percent is its share of total.
func (g *grouper) buckets(total decimal.Decimal) []Bucket {
	out := make([]Bucket, 0, len(g.order))
	for _, key := range g.order {
		b := Bucket{
			Key:   key,
			Count: g.count[key],
			Total: g.sums[key].InexactFloat64(),
		}
		if !total.IsZero() {
			b.Percent, _ = g.sums[key].Div(total).Mul(decimal.NewFromInt(100)).Float64()
		}
		out = append(out, b)
	}
	return out
}

func (g *grouper) sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range g.sums {
		total = total.Add(v)
	}
	return total
}
