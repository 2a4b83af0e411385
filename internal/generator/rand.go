package generator

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// All draws go through one explicitly threaded *rand.Rand so a run is fully
// reproducible from its seed. Nothing in this package touches the package-level
// rand state.

func dateBetween(rng *rand.Rand, startYear, endYear int) time.Time {
	s := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	e := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	span := int(e.Sub(s).Hours()/24) + 1
	return s.AddDate(0, 0, rng.Intn(span))
}

// randTS adds a random HH:MM:SS to a date to make a timestamp.
func randTS(rng *rand.Rand, base time.Time) time.Time {
	return base.Add(
		time.Duration(rng.Intn(24))*time.Hour +
			time.Duration(rng.Intn(60))*time.Minute +
			time.Duration(rng.Intn(60))*time.Second)
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// between returns a uniform int in [lo, hi] inclusive.
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// chance reports a Bernoulli draw with probability p.
func chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// money draws a uniform amount in [lo, hi] rounded to 2 decimals.
func money(rng *rand.Rand, lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(lo + rng.Float64()*(hi-lo)).Round(2)
}

// uniform draws a plain float64 in [lo, hi].
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// scale multiplies d by a uniform factor in [lo, hi], rounded to 2 decimals.
func scale(rng *rand.Rand, d decimal.Decimal, lo, hi float64) decimal.Decimal {
	return d.Mul(decimal.NewFromFloat(uniform(rng, lo, hi))).Round(2)
}
