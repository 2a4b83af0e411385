// Package staging re-renders the canonical entities into divergent "source
// system" projections: inconsistent naming, stringified values, mixed formats,
// duplicated rows, and orphan records. Each projector samples with bias toward
// records tagged with its own source system, so the views overlap rather than
// partition the canonical set.
package staging

import (
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Projector renders staging views from the canonical dataset. It shares the
// run's random source and faker so the whole run stays reproducible.
type Projector struct {
	rng  *rand.Rand
	fake *gofakeit.Faker
	// loadTime stamps extract/load timestamp columns; injected so projections
	// are stable under test.
	loadTime time.Time
}

func New(rng *rand.Rand, fake *gofakeit.Faker, loadTime time.Time) *Projector {
	return &Projector{rng: rng, fake: fake, loadTime: loadTime}
}

func (p *Projector) between(lo, hi int) int { return lo + p.rng.Intn(hi-lo+1) }

func (p *Projector) chance(prob float64) bool { return p.rng.Float64() < prob }

func isoDate(t time.Time) string { return t.Format("2006-01-02") }

// packedDate renders an AS400-style date with separators stripped.
func packedDate(t time.Time) string { return t.Format("20060102") }

func usDate(t time.Time) string { return t.Format("01/02/2006") }
