package generator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stonebriar/insbench/internal/model"
)

// Agents generates n producing agents. Agents are immutable once created.
func (g *Generator) Agents(n int) []model.Agent {
	agents := make([]model.Agent, 0, n)
	for i := 1; i <= n; i++ {
		a := model.Agent{
			AgentID:        i,
			AgentCode:      fmt.Sprintf("AGT-%04d", i),
			FirstName:      g.fake.FirstName(),
			LastName:       g.fake.LastName(),
			AgencyName:     g.fake.Company(),
			LicenseState:   pick(g.rng, model.States),
			LicenseNumber:  g.fake.Lexify("??") + g.fake.Numerify("######"),
			CommissionRate: decimal.NewFromFloat(uniform(g.rng, 0.05, 0.20)).Round(4),
			AppointedDate:  dateBetween(g.rng, 2010, 2022),
			Email:          g.fake.Email(),
			Phone:          g.fake.Phone(),
		}
		// ~15% of agents have been terminated
		if chance(g.rng, 0.15) {
			td := dateBetween(g.rng, 2023, 2025)
			a.TerminatedDate = &td
		}
		agents = append(agents, a)
	}
	return agents
}

// Insureds generates n policyholders. ~30% are commercial; the personal and
// commercial attribute sets are mutually exclusive.
func (g *Generator) Insureds(n int) []model.Insured {
	insureds := make([]model.Insured, 0, n)
	for i := 1; i <= n; i++ {
		ins := model.Insured{
			InsuredID:    i,
			TaxID:        g.fake.Numerify("##-#######"),
			AddressLine1: g.fake.Street(),
			City:         g.fake.City(),
			State:        pick(g.rng, model.States),
			ZipCode:      g.fake.Zip(),
			CreatedAt:    dateBetween(g.rng, 2015, 2023),
			SourceSystem: pick(g.rng, model.SourceSystems),
		}
		if chance(g.rng, 0.3) {
			ins.InsuredType = "COMMERCIAL"
			ins.CompanyName = g.fake.Company()
			if chance(g.rng, 0.3) {
				ins.DBAName = g.fake.Company()
			}
		} else {
			ins.InsuredType = "PERSONAL"
			ins.FirstName = g.fake.FirstName()
			ins.LastName = g.fake.LastName()
			dob := birthDate(g, 18, 85)
			ins.DateOfBirth = &dob
		}
		if chance(g.rng, 0.3) {
			ins.AddressLine2 = fmt.Sprintf("Suite %d", between(g.rng, 1, 999))
		}
		if chance(g.rng, 0.85) {
			ins.Email = g.fake.Email()
		}
		if chance(g.rng, 0.9) {
			ins.Phone = g.fake.Phone()
		}
		if chance(g.rng, 0.8) {
			score := between(g.rng, 300, 850)
			ins.CreditScore = &score
		}
		insureds = append(insureds, ins)
	}
	return insureds
}

func birthDate(g *Generator, minAge, maxAge int) time.Time {
	years := between(g.rng, minAge, maxAge)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(-years, 0, 0)
	return base.AddDate(0, 0, -between(g.rng, 0, 364))
}
