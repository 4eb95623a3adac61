// internal/workers/scenarios/provide-scenario/source.go
package providescenario

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"procurement-workers/internal/models"
)

// Source produces one document-evaluation input per call. It is the seam
// where the real extraction pipeline will eventually plug in: the catalog
// below only stands in until extracted documents can feed evaluations
// directly.
type Source interface {
	Next(ctx context.Context) (models.EvaluationInput, error)
}

// CatalogSource selects uniformly at random, with replacement, from a fixed
// catalog. No state persists across calls. The picker is injectable so tests
// can force a deterministic selection.
type CatalogSource struct {
	catalog []models.EvaluationInput

	mu   sync.Mutex
	pick func(n int) int
}

// NewCatalogSource returns a source over the built-in catalog seeded from
// the current time.
func NewCatalogSource() *CatalogSource {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &CatalogSource{
		catalog: defaultCatalog(),
		pick:    rng.Intn,
	}
}

// NewCatalogSourceWithPicker injects the selection function; used by tests
// and anywhere a deterministic sequence is needed.
func NewCatalogSourceWithPicker(pick func(n int) int) *CatalogSource {
	return &CatalogSource{
		catalog: defaultCatalog(),
		pick:    pick,
	}
}

func (s *CatalogSource) Next(_ context.Context) (models.EvaluationInput, error) {
	s.mu.Lock()
	idx := s.pick(len(s.catalog))
	s.mu.Unlock()
	return s.catalog[idx], nil
}

// Size returns the number of catalog entries.
func (s *CatalogSource) Size() int {
	return len(s.catalog)
}

// defaultCatalog returns the four fixed scenarios. Each entry is a complete
// (vendor, project, invoice, scores) tuple spanning the interesting outcome
// combinations: turnover shortfall with a mismatched invoice, a clean pass
// with matching amounts, an exact-boundary pass, and a capability mismatch.
func defaultCatalog() []models.EvaluationInput {
	return []models.EvaluationInput{
		{
			ScenarioID: "turnover-shortfall",
			Vendor: models.VendorProfile{
				VendorID:       "VND-1001",
				Name:           "BuildRight Contractors",
				AnnualTurnover: 2500000,
				Capability:     "Road Construction",
			},
			Project: models.ProjectRequirement{
				ProjectID:          "PRJ-2201",
				Budget:             1000000,
				RequiredCapability: "Road Construction",
			},
			Invoice: models.InvoiceRecord{
				InvoiceID:     "INV-7001",
				VendorName:    "BuildRight Contractors",
				InvoiceAmount: 5400,
				POAmount:      4500,
			},
			TechnicalScore: 45,
			FinancialScore: 60,
		},
		{
			ScenarioID: "clean-pass",
			Vendor: models.VendorProfile{
				VendorID:       "VND-1002",
				Name:           "Apex Construction Ltd",
				AnnualTurnover: 2000000,
				Capability:     "Civil Construction",
			},
			Project: models.ProjectRequirement{
				ProjectID:          "PRJ-2202",
				Budget:             500000,
				RequiredCapability: "Construction",
			},
			Invoice: models.InvoiceRecord{
				InvoiceID:     "INV-7002",
				VendorName:    "Apex Construction Ltd",
				InvoiceAmount: 3000,
				POAmount:      3000,
			},
			TechnicalScore: 92,
			FinancialScore: 88,
		},
		{
			ScenarioID: "exact-boundary",
			Vendor: models.VendorProfile{
				VendorID:       "VND-1003",
				Name:           "Meridian Infrastructure",
				AnnualTurnover: 3000000,
				Capability:     "Water Infrastructure",
			},
			Project: models.ProjectRequirement{
				ProjectID:          "PRJ-2203",
				Budget:             1000000,
				RequiredCapability: "Water Infrastructure",
			},
			Invoice: models.InvoiceRecord{
				InvoiceID:     "INV-7003",
				VendorName:    "Meridian Infrastructure",
				InvoiceAmount: 12500,
				POAmount:      12500,
			},
			TechnicalScore: 70,
			FinancialScore: 70,
		},
		{
			ScenarioID: "capability-mismatch",
			Vendor: models.VendorProfile{
				VendorID:       "VND-1004",
				Name:           "SteelWorks Fabrication Inc",
				AnnualTurnover: 6000000,
				Capability:     "Steel Fabrication",
			},
			Project: models.ProjectRequirement{
				ProjectID:          "PRJ-2204",
				Budget:             1200000,
				RequiredCapability: "Electrical Installation",
			},
			Invoice: models.InvoiceRecord{
				InvoiceID:     "INV-7004",
				VendorName:    "SteelWorks Fabrication Inc",
				InvoiceAmount: 8200,
				POAmount:      7900,
			},
			TechnicalScore: 85,
			FinancialScore: 90,
		},
	}
}
