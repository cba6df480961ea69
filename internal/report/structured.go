// Package report holds the structured report contract with the generative
// backend, its validation, and the deterministic text renderer.
package report

import "fmt"

// Source tags. Every fact and every fee calculation row must declare where
// its value came from; the validator rejects reports that omit them.
const (
	SourceClientForm  = "client_form"
	SourceAssumption  = "assumption"
	SourcePricingText = "pricing_text"
)

// Meta carries report-level fields.
type Meta struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Language string `json:"language"`
}

// Fact is one confirmed or assumed input datum.
type Fact struct {
	Section    string `json:"section"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	Source     string `json:"source"`     // client_form | assumption
	Confidence string `json:"confidence"` // high | medium | low
}

// Questions buckets follow-up questions by urgency.
type Questions struct {
	Blockers  []string `json:"blockers"`
	Important []string `json:"important"`
	Optional  []string `json:"optional"`
}

// CalcRow is one row of the design-fee calculation table.
type CalcRow struct {
	Item          string  `json:"item"`
	Basis         string  `json:"basis"`
	Qty           float64 `json:"qty"`
	Unit          string  `json:"unit"`
	UnitPricePLN  float64 `json:"unit_price_pln"`
	AmountPLN     float64 `json:"amount_pln"`
	Source        string  `json:"source"` // pricing_text | assumption
	Justification string  `json:"justification"`
}

// FeeEstimate is the design-fee section of the report.
type FeeEstimate struct {
	Currency     string    `json:"currency"`
	CalcTable    []CalcRow `json:"calc_table"`
	TotalLowPLN  float64   `json:"total_low_pln"`
	TotalHighPLN float64   `json:"total_high_pln"`
	Notes        string    `json:"notes"`
}

// CostPerM2Row is one row of the cost-per-area breakdown.
type CostPerM2Row struct {
	Item    string  `json:"item"`
	LowPLN  float64 `json:"low_pln_m2"`
	HighPLN float64 `json:"high_pln_m2"`
	Source  string  `json:"source"`
}

// BuildCostEstimate is the construction-cost section of the report.
type BuildCostEstimate struct {
	AreaM2        float64        `json:"area_m2"`
	Standard      string         `json:"standard"`
	Region        string         `json:"region"`
	UnitCostPLNM2 float64        `json:"unit_cost_pln_m2"`
	TotalLowPLN   float64        `json:"total_low_pln"`
	TotalMidPLN   float64        `json:"total_mid_pln"`
	TotalHighPLN  float64        `json:"total_high_pln"`
	PerM2         []CostPerM2Row `json:"cost_per_m2_table"`
	Notes         string         `json:"notes"`
}

// Risk is one row of the risk register.
type Risk struct {
	Area       string `json:"area"`
	Priority   string `json:"priority"` // high | medium | low
	Risk       string `json:"risk"`
	Impact     string `json:"impact"`
	Mitigation string `json:"mitigation"`
}

// ClientEmail is the copy-paste reply block for the investor.
type ClientEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// StructuredReport is the schema-validated object returned by the generator.
// It is ephemeral per run; only its rendered text form is stored.
type StructuredReport struct {
	Meta              Meta              `json:"meta"`
	Facts             []Fact            `json:"facts"`
	Questions         Questions         `json:"questions"`
	MissingDocs       []string          `json:"missing_docs"`
	FeeEstimate       FeeEstimate       `json:"fee_estimate"`
	BuildCostEstimate BuildCostEstimate `json:"build_cost_estimate"`
	Risks             []Risk            `json:"risks"`
	Assumptions       []string          `json:"assumptions"`
	NextSteps         []string          `json:"next_steps"`
	ClientEmail       ClientEmail       `json:"client_email"`
}

// Validate enforces the source-tag invariant: every fact and every fee
// calculation row must carry a recognized source. A report failing this check
// is discarded and the pipeline degrades to the estimator.
func (r *StructuredReport) Validate() error {
	for i, f := range r.Facts {
		if f.Source != SourceClientForm && f.Source != SourceAssumption {
			return fmt.Errorf("facts[%d]: missing or unknown source %q", i, f.Source)
		}
	}
	for i, row := range r.FeeEstimate.CalcTable {
		if row.Source != SourcePricingText && row.Source != SourceAssumption {
			return fmt.Errorf("fee_estimate.calc_table[%d]: missing or unknown source %q", i, row.Source)
		}
	}
	return nil
}
