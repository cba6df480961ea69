// Package estimate is the deterministic cost/gap calculator: the no-AI
// fallback and the baseline the generator anchors on. It performs no I/O and
// produces identical output for identical input.
package estimate

import (
	"fmt"
	"math"
	"strings"

	"brief-service/internal/form"
)

// CostTable maps a build standard to a unit cost in PLN per m².
type CostTable map[string]int

// RegionMultipliers maps a declared location type to a labor-cost multiplier.
type RegionMultipliers map[string]float64

// DefaultCostTable holds the v1 unit costs.
var DefaultCostTable = CostTable{
	"Ekonomiczny": 4500,
	"Standard":    6000,
	"Premium":     8000,
}

// DefaultRegionMultipliers holds the v1 regional multipliers.
var DefaultRegionMultipliers = RegionMultipliers{
	"Duże miasto (Warszawa/Kraków/Wrocław/Gdańsk/Poznań)": 1.15,
	"Miasto 100k+":             1.05,
	"Mniejsze miasto / okolice": 1.00,
	"Wieś":                     0.95,
}

const (
	defaultStandard = "Standard"
	defaultRegion   = "Mniejsze miasto / okolice"

	// Band widths around the midpoint. The inputs are self-reported and
	// approximate, so the estimate is always a range, never a point.
	lowBand  = 0.90
	highBand = 1.15
)

// criticalDocs lists the document fields reported as gaps when absent,
// with their human-readable names.
var criticalDocs = []struct {
	Name  string
	Human string
}{
	{"mpzp_wz_extract", "Wypis i wyrys MPZP / decyzja WZ"},
	{"map_for_design", "Mapa do celów projektowych"},
	{"geotech_opinion", "Opinia geotechniczna"},
	{"power_conditions", "Warunki przyłączenia energii elektrycznej"},
	{"water_conditions", "Warunki przyłączenia wody"},
	{"sewage_conditions", "Warunki kanalizacji sanitarnej"},
}

// Baseline holds the deterministic cost numbers derived from the form.
type Baseline struct {
	AreaM2   float64 `json:"area_m2"`
	Standard string  `json:"standard"`
	Region   string  `json:"region"`
	UnitCost int     `json:"unit_cost_pln_m2"`
	Low      int     `json:"total_low_pln"`
	Mid      int     `json:"total_mid_pln"`
	High     int     `json:"total_high_pln"`
}

// Compute derives the baseline from the declared area, standard and region.
// An unknown standard falls back to the mid tier; an unknown region uses
// multiplier 1.0.
func Compute(n form.Normalized, costs CostTable, regions RegionMultipliers) Baseline {
	area := n.Float("usable_area_m2")

	standard := n.Str("cost_standard")
	if standard == "" {
		standard = defaultStandard
	}
	base, ok := costs[standard]
	if !ok {
		base = costs[defaultStandard]
	}

	region := n.Str("region_type")
	if region == "" {
		region = defaultRegion
	}
	mult, ok := regions[region]
	if !ok {
		mult = 1.0
	}

	// Rounded, not truncated: 1.15 is not exact in binary and truncation
	// would shave whole złoty off round multiples.
	b := Baseline{
		AreaM2:   area,
		Standard: standard,
		Region:   region,
		UnitCost: int(math.Round(float64(base) * mult)),
	}
	if area > 0 {
		mid := area * float64(base) * mult
		b.Mid = int(math.Round(mid))
		b.Low = int(math.Round(mid * lowBand))
		b.High = int(math.Round(mid * highBand))
	}
	return b
}

// MissingDocuments returns the human-readable names of critical documents the
// form does not confirm as available, in checklist order.
func MissingDocuments(n form.Normalized) []string {
	var missing []string
	for _, d := range criticalDocs {
		if !n.Bool(d.Name) {
			missing = append(missing, d.Human)
		}
	}
	return missing
}

// Report renders the deterministic baseline report. This is the system's
// correctness anchor: the output depends only on the inputs.
func Report(n form.Normalized, pricingText string, costs CostTable, regions RegionMultipliers) string {
	b := Compute(n, costs, regions)

	var missingList strings.Builder
	missing := MissingDocuments(n)
	if len(missing) == 0 {
		missingList.WriteString("- Brak krytycznych braków wykrytych na podstawie danych wejściowych.")
	} else {
		for i, m := range missing {
			if i > 0 {
				missingList.WriteString("\n")
			}
			missingList.WriteString("- " + m)
		}
	}

	pricingNote := "Cennik firmy został uwzględniony w analizie."
	if strings.TrimSpace(pricingText) == "" {
		pricingNote = "Cennik firmy nie został uzupełniony – wycena wynagrodzenia projektowego może wymagać doprecyzowania."
	}

	return fmt.Sprintf(`RAPORT (tryb podstawowy)

1) Podsumowanie danych
- Typ: %s
- Powierzchnia: %s m²
- Kondygnacje: %s
- Dach: %s
- Standard: %s

2) Braki / dokumenty do pozyskania
%s

3) Szacunkowy koszt robót budowlanych (model orientacyjny)
- Założenia: standard=%s, region=%s
- Koszt jednostkowy: ok. %d PLN/m²
- Estymacja: %s – %s PLN (orientacyjnie)
- Wartość środkowa: %s PLN

4) Wycena projektowa
- %s
`,
		n.Str("building_type"),
		n.Str("usable_area_m2"),
		n.Str("storeys"),
		n.Str("roof_type"),
		n.Str("cost_standard"),
		missingList.String(),
		b.Standard,
		b.Region,
		b.UnitCost,
		FormatPLN(b.Low),
		FormatPLN(b.High),
		FormatPLN(b.Mid),
		pricingNote,
	)
}

// FormatPLN renders an amount with spaces as thousands separators.
func FormatPLN(v int) string {
	s := fmt.Sprintf("%d", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, " ")
	if neg {
		out = "-" + out
	}
	return out
}
