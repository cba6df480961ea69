package estimate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brief-service/internal/form"
)

func normalized(fields map[string]string) form.Normalized {
	return form.Normalize(fields)
}

func TestComputeStandardMidTier(t *testing.T) {
	n := normalized(map[string]string{
		"usable_area_m2": "8500",
		"cost_standard":  "Standard",
		"region_type":    "Mniejsze miasto / okolice",
	})

	b := Compute(n, DefaultCostTable, DefaultRegionMultipliers)

	assert.Equal(t, 6000, b.UnitCost)
	assert.Equal(t, 51000000, b.Mid)
	assert.Equal(t, 45900000, b.Low)
	assert.Equal(t, 58650000, b.High)
}

func TestComputeRegionMultiplier(t *testing.T) {
	n := normalized(map[string]string{
		"usable_area_m2": "100",
		"cost_standard":  "Premium",
		"region_type":    "Duże miasto (Warszawa/Kraków/Wrocław/Gdańsk/Poznań)",
	})

	b := Compute(n, DefaultCostTable, DefaultRegionMultipliers)

	assert.Equal(t, 9200, b.UnitCost)
	assert.Equal(t, 920000, b.Mid)
}

func TestComputeDefaultsOnUnknownInputs(t *testing.T) {
	n := normalized(map[string]string{
		"usable_area_m2": "100",
		"cost_standard":  "Luksusowy",
		"region_type":    "Mars",
	})

	b := Compute(n, DefaultCostTable, DefaultRegionMultipliers)

	// Unknown standard falls back to the mid tier cost; unknown region keeps
	// multiplier 1.0 but the declared label is preserved.
	assert.Equal(t, 6000, b.UnitCost)
	assert.Equal(t, "Luksusowy", b.Standard)
	assert.Equal(t, "Mars", b.Region)
	assert.Equal(t, 600000, b.Mid)
}

func TestComputeZeroAreaYieldsZeroRange(t *testing.T) {
	n := normalized(map[string]string{"cost_standard": "Standard"})

	b := Compute(n, DefaultCostTable, DefaultRegionMultipliers)

	assert.Zero(t, b.Low)
	assert.Zero(t, b.Mid)
	assert.Zero(t, b.High)
}

func TestComputeMonotonicInArea(t *testing.T) {
	small := normalized(map[string]string{"usable_area_m2": "100", "cost_standard": "Standard"})
	large := normalized(map[string]string{"usable_area_m2": "200", "cost_standard": "Standard"})

	bs := Compute(small, DefaultCostTable, DefaultRegionMultipliers)
	bl := Compute(large, DefaultCostTable, DefaultRegionMultipliers)

	assert.Greater(t, bl.Mid, bs.Mid)
	assert.Greater(t, bl.Low, bs.Low)
	assert.Greater(t, bl.High, bs.High)
}

func TestBandOrdering(t *testing.T) {
	n := normalized(map[string]string{"usable_area_m2": "137.5", "cost_standard": "Ekonomiczny"})

	b := Compute(n, DefaultCostTable, DefaultRegionMultipliers)

	assert.Less(t, b.Low, b.Mid)
	assert.Less(t, b.Mid, b.High)
}

func TestMissingDocumentsAllAbsent(t *testing.T) {
	missing := MissingDocuments(normalized(map[string]string{}))

	require.Len(t, missing, 6)
	assert.Equal(t, "Wypis i wyrys MPZP / decyzja WZ", missing[0])
}

func TestMissingDocumentsConfirmedOnesDropOut(t *testing.T) {
	n := normalized(map[string]string{
		"mpzp_wz_extract": "1",
		"map_for_design":  "1",
	})

	missing := MissingDocuments(n)

	require.Len(t, missing, 4)
	assert.NotContains(t, missing, "Wypis i wyrys MPZP / decyzja WZ")
	assert.NotContains(t, missing, "Mapa do celów projektowych")
}

func TestReportDeterministic(t *testing.T) {
	n := normalized(map[string]string{
		"usable_area_m2": "8500",
		"cost_standard":  "Standard",
		"building_type":  "Dom jednorodzinny",
	})

	first := Report(n, "cennik", DefaultCostTable, DefaultRegionMultipliers)
	second := Report(n, "cennik", DefaultCostTable, DefaultRegionMultipliers)

	assert.Equal(t, first, second)
}

func TestReportContent(t *testing.T) {
	n := normalized(map[string]string{
		"usable_area_m2": "8500",
		"cost_standard":  "Standard",
	})

	out := Report(n, "", DefaultCostTable, DefaultRegionMultipliers)

	assert.True(t, strings.HasPrefix(out, "RAPORT (tryb podstawowy)"))
	assert.Contains(t, out, "45 900 000 – 58 650 000 PLN")
	assert.Contains(t, out, "Wartość środkowa: 51 000 000 PLN")
	assert.Contains(t, out, "Cennik firmy nie został uzupełniony")
}

func TestReportMentionsPricingWhenPresent(t *testing.T) {
	n := normalized(map[string]string{"usable_area_m2": "100"})

	out := Report(n, "Projekt: 150 PLN/m²", DefaultCostTable, DefaultRegionMultipliers)

	assert.Contains(t, out, "Cennik firmy został uwzględniony")
}

func TestFormatPLN(t *testing.T) {
	assert.Equal(t, "0", FormatPLN(0))
	assert.Equal(t, "950", FormatPLN(950))
	assert.Equal(t, "51 000 000", FormatPLN(51000000))
	assert.Equal(t, "-1 234", FormatPLN(-1234))
}
