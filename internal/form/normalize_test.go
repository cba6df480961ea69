package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDropsBlankValues(t *testing.T) {
	n := Normalize(map[string]string{
		"investor_name": "Jan Kowalski",
		"plot_address":  "   ",
		"kw_number":     "",
	})

	assert.Equal(t, "Jan Kowalski", n.Str("investor_name"))
	_, ok := n.Known["plot_address"]
	assert.False(t, ok)
	_, ok = n.Known["kw_number"]
	assert.False(t, ok)
}

func TestNormalizeCheckboxCoercion(t *testing.T) {
	n := Normalize(map[string]string{
		"mpzp_wz_extract":  "1",
		"map_for_design":   "true",
		"geotech_opinion":  "on",
		"power_conditions": "0",
	})

	assert.True(t, n.Bool("mpzp_wz_extract"))
	assert.True(t, n.Bool("map_for_design"))
	assert.True(t, n.Bool("geotech_opinion"))
	assert.False(t, n.Bool("power_conditions"))
}

func TestNormalizeUnknownFieldsKeptSeparately(t *testing.T) {
	n := Normalize(map[string]string{
		"investor_name": "Jan",
		"custom_note":   "dodatkowa uwaga",
	})

	assert.Equal(t, "Jan", n.Str("investor_name"))
	assert.Equal(t, "dodatkowa uwaga", n.Unknown["custom_note"])
	_, ok := n.Known["custom_note"]
	assert.False(t, ok)
}

func TestFloatParsesCommaDecimal(t *testing.T) {
	n := Normalize(map[string]string{
		"usable_area_m2": "137,5",
		"plot_pow_m2":    "950",
		"storeys":        "dwa",
	})

	assert.Equal(t, 137.5, n.Float("usable_area_m2"))
	assert.Equal(t, 950.0, n.Float("plot_pow_m2"))
	assert.Zero(t, n.Float("storeys"))
	assert.Zero(t, n.Float("absent"))
}

func TestGroupBySectionOrderAndLabels(t *testing.T) {
	n := Normalize(map[string]string{
		"investor_name":  "Jan",
		"usable_area_m2": "140",
		"extra_field":    "x",
	})

	groups := n.GroupBySection()
	require.NotEmpty(t, groups)

	// Declared sections come first in schema order; the unschematized bucket
	// is always last.
	assert.Equal(t, "A. Dane inwestora i kontakt", groups[0].Section)
	last := groups[len(groups)-1]
	assert.Equal(t, "Poza schematem", last.Section)
	assert.Equal(t, "x", last.Values["extra_field"])

	assert.Equal(t, "Jan", groups[0].Values["Imię i nazwisko / nazwa inwestora"])
}

func TestGroupBySectionOmitsEmptySections(t *testing.T) {
	n := Normalize(map[string]string{"investor_name": "Jan"})

	groups := n.GroupBySection()

	require.Len(t, groups, 1)
	assert.Equal(t, "A. Dane inwestora i kontakt", groups[0].Section)
}

func TestLookup(t *testing.T) {
	f, ok := Lookup("region_type")
	require.True(t, ok)
	assert.Equal(t, TypeSelect, f.Type)

	_, ok = Lookup("nonexistent")
	assert.False(t, ok)
}
