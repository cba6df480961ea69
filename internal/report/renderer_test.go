package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDeterministic(t *testing.T) {
	r := validReport()

	first := Render(&r, "Pracownia Testowa", "Anna Architekt")
	second := Render(&r, "Pracownia Testowa", "Anna Architekt")

	assert.Equal(t, first, second)
}

func TestRenderCarriesGeneratorTotalsVerbatim(t *testing.T) {
	r := validReport()
	// Totals deliberately inconsistent with the table rows: the renderer must
	// print what the generator produced, never recompute.
	r.FeeEstimate.TotalLowPLN = 999
	r.FeeEstimate.TotalHighPLN = 1001

	out := Render(&r, "P", "A")

	assert.Contains(t, out, "Suma: 999 – 1 001 PLN")
}

func TestRenderSections(t *testing.T) {
	r := validReport()

	out := Render(&r, "Pracownia Testowa", "Anna Architekt")

	assert.True(t, strings.HasPrefix(out, "RAPORT ROBOCZY DLA ARCHITEKTA\n"))
	assert.Contains(t, out, "Pracownia: Pracownia Testowa | Odbiorca: Anna Architekt")
	assert.Contains(t, out, "1) FAKTY (DANE WEJŚCIOWE)")
	assert.Contains(t, out, "| F | Powierzchnia | 140 m² | client_form | high |")
	assert.Contains(t, out, "Blokujące:\n- Brak decyzji MPZP/WZ")
	assert.Contains(t, out, "- Mapa do celów projektowych")
	assert.Contains(t, out, "| Projekt koncepcyjny | cennik | 140 | m² | 90 | 12 600 | pricing_text | wg cennika |")
	assert.Contains(t, out, "Estymacja: 756 000 – 966 000 PLN (wartość środkowa: 840 000 PLN)")
	assert.Contains(t, out, "| grunt | high | Brak badań | Zmiana posadowienia | Opinia geotechniczna |")
	assert.Contains(t, out, "Temat: Podsumowanie briefu")
}

func TestRenderEmptyBucketsSayBrak(t *testing.T) {
	r := validReport()
	r.Questions.Optional = nil
	r.Assumptions = nil
	r.MissingDocs = nil

	out := Render(&r, "P", "A")

	assert.Contains(t, out, "Opcjonalne:\n- brak")
	assert.Contains(t, out, "7) ZAŁOŻENIA\n- brak")
	assert.Contains(t, out, "3) BRAKUJĄCE DOKUMENTY\n- brak")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", formatAmount(0))
	assert.Equal(t, "12 600", formatAmount(12600))
	assert.Equal(t, "1 234,50", formatAmount(1234.5))
	assert.Equal(t, "966 000", formatAmount(966000))
}

func TestFormatAmountRoundingCarriesIntoWhole(t *testing.T) {
	// Rounding the grosze must carry, never print more than 99 of them.
	assert.Equal(t, "13", formatAmount(12.999))
	assert.Equal(t, "12,99", formatAmount(12.994))
	assert.Equal(t, "1 000", formatAmount(999.999))
}

func TestFormatAmountNegative(t *testing.T) {
	assert.Equal(t, "-12,50", formatAmount(-12.5))
	assert.Equal(t, "-13", formatAmount(-12.999))
	assert.Equal(t, "-1 234", formatAmount(-1234))
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "140", formatQty(140))
	assert.Equal(t, "137.5", formatQty(137.5))
}
