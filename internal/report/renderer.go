package report

import (
	"fmt"
	"math"
	"strings"
)

// Render turns a validated structured report into the fixed-format text
// delivered to the architect. It only formats what the generator produced —
// numbers are never re-derived here — so identical input yields byte-identical
// output regardless of which generator produced the data.
func Render(r *StructuredReport, tenantName, recipientName string) string {
	var b strings.Builder

	b.WriteString("RAPORT ROBOCZY DLA ARCHITEKTA\n")
	fmt.Fprintf(&b, "Pracownia: %s | Odbiorca: %s\n", tenantName, recipientName)
	if r.Meta.Title != "" {
		fmt.Fprintf(&b, "Tytuł: %s\n", r.Meta.Title)
	}
	if r.Meta.Summary != "" {
		fmt.Fprintf(&b, "\nStreszczenie: %s\n", r.Meta.Summary)
	}

	b.WriteString("\n1) FAKTY (DANE WEJŚCIOWE)\n")
	b.WriteString("| Sekcja | Pole | Wartość | Źródło | Pewność |\n")
	for _, f := range r.Facts {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", f.Section, f.Label, f.Value, f.Source, f.Confidence)
	}

	b.WriteString("\n2) PYTANIA DO INWESTORA\n")
	writeBullets(&b, "Blokujące:", r.Questions.Blockers)
	writeBullets(&b, "Istotne:", r.Questions.Important)
	writeBullets(&b, "Opcjonalne:", r.Questions.Optional)

	b.WriteString("\n3) BRAKUJĄCE DOKUMENTY\n")
	if len(r.MissingDocs) == 0 {
		b.WriteString("- brak\n")
	}
	for _, d := range r.MissingDocs {
		fmt.Fprintf(&b, "- %s\n", d)
	}

	b.WriteString("\n4) WYCENA PRAC PROJEKTOWYCH\n")
	b.WriteString("| Pozycja | Podstawa | Ilość | Jedn. | Cena jedn. | Kwota | Źródło | Uzasadnienie |\n")
	for _, row := range r.FeeEstimate.CalcTable {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			row.Item, row.Basis, formatQty(row.Qty), row.Unit,
			formatAmount(row.UnitPricePLN), formatAmount(row.AmountPLN),
			row.Source, row.Justification)
	}
	fmt.Fprintf(&b, "Suma: %s – %s %s\n",
		formatAmount(r.FeeEstimate.TotalLowPLN), formatAmount(r.FeeEstimate.TotalHighPLN), currencyOrPLN(r.FeeEstimate.Currency))
	if r.FeeEstimate.Notes != "" {
		fmt.Fprintf(&b, "Uwagi: %s\n", r.FeeEstimate.Notes)
	}

	c := r.BuildCostEstimate
	b.WriteString("\n5) SZACUNKOWY KOSZT BUDOWY\n")
	fmt.Fprintf(&b, "Założenia: powierzchnia=%s m², standard=%s, region=%s, koszt jednostkowy=%s PLN/m²\n",
		formatQty(c.AreaM2), c.Standard, c.Region, formatAmount(c.UnitCostPLNM2))
	fmt.Fprintf(&b, "Estymacja: %s – %s PLN (wartość środkowa: %s PLN)\n",
		formatAmount(c.TotalLowPLN), formatAmount(c.TotalHighPLN), formatAmount(c.TotalMidPLN))
	if len(c.PerM2) > 0 {
		b.WriteString("| Pozycja | PLN/m² od | PLN/m² do | Źródło |\n")
		for _, row := range c.PerM2 {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				row.Item, formatAmount(row.LowPLN), formatAmount(row.HighPLN), row.Source)
		}
	}
	if c.Notes != "" {
		fmt.Fprintf(&b, "Uwagi: %s\n", c.Notes)
	}

	b.WriteString("\n6) RYZYKA I KOLIZJE\n")
	b.WriteString("| Obszar | Priorytet | Ryzyko | Wpływ | Mitygacja |\n")
	for _, risk := range r.Risks {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			risk.Area, risk.Priority, risk.Risk, risk.Impact, risk.Mitigation)
	}

	b.WriteString("\n7) ZAŁOŻENIA\n")
	if len(r.Assumptions) == 0 {
		b.WriteString("- brak\n")
	}
	for _, a := range r.Assumptions {
		fmt.Fprintf(&b, "- %s\n", a)
	}

	b.WriteString("\n8) REKOMENDOWANE DALSZE KROKI\n")
	for _, s := range r.NextSteps {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	b.WriteString("\n9) E-MAIL DO KLIENTA (DO SKOPIOWANIA)\n")
	fmt.Fprintf(&b, "Temat: %s\n\n%s\n", r.ClientEmail.Subject, r.ClientEmail.Body)

	return b.String()
}

func writeBullets(b *strings.Builder, heading string, items []string) {
	b.WriteString(heading + "\n")
	if len(items) == 0 {
		b.WriteString("- brak\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

// formatAmount renders a PLN amount with spaces as thousands separators.
// Fractions are kept to two places only when present. Rounding happens once,
// on the grosze value, so a carry propagates into the whole part and the sign
// is applied exactly once.
func formatAmount(v float64) string {
	cents := int64(math.Round(v * 100))
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := groupThousands(cents / 100)
	if cents%100 != 0 {
		s = fmt.Sprintf("%s,%02d", s, cents%100)
	}
	if neg {
		s = "-" + s
	}
	return s
}

func formatQty(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func groupThousands(v int64) string {
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

func currencyOrPLN(c string) string {
	if c == "" {
		return "PLN"
	}
	return c
}
