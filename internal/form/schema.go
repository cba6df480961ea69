package form

// Field types understood by the normalizer.
const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypeNumber   = "number"
	TypeSelect   = "select"
	TypeTextarea = "textarea"
	TypeCheckbox = "checkbox"
)

// Field describes one declared questionnaire entry.
type Field struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// Section groups fields under a titled questionnaire block.
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Schema is the declared investor questionnaire, in render order.
// The pipeline treats it as an opaque ordered list of labeled fields;
// only a handful of names matter to the estimator.
var Schema = []Section{
	{"A. Dane inwestora i kontakt", []Field{
		{Name: "investor_name", Label: "Imię i nazwisko / nazwa inwestora", Type: TypeText},
		{Name: "investor_email", Label: "Adres e-mail do kontaktu", Type: TypeEmail},
		{Name: "investor_phone", Label: "Telefon", Type: TypeText},
		{Name: "preferred_contact", Label: "Preferowany kanał kontaktu", Type: TypeSelect, Options: []string{"E-mail", "Telefon", "WhatsApp", "Inne"}},
		{Name: "household_adults", Label: "Liczba dorosłych (jeśli dotyczy domu)", Type: TypeNumber},
		{Name: "household_children", Label: "Liczba dzieci (jeśli dotyczy domu)", Type: TypeNumber},
		{Name: "special_needs", Label: "Wymagania szczególne (dostępność, senior, niepełnosprawność itp.)", Type: TypeTextarea},
	}},
	{"B. Działka i lokalizacja", []Field{
		{Name: "plot_address", Label: "Adres / miejscowość", Type: TypeText},
		{Name: "plot_ewidencyjny", Label: "Nr działki ewidencyjnej (jeśli znany)", Type: TypeText},
		{Name: "plot_pow_m2", Label: "Powierzchnia działki [m²]", Type: TypeNumber},
		{Name: "plot_shape", Label: "Kształt działki", Type: TypeSelect, Options: []string{"Prostokątna", "Nieregularna", "Wąska", "Szeroka", "Inna"}},
		{Name: "plot_slope", Label: "Ukształtowanie terenu", Type: TypeSelect, Options: []string{"Płasko", "Lekki spadek", "Duży spadek", "Tarasowanie/skarpy", "Nie wiem"}},
		{Name: "region_type", Label: "Lokalizacja (współczynnik kosztu wykonawstwa)", Type: TypeSelect, Options: []string{
			"Duże miasto (Warszawa/Kraków/Wrocław/Gdańsk/Poznań)", "Miasto 100k+", "Mniejsze miasto / okolice", "Wieś"}},
		{Name: "neighbors_notes", Label: "Sąsiedztwo (odległości, zacienienie, uciążliwości)", Type: TypeTextarea},
		{Name: "world_sides", Label: "Orientacja stron świata (jeśli znana)", Type: TypeTextarea},
		{Name: "trees_inventory", Label: "Zieleń/drzewa do zachowania/wycinki", Type: TypeTextarea},
	}},
	{"C. Stan prawny i dokumenty (MPZP/WZ itd.)", []Field{
		{Name: "mpzp_or_wz", Label: "Podstawa planistyczna", Type: TypeSelect, Options: []string{"MPZP", "WZ", "Nie wiem", "W trakcie"}},
		{Name: "kw_number", Label: "Numer księgi wieczystej (jeśli jest)", Type: TypeText},
		{Name: "land_register_extract", Label: "Wypis z rejestru gruntów – dostępny", Type: TypeCheckbox},
		{Name: "right_to_dispose", Label: "Oświadczenie o prawie do dysponowania nieruchomością – dostępne", Type: TypeCheckbox},
		{Name: "mpzp_wz_extract", Label: "Wypis i wyrys MPZP / decyzja WZ – dostępne", Type: TypeCheckbox},
		{Name: "access_road", Label: "Dostęp do drogi publicznej", Type: TypeSelect, Options: []string{"Bezpośredni", "Służebność", "Droga wewnętrzna", "Nie wiem"}},
		{Name: "driveway_consent", Label: "Warunki/zgoda na zjazd z drogi publicznej – dostępne", Type: TypeCheckbox},
		{Name: "legal_constraints", Label: "Ograniczenia (służebności, linie energetyczne, konserwator, Natura 2000 itp.)", Type: TypeTextarea},
	}},
	{"D. Geodezja i grunt", []Field{
		{Name: "map_for_design", Label: "Mapa do celów projektowych – dostępna", Type: TypeCheckbox},
		{Name: "geotech_opinion", Label: "Opinia geotechniczna – dostępna", Type: TypeCheckbox},
		{Name: "soil_type", Label: "Rodzaj gruntu (jeśli znany)", Type: TypeSelect, Options: []string{"Piaski", "Glina", "Iły", "Nasypy", "Mieszany", "Nie wiem"}},
		{Name: "groundwater_level", Label: "Poziom wód gruntowych", Type: TypeSelect, Options: []string{"Nisko", "Średnio", "Wysoko", "Nie wiem"}},
		{Name: "flood_risk", Label: "Ryzyko zalewowe / teren podmokły", Type: TypeSelect, Options: []string{"Tak", "Nie", "Nie wiem"}},
		{Name: "foundation_preference", Label: "Preferencja posadowienia (jeśli jest)", Type: TypeSelect, Options: []string{"Ławy/tradycyjne", "Płyta fundamentowa", "Nie wiem"}},
	}},
	{"E. Media i warunki przyłączy", []Field{
		{Name: "power_conditions", Label: "Warunki przyłączenia energii elektrycznej – dostępne", Type: TypeCheckbox},
		{Name: "water_conditions", Label: "Warunki przyłączenia wody – dostępne", Type: TypeCheckbox},
		{Name: "sewage_conditions", Label: "Warunki kanalizacji sanitarnej – dostępne", Type: TypeCheckbox},
		{Name: "gas_conditions", Label: "Warunki przyłączenia gazu – dostępne (jeśli dotyczy)", Type: TypeCheckbox},
		{Name: "internet_fiber", Label: "Światłowód / Internet", Type: TypeSelect, Options: []string{"Jest", "Brak", "Nie wiem"}},
		{Name: "water_solution", Label: "Źródło wody", Type: TypeSelect, Options: []string{"Sieć", "Studnia", "Nie wiem"}},
		{Name: "sewage_solution", Label: "Odprowadzenie ścieków", Type: TypeSelect, Options: []string{"Kanalizacja", "Szambo", "Przydomowa oczyszczalnia", "Nie wiem"}},
		{Name: "rainwater_conditions", Label: "Warunki/uzgodnienia dla wód opadowych – dostępne (jeśli dotyczy)", Type: TypeCheckbox},
		{Name: "mec_connection", Label: "Przyłącze do sieci ciepłowniczej (MEC) – dostępne (jeśli dotyczy)", Type: TypeCheckbox},
	}},
	{"F. Parametry budynku – bryła i metraż", []Field{
		{Name: "building_type", Label: "Typ obiektu", Type: TypeSelect, Options: []string{"Dom jednorodzinny", "Bliźniak", "Szeregowiec", "Inne"}},
		{Name: "usable_area_m2", Label: "Docelowa powierzchnia użytkowa [m²]", Type: TypeNumber},
		{Name: "garage", Label: "Garaż", Type: TypeSelect, Options: []string{"Brak", "1-stanowiskowy", "2-stanowiskowy", "Wiata", "Wolnostojący"}},
		{Name: "storeys", Label: "Kondygnacje", Type: TypeSelect, Options: []string{"Parterowy", "Parter + poddasze", "Piętrowy", "Z piwnicą", "Inne"}},
		{Name: "roof_type", Label: "Dach", Type: TypeSelect, Options: []string{"Płaski", "Dwuspadowy", "Czterospadowy", "Wielospadowy", "Nie wiem"}},
		{Name: "roof_covering", Label: "Pokrycie dachu (jeśli znane / preferowane)", Type: TypeSelect, Options: []string{"Dachówka ceramiczna", "Dachówka betonowa", "Blacha", "Papa/EPDM", "Gont", "Nie wiem"}},
		{Name: "foundation_type", Label: "Fundament (jeśli znany / preferowany)", Type: TypeSelect, Options: []string{"Ławy tradycyjne", "Płyta fundamentowa", "Piwnica", "Nie wiem"}},
		{Name: "roof_slope_deg", Label: "Nachylenie dachu [°] (jeśli znane)", Type: TypeNumber},
		{Name: "roof_area_m2", Label: "Szacowana powierzchnia dachu [m²] (jeśli znana)", Type: TypeNumber},
		{Name: "building_height_m", Label: "Wysokość budynku [m] (jeśli wymagana/znana)", Type: TypeNumber},
		{Name: "style", Label: "Styl", Type: TypeSelect, Options: []string{"Nowoczesny", "Tradycyjny", "Stodoła", "Dworkowy", "Minimalistyczny", "Inne"}},
	}},
	{"G. Układ funkcjonalny", []Field{
		{Name: "bedrooms", Label: "Liczba sypialni", Type: TypeNumber},
		{Name: "bathrooms", Label: "Liczba łazienek", Type: TypeNumber},
		{Name: "wc_count", Label: "Liczba osobnych WC", Type: TypeNumber},
		{Name: "kitchen_type", Label: "Kuchnia", Type: TypeSelect, Options: []string{"Otwarta", "Zamknięta", "Z wyspą", "Ze spiżarnią", "Nie wiem"}},
		{Name: "home_office", Label: "Gabinet / praca zdalna", Type: TypeSelect, Options: []string{"Tak", "Nie", "Opcjonalnie"}},
		{Name: "utility_rooms", Label: "Pomieszczenia techniczne i gospodarcze", Type: TypeTextarea},
		{Name: "special_rooms", Label: "Funkcje dodatkowe (warsztat, siłownia, kino, sauna itp.)", Type: TypeTextarea},
	}},
	{"H. Konstrukcja, elewacje, stolarka", []Field{
		{Name: "wall_tech", Label: "Technologia ścian", Type: TypeSelect, Options: []string{"Ceramika", "Beton komórkowy", "Silikat", "Drewno", "Prefabrykat", "Nie wiem"}},
		{Name: "facade_materials", Label: "Materiały elewacyjne", Type: TypeTextarea},
		{Name: "windows", Label: "Przeszklenia", Type: TypeSelect, Options: []string{"Standardowe", "Duże okna", "HS przesuwne", "Dużo okien dachowych", "Nie wiem"}},
		{Name: "shading", Label: "Osłony przeciwsłoneczne", Type: TypeSelect, Options: []string{"Rolety", "Żaluzje fasadowe", "Pergole", "Brak", "Nie wiem"}},
		{Name: "terrace", Label: "Tarasy / balkony (opis)", Type: TypeTextarea},
	}},
	{"I. Instalacje i standard", []Field{
		{Name: "heating", Label: "Źródło ciepła", Type: TypeSelect, Options: []string{"Pompa ciepła", "Gaz", "Pellet", "Elektryczne", "Inne", "Nie wiem"}},
		{Name: "ventilation", Label: "Wentylacja", Type: TypeSelect, Options: []string{"Grawitacyjna", "Mechaniczna z rekuperacją", "Nie wiem"}},
		{Name: "pv", Label: "Fotowoltaika", Type: TypeSelect, Options: []string{"Tak", "Nie", "Rozważane", "Nie wiem"}},
		{Name: "ac", Label: "Klimatyzacja", Type: TypeSelect, Options: []string{"Tak", "Nie", "Rozważane", "Nie wiem"}},
		{Name: "smart_home", Label: "Automatyka budynkowa", Type: TypeSelect, Options: []string{"Tak", "Nie", "Podstawowy", "Nie wiem"}},
		{Name: "finish_standard", Label: "Standard wykończenia", Type: TypeSelect, Options: []string{"Ekonomiczny", "Standard", "Premium"}},
		{Name: "flooring", Label: "Podłogi (opis)", Type: TypeTextarea},
		{Name: "bathroom_level", Label: "Łazienki – standard", Type: TypeSelect, Options: []string{"Podstawowy", "Standard", "Premium", "Nie wiem"}},
		{Name: "kitchen_level", Label: "Kuchnia – standard", Type: TypeSelect, Options: []string{"Podstawowy", "Standard", "Premium", "Nie wiem"}},
		{Name: "stairs", Label: "Schody (jeśli dotyczy)", Type: TypeSelect, Options: []string{"Brak (dom parterowy)", "Żelbet + okładzina", "Drewniane", "Metal/drewno", "Nie wiem"}},
		{Name: "cost_standard", Label: "Standard kosztu budowy (do estymacji)", Type: TypeSelect, Options: []string{"Ekonomiczny", "Standard", "Premium"}},
	}},
	{"J. Zagospodarowanie terenu", []Field{
		{Name: "driveway_material", Label: "Podjazd (materiał)", Type: TypeSelect, Options: []string{"Kostka", "Beton", "Żwir", "Asfalt", "Nie wiem"}},
		{Name: "fence", Label: "Ogrodzenie", Type: TypeSelect, Options: []string{"Tak", "Nie", "Rozważane"}},
		{Name: "garden_plan", Label: "Projekt zieleni", Type: TypeSelect, Options: []string{"Tak", "Nie", "Rozważane"}},
		{Name: "additional_objects", Label: "Obiekty dodatkowe (basen, altana, wiata, śmietnik, schowek)", Type: TypeTextarea},
		{Name: "rainwater", Label: "Gospodarka wodami opadowymi", Type: TypeSelect, Options: []string{"Zbiornik", "Rozsączanie", "Nie wiem", "Nie dotyczy"}},
	}},
	{"K. Budżet i terminy", []Field{
		{Name: "budget_total", Label: "Budżet całej inwestycji [PLN] (jeśli określony)", Type: TypeNumber},
		{Name: "budget_build_only", Label: "Budżet robót budowlanych [PLN] (bez gruntu)", Type: TypeNumber},
		{Name: "timeline_start", Label: "Planowany termin rozpoczęcia robót", Type: TypeSelect, Options: []string{"0–3 mies.", "3–6 mies.", "6–12 mies.", "12+ mies.", "Nieokreślony"}},
		{Name: "timeline_deadline", Label: "Wymagany termin zakończenia (jeśli jest)", Type: TypeTextarea},
		{Name: "priority", Label: "Priorytet inwestora", Type: TypeSelect, Options: []string{"Koszt", "Czas", "Jakość", "Energooszczędność", "Estetyka"}},
	}},
	{"L. Inspiracje i informacje dodatkowe", []Field{
		{Name: "inspirations_links", Label: "Inspiracje (linki, materiały referencyjne)", Type: TypeTextarea},
		{Name: "must_have", Label: "Wymagania kluczowe (must-have)", Type: TypeTextarea},
		{Name: "nice_to_have", Label: "Wymagania dodatkowe (nice-to-have)", Type: TypeTextarea},
		{Name: "dont_want", Label: "Wykluczenia / elementy nieakceptowalne", Type: TypeTextarea},
		{Name: "unknowns", Label: "Obszary do rekomendacji architekta / wymagające doprecyzowania", Type: TypeTextarea},
	}},
	{"M. Inwestycja biurowo-produkcyjno-magazynowa (jeśli dotyczy)", []Field{
		{Name: "inv_name", Label: "Nazwa inwestycji (budowa/przebudowa/rozbudowa)", Type: TypeText},
		{Name: "inv_location", Label: "Lokalizacja inwestycji", Type: TypeText},
		{Name: "ownership_form", Label: "Forma własności działki", Type: TypeText},
		{Name: "function_office", Label: "Funkcja: biurowa", Type: TypeCheckbox},
		{Name: "function_production", Label: "Funkcja: produkcyjna", Type: TypeCheckbox},
		{Name: "function_warehouse", Label: "Funkcja: magazynowa", Type: TypeCheckbox},
		{Name: "tech_production_type", Label: "Technologia: rodzaj produkcji", Type: TypeTextarea},
		{Name: "tech_devices", Label: "Technologia: urządzenia (lista / główne parametry)", Type: TypeTextarea},
		{Name: "staff_physical_total", Label: "Zatrudnienie: pracownicy fizyczni – liczba łącznie", Type: TypeNumber},
		{Name: "staff_office_total", Label: "Zatrudnienie: pracownicy biurowi – liczba łącznie", Type: TypeNumber},
		{Name: "shifts_count", Label: "System zmianowy: liczba zmian", Type: TypeNumber},
		{Name: "building_len_m", Label: "Wymiary budynku: długość [m]", Type: TypeNumber},
		{Name: "building_wid_m", Label: "Wymiary budynku: szerokość [m]", Type: TypeNumber},
		{Name: "crane_required", Label: "Suwnica – przewidziana", Type: TypeCheckbox},
		{Name: "ramps_docks", Label: "Rampy i doki dla TIR (opis, ilości, wysokości)", Type: TypeTextarea},
		{Name: "fire_load", Label: "Obciążenie ogniowe (jeśli znane / do określenia)", Type: TypeTextarea},
		{Name: "constraints_distances", Label: "Ograniczenia i odległości (las, linie, gazociągi, tereny zalewowe)", Type: TypeTextarea},
	}},
}

// fieldIndex maps field name to its declaration for O(1) lookup.
var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]Field {
	idx := make(map[string]Field)
	for _, sec := range Schema {
		for _, f := range sec.Fields {
			idx[f.Name] = f
		}
	}
	return idx
}

// Lookup returns the declared field for a name, if any.
func Lookup(name string) (Field, bool) {
	f, ok := fieldIndex[name]
	return f, ok
}
