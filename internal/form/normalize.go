package form

import (
	"strconv"
	"strings"
)

// Normalized is the cleaned view of one submitted questionnaire: blank entries
// dropped, checkbox sentinels coerced to booleans, declared fields separated
// from unschematized ones. It exists only for the duration of one pipeline
// run and is never persisted.
type Normalized struct {
	// Known holds values for fields declared in the Schema.
	Known map[string]any
	// Unknown holds submitted keys with no schema declaration.
	Unknown map[string]any
}

// Normalize cleans raw submitted fields. Empty and whitespace-only values are
// dropped; for declared checkbox fields the "1" sentinel becomes true; numeric
// fields keep their raw string (the estimator parses what it needs).
func Normalize(raw map[string]string) Normalized {
	n := Normalized{
		Known:   make(map[string]any),
		Unknown: make(map[string]any),
	}

	for name, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		decl, declared := Lookup(name)
		if !declared {
			n.Unknown[name] = value
			continue
		}

		if decl.Type == TypeCheckbox {
			n.Known[name] = value == "1" || value == "true" || value == "on"
			continue
		}
		n.Known[name] = value
	}

	return n
}

// Str returns the string value of a known field, or "" when absent.
func (n Normalized) Str(name string) string {
	if v, ok := n.Known[name].(string); ok {
		return v
	}
	return ""
}

// Float returns the numeric value of a known field, or 0 when absent or unparsable.
func (n Normalized) Float(name string) float64 {
	s := n.Str(name)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Bool returns the boolean value of a known checkbox field.
func (n Normalized) Bool(name string) bool {
	v, _ := n.Known[name].(bool)
	return v
}

// Grouped is one questionnaire section with its present values, used to build
// the generator payload so the backend cannot conflate unrelated fields.
type Grouped struct {
	Section string         `json:"section"`
	Values  map[string]any `json:"values"`
}

// GroupBySection orders the known values by declared section. Fields with no
// submitted value are omitted; unschematized values go into a trailing group.
func (n Normalized) GroupBySection() []Grouped {
	var groups []Grouped
	for _, sec := range Schema {
		values := make(map[string]any)
		for _, f := range sec.Fields {
			if v, ok := n.Known[f.Name]; ok {
				values[f.Label] = v
			}
		}
		if len(values) > 0 {
			groups = append(groups, Grouped{Section: sec.Title, Values: values})
		}
	}
	if len(n.Unknown) > 0 {
		extra := make(map[string]any, len(n.Unknown))
		for k, v := range n.Unknown {
			extra[k] = v
		}
		groups = append(groups, Grouped{Section: "Poza schematem", Values: extra})
	}
	return groups
}
