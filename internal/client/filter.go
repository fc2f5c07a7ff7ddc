package client

import (
	"strings"

	"github.com/rentease/rentease/internal/core/domain"
)

// AnyType is the type-selector sentinel that matches every listing.
const AnyType = "any"

// Search filters by a free-text query and a type selector, both
// case-insensitive substring matches. The query matches against location
// or title; the type selector matches against the type field, with AnyType
// passing everything. Operates on the given snapshot; never re-fetches.
func Search(properties []*domain.Property, query, propertyType string) []*domain.Property {
	q := strings.ToLower(query)
	t := strings.ToLower(propertyType)

	out := make([]*domain.Property, 0, len(properties))
	for _, p := range properties {
		matchesText := strings.Contains(strings.ToLower(p.Location), q) ||
			strings.Contains(strings.ToLower(p.Title), q)
		matchesType := t == AnyType || strings.Contains(strings.ToLower(p.Type), t)
		if matchesText && matchesType {
			out = append(out, p)
		}
	}
	return out
}

// quickFilters maps each category tag to the type substrings it accepts.
// The table encodes product intent literally: "apartment" deliberately
// also catches listings typed "rent", and "villa" covers the BHK variants
// plus bungalows. An unknown tag passes everything.
var quickFilters = map[string][]string{
	"pg":        {"pg"},
	"apartment": {"apartment", "rent"},
	"flat":      {"flat"},
	"villa":     {"1bhk", "2bhk", "3bhk", "bungalow"},
}

// QuickFilter applies one of the fixed category tags to the snapshot.
func QuickFilter(properties []*domain.Property, tag string) []*domain.Property {
	substrings, ok := quickFilters[tag]
	if !ok {
		return properties
	}

	out := make([]*domain.Property, 0, len(properties))
	for _, p := range properties {
		t := strings.ToLower(p.Type)
		for _, sub := range substrings {
			if strings.Contains(t, sub) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
