// Package domain holds the core types shared by the generation pipeline:
// page specs, business context snapshots, content variants, quality metrics,
// and artifacts.
package domain

import (
	"fmt"
	"strings"
)

// Variant qualifies a page for a customer segment or urgency level.
type Variant string

// Page variants. VariantStandard is the default service+location page.
const (
	VariantStandard    Variant = "standard"
	VariantEmergency   Variant = "emergency"
	VariantCommercial  Variant = "commercial"
	VariantResidential Variant = "residential"
)

// AllVariants lists every supported variant in canonical order.
var AllVariants = []Variant{VariantStandard, VariantEmergency, VariantCommercial, VariantResidential}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	switch v {
	case VariantStandard, VariantEmergency, VariantCommercial, VariantResidential:
		return true
	}
	return false
}

// standardPathPrefix is the URL prefix for standard pages. Qualified variants
// use the variant name itself as the prefix.
const standardPathPrefix = "services"

// PageSpec is the immutable descriptor of one page to generate. Identity is
// the (service, location, variant) triple.
type PageSpec struct {
	ServiceID  string  `json:"service_id"`
	LocationID string  `json:"location_id"`
	Variant    Variant `json:"variant"`
}

// Key returns the stable identity string used as the generation key.
func (s PageSpec) Key() string {
	return s.ServiceID + ":" + s.LocationID + ":" + string(s.Variant)
}

// Path returns the canonical URL path for the spec. Standard pages live under
// /services/, qualified variants under their own prefix.
func (s PageSpec) Path() string {
	prefix := standardPathPrefix
	if s.Variant != VariantStandard {
		prefix = string(s.Variant)
	}
	return "/" + prefix + "/" + s.ServiceID + "/" + s.LocationID
}

// ParsePath inverts Path. It returns false when the path does not name a
// generated page.
func ParsePath(path string) (PageSpec, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return PageSpec{}, false
	}

	spec := PageSpec{ServiceID: parts[1], LocationID: parts[2]}
	if parts[0] == standardPathPrefix {
		spec.Variant = VariantStandard
		return spec, true
	}

	spec.Variant = Variant(parts[0])
	if !spec.Variant.Valid() || spec.Variant == VariantStandard {
		return PageSpec{}, false
	}
	return spec, true
}

// ExpandMatrix enumerates the full services x locations x variants product for
// a business. It fails fast with ErrMatrixTooLarge before returning any specs
// when the product exceeds ceiling.
func ExpandMatrix(bc *BusinessContext, variants []Variant, ceiling int) ([]PageSpec, error) {
	if len(variants) == 0 {
		variants = AllVariants
	}

	total := len(bc.Services) * len(bc.Locations) * len(variants)
	if ceiling > 0 && total > ceiling {
		return nil, fmt.Errorf("%w: %d specs exceeds ceiling %d", ErrMatrixTooLarge, total, ceiling)
	}

	specs := make([]PageSpec, 0, total)
	for _, svc := range bc.Services {
		for _, loc := range bc.Locations {
			for _, variant := range variants {
				specs = append(specs, PageSpec{
					ServiceID:  svc.ID,
					LocationID: loc.ID,
					Variant:    variant,
				})
			}
		}
	}
	return specs, nil
}
