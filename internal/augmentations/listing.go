package augmentations

import (
	"net/url"
	"strings"

	"github.com/sarifworks/augments/pkg/pagination"
)

// Filters contains optional exact-match criteria for list queries, one per
// enum dimension. Nil fields impose no constraint; set fields combine
// conjunctively.
type Filters struct {
	Type              *Type
	Area              *Area
	Activation        *Activation
	EnergyConsumption *EnergyConsumption
}

// Match reports whether an augmentation satisfies every set filter dimension.
func (f Filters) Match(aug Augmentation) bool {
	if f.Type != nil && aug.Type != *f.Type {
		return false
	}
	if f.Area != nil && aug.Area != *f.Area {
		return false
	}
	if f.Activation != nil && aug.Activation != *f.Activation {
		return false
	}
	if f.EnergyConsumption != nil && aug.EnergyConsumption != *f.EnergyConsumption {
		return false
	}
	return true
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Enum membership is enforced here, at the boundary: an unknown value is a
// validation error, not an empty result.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters
	errs := FieldErrors{}

	if v := values.Get("type"); v != "" {
		t, err := ParseType(v)
		if err != nil {
			errs["type"] = err.Error()
		} else {
			f.Type = &t
		}
	}

	if v := values.Get("area"); v != "" {
		a, err := ParseArea(v)
		if err != nil {
			errs["area"] = err.Error()
		} else {
			f.Area = &a
		}
	}

	if v := values.Get("activation"); v != "" {
		a, err := ParseActivation(v)
		if err != nil {
			errs["activation"] = err.Error()
		} else {
			f.Activation = &a
		}
	}

	if v := values.Get("energyConsumption"); v != "" {
		e, err := ParseEnergyConsumption(v)
		if err != nil {
			errs["energyConsumption"] = err.Error()
		} else {
			f.EnergyConsumption = &e
		}
	}

	if len(errs) > 0 {
		return Filters{}, errs
	}
	return f, nil
}

// Query bundles the three independent parameter groups of a list request.
type Query struct {
	Filters    Filters
	SearchTerm string
	Page       pagination.PageRequest
}

// Listing runs the list pipeline over augs in the canonical fixed order:
// filter, then search, then page. The stages are pure and non-reordering,
// so the result is deterministic for a given input order and identical
// across repeated calls on the same input.
//
// Searching before paging means a page holds up to pageSize records that
// match the search term, rather than the term being applied to an already
// truncated page. An earlier revision of this service paged first; that
// ordering was deliberately abandoned.
func Listing(augs []Augmentation, q Query) []Augmentation {
	augs = filter(augs, q.Filters)
	augs = search(augs, q.SearchTerm)
	return pagination.Page(augs, q.Page)
}

func filter(augs []Augmentation, f Filters) []Augmentation {
	kept := make([]Augmentation, 0, len(augs))
	for _, aug := range augs {
		if f.Match(aug) {
			kept = append(kept, aug)
		}
	}
	return kept
}

func search(augs []Augmentation, term string) []Augmentation {
	term = strings.TrimSpace(term)
	if term == "" {
		return augs
	}

	lower := strings.ToLower(term)
	kept := make([]Augmentation, 0, len(augs))
	for _, aug := range augs {
		if strings.Contains(strings.ToLower(aug.Name), lower) ||
			strings.Contains(strings.ToLower(aug.Description), lower) {
			kept = append(kept, aug)
		}
	}
	return kept
}
