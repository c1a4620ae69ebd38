package augmentations_test

import (
	"net/url"
	"testing"

	"github.com/sarifworks/augments/internal/augmentations"
	"github.com/sarifworks/augments/pkg/pagination"
)

// catalog mirrors the shape of the seeded data: six records spanning both
// types, several areas, and every activation method used by the seeds.
func catalog() []augmentations.Augmentation {
	return []augmentations.Augmentation{
		{ID: 1, Type: augmentations.TypeNanoTechnological, Area: augmentations.AreaArms,
			Name: "Microfibral Muscle", Description: "Amplified muscle strength for lifting heavy objects.",
			Activation: augmentations.ActivationManual, EnergyConsumption: augmentations.EnergyLow},
		{ID: 2, Type: augmentations.TypeNanoTechnological, Area: augmentations.AreaLegs,
			Name: "Speed Enhancement", Description: "Increases running speed and jump height.",
			Activation: augmentations.ActivationManual, EnergyConsumption: augmentations.EnergyLow},
		{ID: 3, Type: augmentations.TypeNanoTechnological, Area: augmentations.AreaTorso,
			Name: "Aqualung", Description: "Converts CO2 to O2, extending time underwater.",
			Activation: augmentations.ActivationContextual, EnergyConsumption: augmentations.EnergyNone},
		{ID: 4, Type: augmentations.TypeMechanical, Area: augmentations.AreaSkin,
			Name: "Cloaking System", Description: "Bends light around the user, rendering them invisible.",
			Activation: augmentations.ActivationManual, EnergyConsumption: augmentations.EnergyHigh},
		{ID: 5, Type: augmentations.TypeMechanical, Area: augmentations.AreaEyes,
			Name: "Retinal Prosthesis", Description: "The Eye-Know chassis implanted in both eyes projects a HUD.",
			Activation: augmentations.ActivationPassive, EnergyConsumption: augmentations.EnergyNone},
		{ID: 6, Type: augmentations.TypeMechanical, Area: augmentations.AreaCranium,
			Name: "Radar System", Description: "Projects a limited-range radar indicator onto the retina.",
			Activation: augmentations.ActivationPassive, EnergyConsumption: augmentations.EnergyNone},
	}
}

func page(number, size int) pagination.PageRequest {
	return pagination.PageRequest{Number: number, Size: size}
}

func ids(augs []augmentations.Augmentation) []int {
	out := make([]int, len(augs))
	for i, aug := range augs {
		out[i] = aug.ID
	}
	return out
}

func assertIDs(t *testing.T, got []augmentations.Augmentation, want ...int) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("ids = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("ids = %v, want %v", gotIDs, want)
		}
	}
}

func TestListingNoCriteria(t *testing.T) {
	got := augmentations.Listing(catalog(), augmentations.Query{Page: page(1, 50)})
	assertIDs(t, got, 1, 2, 3, 4, 5, 6)
}

func TestListingFilterSingleDimension(t *testing.T) {
	mech := augmentations.TypeMechanical
	q := augmentations.Query{
		Filters: augmentations.Filters{Type: &mech},
		Page:    page(1, 50),
	}

	got := augmentations.Listing(catalog(), q)
	assertIDs(t, got, 4, 5, 6)
}

func TestListingFiltersIntersect(t *testing.T) {
	mech := augmentations.TypeMechanical
	passive := augmentations.ActivationPassive
	q := augmentations.Query{
		Filters: augmentations.Filters{Type: &mech, Activation: &passive},
		Page:    page(1, 50),
	}

	got := augmentations.Listing(catalog(), q)
	assertIDs(t, got, 5, 6)
}

func TestListingSearchMatchesNameOrDescription(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []int
	}{
		{"name match", "Aqualung", []int{3}},
		{"description match", "underwater", []int{3}},
		{"mixed case", "aQuAlUnG", []int{3}},
		{"substring across fields", "Eye", []int{5}},
		{"shared substring", "System", []int{4, 6}},
		{"no match", "flamethrower", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := augmentations.Query{SearchTerm: tt.term, Page: page(1, 50)}
			got := augmentations.Listing(catalog(), q)
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestListingBlankSearchTermMatchesAll(t *testing.T) {
	q := augmentations.Query{SearchTerm: "   ", Page: page(1, 50)}
	got := augmentations.Listing(catalog(), q)
	assertIDs(t, got, 1, 2, 3, 4, 5, 6)
}

func TestListingPageLength(t *testing.T) {
	tests := []struct {
		name    string
		number  int
		size    int
		wantLen int
	}{
		{"full first page", 1, 4, 4},
		{"partial final page", 2, 4, 2},
		{"beyond end", 3, 4, 0},
		{"size one", 6, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := augmentations.Query{Page: page(tt.number, tt.size)}
			got := augmentations.Listing(catalog(), q)
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

// Searching runs against the filtered set before any page boundary is
// applied, so a small page still fills with matches from the whole set.
func TestListingSearchBeforePaging(t *testing.T) {
	passive := augmentations.ActivationPassive
	q := augmentations.Query{
		Filters:    augmentations.Filters{Activation: &passive},
		SearchTerm: "retina",
		Page:       page(1, 1),
	}

	got := augmentations.Listing(catalog(), q)
	assertIDs(t, got, 5)

	q.Page = page(2, 1)
	got = augmentations.Listing(catalog(), q)
	assertIDs(t, got, 6)
}

func TestListingPreservesInputOrder(t *testing.T) {
	got := augmentations.Listing(catalog(), augmentations.Query{Page: page(1, 50)})
	for i := 1; i < len(got); i++ {
		if got[i].ID < got[i-1].ID {
			t.Fatalf("order not preserved: %v", ids(got))
		}
	}
}

func TestListingIdempotent(t *testing.T) {
	nano := augmentations.TypeNanoTechnological
	q := augmentations.Query{
		Filters:    augmentations.Filters{Type: &nano},
		SearchTerm: "speed",
		Page:       page(1, 2),
	}

	first := augmentations.Listing(catalog(), q)
	second := augmentations.Listing(catalog(), q)
	assertIDs(t, second, ids(first)...)
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		values := url.Values{
			"type":              {"Mechanical"},
			"area":              {"Eyes"},
			"activation":        {"Passive"},
			"energyConsumption": {"None"},
		}

		f, err := augmentations.FiltersFromQuery(values)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Type == nil || *f.Type != augmentations.TypeMechanical {
			t.Errorf("Type = %v", f.Type)
		}
		if f.Area == nil || *f.Area != augmentations.AreaEyes {
			t.Errorf("Area = %v", f.Area)
		}
		if f.Activation == nil || *f.Activation != augmentations.ActivationPassive {
			t.Errorf("Activation = %v", f.Activation)
		}
		if f.EnergyConsumption == nil || *f.EnergyConsumption != augmentations.EnergyNone {
			t.Errorf("EnergyConsumption = %v", f.EnergyConsumption)
		}
	})

	t.Run("absent values impose no constraint", func(t *testing.T) {
		f, err := augmentations.FiltersFromQuery(url.Values{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Type != nil || f.Area != nil || f.Activation != nil || f.EnergyConsumption != nil {
			t.Errorf("expected empty filters, got %+v", f)
		}
	})

	t.Run("unknown value is an error not an empty result", func(t *testing.T) {
		values := url.Values{"area": {"Tail"}}
		if _, err := augmentations.FiltersFromQuery(values); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("enum values are case sensitive", func(t *testing.T) {
		values := url.Values{"type": {"mechanical"}}
		if _, err := augmentations.FiltersFromQuery(values); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
