// Package augmentations implements the catalog domain: the augmentation
// entity and its closed enumerations, the in-memory list pipeline
// (filter, search, page), validation, patching, CSV bulk import, PDF
// export, data access, and the HTTP surface.
package augmentations

import (
	"fmt"
	"sort"
	"strings"
)

// Type classifies how an augmentation integrates with the body: mechanical
// replacement of a body part, or nanotechnological alteration in place.
type Type string

// Area is the region of the body an augmentation affects.
type Area string

// Activation is the method by which an augmentation engages.
type Activation string

// EnergyConsumption is the amount of energy an augmentation draws.
type EnergyConsumption string

const (
	TypeMechanical        Type = "Mechanical"
	TypeNanoTechnological Type = "NanoTechnological"

	AreaTorso   Area = "Torso"
	AreaCranium Area = "Cranium"
	AreaEyes    Area = "Eyes"
	AreaArms    Area = "Arms"
	AreaBack    Area = "Back"
	AreaSkin    Area = "Skin"
	AreaLegs    Area = "Legs"

	ActivationManual     Activation = "Manual"
	ActivationPassive    Activation = "Passive"
	ActivationContextual Activation = "Contextual"

	EnergyAmmo   EnergyConsumption = "Ammo"
	EnergyNone   EnergyConsumption = "None"
	EnergyLow    EnergyConsumption = "Low"
	EnergyMedium EnergyConsumption = "Medium"
	EnergyHigh   EnergyConsumption = "High"
)

// Enumerations are closed sets. Values are validated at the boundary
// (request decoding, CSV rows, store scans) so the list pipeline never has
// to re-check membership.
var (
	types       = enumSet(TypeMechanical, TypeNanoTechnological)
	areas       = enumSet(AreaTorso, AreaCranium, AreaEyes, AreaArms, AreaBack, AreaSkin, AreaLegs)
	activations = enumSet(ActivationManual, ActivationPassive, ActivationContextual)
	energies    = enumSet(EnergyAmmo, EnergyNone, EnergyLow, EnergyMedium, EnergyHigh)
)

func enumSet[T ~string](values ...T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func parseEnum[T ~string](set map[T]struct{}, kind, s string) (T, error) {
	v := T(s)
	if _, ok := set[v]; !ok {
		return "", fmt.Errorf("unknown %s: %q", kind, s)
	}
	return v, nil
}

// ParseType validates s against the closed set of augmentation types.
func ParseType(s string) (Type, error) { return parseEnum(types, "augmentation type", s) }

// ParseArea validates s against the closed set of body areas.
func ParseArea(s string) (Area, error) { return parseEnum(areas, "augmentation area", s) }

// ParseActivation validates s against the closed set of activation methods.
func ParseActivation(s string) (Activation, error) {
	return parseEnum(activations, "activation method", s)
}

// ParseEnergyConsumption validates s against the closed set of energy levels.
func ParseEnergyConsumption(s string) (EnergyConsumption, error) {
	return parseEnum(energies, "energy consumption", s)
}

// Augmentation is a catalog record: a modification of the human body that
// grants its user an ability. The id is assigned by the store on creation
// and immutable thereafter; every other field is required.
type Augmentation struct {
	ID                int               `json:"id"`
	Type              Type              `json:"type"`
	Area              Area              `json:"area"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Activation        Activation        `json:"activation"`
	EnergyConsumption EnergyConsumption `json:"energyConsumption"`
}

// CreateCommand carries the data needed to create an augmentation or fully
// replace an existing one. Enum fields arrive as raw strings and are only
// trusted after Validate.
type CreateCommand struct {
	Type              string `json:"type"`
	Area              string `json:"area"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Activation        string `json:"activation"`
	EnergyConsumption string `json:"energyConsumption"`
}

// FieldErrors maps field names to validation messages. It implements error
// so it can travel through the usual error paths and still be rendered as a
// field-level 422 payload.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + e[field]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks required fields and enum membership. It is the single
// validation path shared by create, replace, patch results, and CSV rows.
func (c CreateCommand) Validate() error {
	errs := FieldErrors{}

	if _, err := ParseType(c.Type); err != nil {
		errs["type"] = err.Error()
	}
	if _, err := ParseArea(c.Area); err != nil {
		errs["area"] = err.Error()
	}
	if strings.TrimSpace(c.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(c.Description) == "" {
		errs["description"] = "description is required"
	}
	if _, err := ParseActivation(c.Activation); err != nil {
		errs["activation"] = err.Error()
	}
	if _, err := ParseEnergyConsumption(c.EnergyConsumption); err != nil {
		errs["energyConsumption"] = err.Error()
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// apply maps a validated command onto an entity, leaving the id untouched.
// Callers must run Validate first; apply assumes enum membership holds.
func (c CreateCommand) apply(aug *Augmentation) {
	aug.Type = Type(c.Type)
	aug.Area = Area(c.Area)
	aug.Name = c.Name
	aug.Description = c.Description
	aug.Activation = Activation(c.Activation)
	aug.EnergyConsumption = EnergyConsumption(c.EnergyConsumption)
}

// commandOf projects an entity back into command form, the shape patch
// operations are applied to before re-validation.
func commandOf(aug Augmentation) CreateCommand {
	return CreateCommand{
		Type:              string(aug.Type),
		Area:              string(aug.Area),
		Name:              aug.Name,
		Description:       aug.Description,
		Activation:        string(aug.Activation),
		EnergyConsumption: string(aug.EnergyConsumption),
	}
}
