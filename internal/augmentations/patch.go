package augmentations

import "strings"

// PatchOp is a single tagged operation in a partial-update document:
// {"op": "replace", "path": "/name", "value": "..."}. Every patchable
// field is string-valued on the wire, so Value is a plain string.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value string `json:"value"`
}

// patchable maps operation paths to setters on the command copy.
var patchable = map[string]func(*CreateCommand, string){
	"/type":              func(c *CreateCommand, v string) { c.Type = v },
	"/area":              func(c *CreateCommand, v string) { c.Area = v },
	"/name":              func(c *CreateCommand, v string) { c.Name = v },
	"/description":       func(c *CreateCommand, v string) { c.Description = v },
	"/activation":        func(c *CreateCommand, v string) { c.Activation = v },
	"/energyConsumption": func(c *CreateCommand, v string) { c.EnergyConsumption = v },
}

// ApplyPatch applies a sequence of operations to a copy of the current
// record and re-validates the result through the same path used for full
// creates. It never mutates aug. Unknown operations or paths, and any
// post-patch validation failure, are reported as FieldErrors.
func ApplyPatch(aug Augmentation, ops []PatchOp) (CreateCommand, error) {
	cmd := commandOf(aug)

	for _, op := range ops {
		if op.Op != "replace" {
			return CreateCommand{}, FieldErrors{"op": "unsupported patch operation: " + op.Op}
		}

		set, ok := patchable[strings.TrimSuffix(op.Path, "/")]
		if !ok {
			return CreateCommand{}, FieldErrors{"path": "unknown patch path: " + op.Path}
		}
		set(&cmd, op.Value)
	}

	if err := cmd.Validate(); err != nil {
		return CreateCommand{}, err
	}
	return cmd, nil
}
