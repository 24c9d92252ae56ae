package emucore

import "strings"

// CoreOptionType identifies the kind of core option.
type CoreOptionType int

const (
	CoreOptionBool CoreOptionType = iota
	CoreOptionSelect
)

// CoreOption describes a setting the frontend lets the user change.
type CoreOption struct {
	Key     string // without the core prefix
	Label   string
	Type    CoreOptionType
	Default string
	Values  []string // choices for Select
}

// Choices returns the values offered to the frontend, default first.
func (o CoreOption) Choices() []string {
	if o.Type == CoreOptionBool {
		if o.Default == "true" {
			return []string{"true", "false"}
		}
		return []string{"false", "true"}
	}
	return reorderDefault(o.Values, o.Default)
}

// Definition returns the option in the frontend's "Label; a|b|c" form.
func (o CoreOption) Definition() string {
	return o.Label + "; " + strings.Join(o.Choices(), "|")
}

// reorderDefault moves def to the front of values, where the frontend
// expects the default.
func reorderDefault(values []string, def string) []string {
	result := make([]string, 0, len(values)+1)
	result = append(result, def)
	for _, v := range values {
		if v != def {
			result = append(result, v)
		}
	}
	return result
}

// OptionSetter is implemented by cores that react to option changes. The
// adapter calls SetOption before LoadGame and whenever the frontend
// reports a change.
type OptionSetter interface {
	SetOption(key, value string)
}

// RegionSetter is implemented by cores that follow a region chosen by the
// frontend.
type RegionSetter interface {
	SetRegion(region Region)
}
