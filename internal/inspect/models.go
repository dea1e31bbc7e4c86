package inspect

import "slices"

// Direction identifies which side of an element a pad template sits on.
type Direction string

const (
	DirectionSrc  Direction = "SRC"
	DirectionSink Direction = "SINK"
)

// Presence describes when pads created from a template exist.
type Presence string

const (
	PresenceUnset     Presence = "UNSET"
	PresenceAlways    Presence = "ALWAYS"
	PresenceSometimes Presence = "SOMETIMES"
	PresenceRequest   Presence = "REQUEST"
)

// Property is one configurable parameter declared by an element.
type Property struct {
	Name         string   `json:"name"`
	Type         string   `json:"type,omitempty"`
	Description  string   `json:"description,omitempty"`
	Default      string   `json:"default,omitempty"`
	Range        string   `json:"range,omitempty"`
	EnumValues   []string `json:"enum_values,omitempty"`
	Readable     bool     `json:"readable"`
	Writable     bool     `json:"writable"`
	Controllable bool     `json:"controllable"`
}

// PadTemplate is a declared connection point template. Caps holds the
// capability lines verbatim, newline-joined.
type PadTemplate struct {
	Name      string    `json:"name"`
	Direction Direction `json:"direction"`
	Presence  Presence  `json:"presence"`
	Caps      string    `json:"caps,omitempty"`
}

// Element is the structured record for one introspected element.
type Element struct {
	Name           string        `json:"name"`
	LongName       string        `json:"long_name,omitempty"`
	Description    string        `json:"description,omitempty"`
	Author         string        `json:"author,omitempty"`
	Classification string        `json:"classification,omitempty"`
	Rank           string        `json:"rank,omitempty"`
	Properties     []Property    `json:"properties,omitempty"`
	PadTemplates   []PadTemplate `json:"pad_templates,omitempty"`
}

// Clone returns a deep copy so callers cannot alias the slices of a stored record.
func (e Element) Clone() Element {
	out := e
	if e.Properties != nil {
		out.Properties = make([]Property, len(e.Properties))
		for i, prop := range e.Properties {
			prop.EnumValues = slices.Clone(prop.EnumValues)
			out.Properties[i] = prop
		}
	}
	out.PadTemplates = slices.Clone(e.PadTemplates)
	return out
}

// Property returns the named property if the element declares it.
func (e Element) Property(name string) (Property, bool) {
	for _, prop := range e.Properties {
		if prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// PadTemplatesByDirection returns the templates on the requested side, in declaration order.
func (e Element) PadTemplatesByDirection(dir Direction) []PadTemplate {
	var out []PadTemplate
	for _, pad := range e.PadTemplates {
		if pad.Direction == dir {
			out = append(out, pad)
		}
	}
	return out
}

// IsEnum reports whether the property carries enum labels.
func (p Property) IsEnum() bool {
	return len(p.EnumValues) > 0
}
