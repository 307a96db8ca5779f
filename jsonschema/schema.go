package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Title   string `json:"title,omitempty"`
	Type    string `json:"type,omitempty"`
	Format  string `json:"format,omitempty"`
	Default any    `json:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	// PropertyOrder keeps the declaration order that Properties loses.
	PropertyOrder []string `json:"x-propertyOrder,omitempty"`
	ReadOnly      bool     `json:"readOnly,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`
}
