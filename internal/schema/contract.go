// Package schema holds the fixed source-table contracts and the typed row
// model of the warehouse pipeline: cleansed/derived rows for the silver
// layer and dimension/fact rows for the gold layer.
package schema

// Field describes one column of a source extract.
type Field struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"` // "int" | "text" | "date" | "real"
	Required bool   `yaml:"required,omitempty"`
}

// Contract is the fixed, named column schema of one source table.
type Contract struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`

	// HeaderMap maps original extract headers to canonical column names,
	// e.g. {"Customer Nr": "cst_id"}. Unmapped headers pass through as-is.
	HeaderMap map[string]string `yaml:"header_map,omitempty"`
}

// Required returns the names of all required columns.
func (c Contract) Required() []string {
	var out []string
	for _, f := range c.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}
