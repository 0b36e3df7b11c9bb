package assets

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded_templates/templates.toml
var templateCatalog []byte

// Template is one entry of the embedded script template catalog. Body is
// a Handlebars template expecting name, description, and author values.
type Template struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Body        string `toml:"body"`
}

type catalog struct {
	Templates []Template `toml:"templates"`
}

// LoadTemplates parses the embedded catalog.
func LoadTemplates() ([]Template, error) {
	var c catalog
	if err := toml.Unmarshal(templateCatalog, &c); err != nil {
		return nil, fmt.Errorf("embedded template catalog is invalid: %w", err)
	}
	if len(c.Templates) == 0 {
		return nil, fmt.Errorf("embedded template catalog is empty")
	}
	return c.Templates, nil
}

// FindTemplate returns the named template from the catalog.
func FindTemplate(name string) (Template, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return Template{}, err
	}
	for _, t := range templates {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("unknown template %q", name)
}
