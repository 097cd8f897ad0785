package harness

import (
	"github.com/kbukum/rxkit/config"
	"github.com/kbukum/rxkit/validation"
)

// Recipe describes one harness run.
type Recipe struct {
	Name string `yaml:"name" mapstructure:"name"`
	// Solution names a Catalog entry; RunBook requires it, Run ignores it.
	Solution string     `yaml:"solution" mapstructure:"solution"`
	Count    int        `yaml:"count" mapstructure:"count"`
	Inputs   [][]string `yaml:"inputs" mapstructure:"inputs"`
	Expected []string   `yaml:"expected" mapstructure:"expected"`
}

// Validate checks the recipe is runnable.
func (r Recipe) Validate() error {
	v := validation.New()
	v.Required("name", r.Name)
	v.MinItems("inputs", len(r.Inputs), 1)
	v.Min("count", r.Count, 0)
	if r.Solution != "" {
		_, known := Catalog[r.Solution]
		v.Custom(known, "solution", "unknown solution "+r.Solution)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr.WithDetail("recipe", r.Name)
	}
	return nil
}

type recipeBook struct {
	Recipes []Recipe `yaml:"recipes" mapstructure:"recipes"`
}

// LoadRecipes reads a recipe book and validates every recipe in it.
func LoadRecipes(path string) ([]Recipe, error) {
	var book recipeBook
	if err := config.LoadFile(path, &book); err != nil {
		return nil, err
	}
	for _, r := range book.Recipes {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	return book.Recipes, nil
}
