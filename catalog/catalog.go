// Package catalog loads the item prototypes the generator spawns from.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"

	"projectz/server/models"
)

//go:embed default_items.yaml
var defaultItems []byte

type entry struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Kind        models.ItemKind    `yaml:"kind"`
	Rarity      int                `yaml:"rarity"`
	EffectValue int                `yaml:"effect_value"`
	Consumable  *models.Consumable `yaml:"consumable"`
	Melee       *models.Melee      `yaml:"melee"`
	Firearm     *models.Firearm    `yaml:"firearm"`
	Throwable   *models.Throwable  `yaml:"throwable"`
}

type file struct {
	Items []entry `yaml:"items"`
}

// Parse decodes a YAML catalog and validates every prototype
func Parse(data []byte) ([]*models.Item, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse item catalog: %w", err)
	}

	items := make([]*models.Item, 0, len(f.Items))
	for _, e := range f.Items {
		items = append(items, &models.Item{
			ID:          e.ID,
			PrototypeID: e.ID,
			Name:        e.Name,
			Kind:        e.Kind,
			Rarity:      e.Rarity,
			EffectValue: e.EffectValue,
			Consumable:  e.Consumable,
			Melee:       e.Melee,
			Firearm:     e.Firearm,
			Throwable:   e.Throwable,
		})
	}
	if err := Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

// Validate checks ids are present and unique and every payload matches its kind
func Validate(items []*models.Item) error {
	seen := mapset.New[string]()
	for idx, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %d has no id", idx)
		}
		if seen.Has(item.ID) {
			return fmt.Errorf("duplicate item id %q", item.ID)
		}
		seen.Put(item.ID)
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a catalog file
func Load(path string) ([]*models.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded stock catalog
func Default() []*models.Item {
	items, err := Parse(defaultItems)
	if err != nil {
		panic(err)
	}
	return items
}

// LoadOrDefault loads path, or the stock catalog when path is empty
func LoadOrDefault(path string) ([]*models.Item, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
