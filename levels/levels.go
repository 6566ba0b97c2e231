package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"battlesheep/game"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var builtin []byte

var ErrUnknownLevel = errors.New("unknown level")

type entry struct {
	Key        string `yaml:"key"`
	game.Level `yaml:",inline"`
}

type catalog struct {
	Levels []entry `yaml:"levels"`
}

// Catalog is an ordered set of levels addressed by key.
type Catalog struct {
	keys   []string
	levels map[string]game.Level
}

var defaultCatalog = mustParse(builtin)

func mustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("failed to parse built-in levels: %v", err))
	}
	return c
}

// Parse reads a YAML level catalog. Keys must be unique and every board must
// match its declared size.
func Parse(data []byte) (*Catalog, error) {
	var raw catalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode levels: %w", err)
	}

	c := &Catalog{levels: make(map[string]game.Level, len(raw.Levels))}
	for i, e := range raw.Levels {
		if e.Key == "" {
			return nil, fmt.Errorf("%w: level %d has no key", game.ErrMalformedLevel, i)
		}
		if _, ok := c.levels[e.Key]; ok {
			return nil, fmt.Errorf("%w: duplicate key %q", game.ErrMalformedLevel, e.Key)
		}
		if !(game.Size{Width: e.Width, Height: e.Height}).Fits(len(e.Board)) {
			return nil, fmt.Errorf("%w %q: board has %d cells, expected %dx%d",
				game.ErrMalformedLevel, e.Key, len(e.Board), e.Width, e.Height)
		}
		c.keys = append(c.keys, e.Key)
		c.levels[e.Key] = e.Level
	}
	return c, nil
}

// ParseFile reads a level catalog from disk.
func ParseFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels file: %w", err)
	}
	return Parse(data)
}

// Keys returns the level keys in catalog order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Load returns a copy of the level stored under key.
func (c *Catalog) Load(key string) (game.Level, error) {
	level, ok := c.levels[key]
	if !ok {
		return game.Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, key)
	}
	level.Board = append([]int(nil), level.Board...)
	level.StartTiles = append([]int(nil), level.StartTiles...)
	return level, nil
}

// Builtin returns the embedded catalog.
func Builtin() *Catalog {
	return defaultCatalog
}

func Keys() []string {
	return defaultCatalog.Keys()
}

func Load(key string) (game.Level, error) {
	return defaultCatalog.Load(key)
}
