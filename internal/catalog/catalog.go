// internal/catalog/catalog.go
//
// Language catalog for the game.
//
// Responsibilities:
//   - Load the catalog from an override file or fall back to the embedded default.
//   - Validate every record and reject case-insensitive duplicate names.
//   - Case-insensitive lookup and uniform random selection.
//
// A Catalog is immutable once built and is safe for concurrent use.

package catalog

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/robalobadob/langle/assets"
)

// Typing is the typing discipline of a language.
type Typing string

const (
	TypingStatic  Typing = "Static"
	TypingDynamic Typing = "Dynamic"
)

// Language is a single catalog entry.
type Language struct {
	Name              string   `json:"name" validate:"required"`
	Paradigm          []string `json:"paradigm" validate:"required,min=1,dive,required"`
	Typing            Typing   `json:"typing" validate:"oneof=Static Dynamic"`
	GarbageCollection bool     `json:"garbageCollection"`
	DesignedBy        string   `json:"designedBy" validate:"required"`
	FirstAppeared     int      `json:"firstAppeared" validate:"min=1940,max=2100"`
	MainUseCase       string   `json:"mainUseCase" validate:"required"`
}

// Catalog is a read-only set of languages keyed by lowercased name.
type Catalog struct {
	languages []Language
	byName    map[string]int
}

var validate = validator.New()

// New builds a catalog from records. Records are copied.
func New(langs []Language) (*Catalog, error) {
	if len(langs) == 0 {
		return nil, errors.New("catalog: no languages")
	}
	c := &Catalog{
		languages: make([]Language, 0, len(langs)),
		byName:    make(map[string]int, len(langs)),
	}
	for i, l := range langs {
		l.Name = strings.TrimSpace(l.Name)
		if err := validate.Struct(l); err != nil {
			return nil, fmt.Errorf("catalog: record %d (%q): %w", i, l.Name, err)
		}
		key := normalize(l.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("catalog: duplicate language %q", l.Name)
		}
		l.Paradigm = slices.Clone(l.Paradigm)
		c.byName[key] = len(c.languages)
		c.languages = append(c.languages, l)
	}
	return c, nil
}

// Parse decodes a JSON array of languages.
func Parse(data []byte) (*Catalog, error) {
	var langs []Language
	if err := json.Unmarshal(data, &langs); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return New(langs)
}

// Load reads the catalog from path, or from the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = assets.Catalog()
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	return Parse(data)
}

// Lookup finds a language by name, ignoring case and surrounding whitespace.
func (c *Catalog) Lookup(name string) (Language, bool) {
	i, ok := c.byName[normalize(name)]
	if !ok {
		return Language{}, false
	}
	return c.at(i), true
}

// Random returns a uniformly random language.
func (c *Catalog) Random() Language {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(c.languages))))
	if err != nil {
		return c.at(0)
	}
	return c.at(int(n.Int64()))
}

// Len reports the number of languages.
func (c *Catalog) Len() int { return len(c.languages) }

// Names lists language names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.languages))
	for i, l := range c.languages {
		out[i] = l.Name
	}
	return out
}

// at returns a copy so callers cannot mutate shared slices.
func (c *Catalog) at(i int) Language {
	l := c.languages[i]
	l.Paradigm = slices.Clone(l.Paradigm)
	return l
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
