package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/958877748/Filtration/internal/domain/filter"
	filtrationerrors "github.com/958877748/Filtration/pkg/errors"
)

// Recipe is a reusable color replacement stored as YAML or TOML:
//
//	name: darker borders
//	text:
//	  old: "#ff0000"
//	  new: "#00ff00"
//	border:
//	  old: "#0000ff"
//	  new: "#000000c8"
type Recipe struct {
	Name       string       `yaml:"name" toml:"name"`
	Text       *RecipeEntry `yaml:"text" toml:"text"`
	Background *RecipeEntry `yaml:"background" toml:"background"`
	Border     *RecipeEntry `yaml:"border" toml:"border"`
}

// RecipeEntry is one old→new pair written as hex colors.
type RecipeEntry struct {
	Old string `yaml:"old" toml:"old" validate:"required,hexcolor8"`
	New string `yaml:"new" toml:"new" validate:"required,hexcolor8"`
}

// LoadRecipe reads a recipe file, choosing the decoder by extension.
func LoadRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, filtrationerrors.NewParseError(path, 0, err)
	}

	var recipe Recipe
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&recipe); err != nil && !errors.Is(err, io.EOF) {
			return nil, filtrationerrors.NewParseError(path, extractLine(err), err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &recipe)
		if err != nil {
			return nil, filtrationerrors.NewParseError(path, tomlLine(err), err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, filtrationerrors.NewParseError(path, 0, fmt.Errorf("unknown key %q", undecoded[0].String()))
		}
	default:
		return nil, filtrationerrors.NewValidationError("recipe", fmt.Sprintf("unsupported recipe file extension %q", ext), nil)
	}

	if err := ValidateRecipe(&recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ValidateRecipe checks every entry's colors and that at least one entry is present.
func ValidateRecipe(recipe *Recipe) error {
	if recipe == nil {
		return filtrationerrors.NewValidationError("recipe", "recipe is nil", nil)
	}
	if err := validatorInstance().Struct(recipe); err != nil {
		return convertValidationError(err)
	}
	if recipe.Text == nil && recipe.Background == nil && recipe.Border == nil {
		return filtrationerrors.NewValidationError("recipe", "recipe must replace at least one of text, background or border", nil)
	}
	return nil
}

// Request converts the recipe into the domain replacement request.
func (r *Recipe) Request() (filter.ColorReplaceRequest, error) {
	var request filter.ColorReplaceRequest
	entries := map[filter.ColorKind]*RecipeEntry{
		filter.TextColor:       r.Text,
		filter.BackgroundColor: r.Background,
		filter.BorderColor:     r.Border,
	}
	for _, kind := range filter.ColorKinds {
		entry := entries[kind]
		if entry == nil {
			continue
		}
		replacement, err := newReplacement(entry.Old, entry.New)
		if err != nil {
			return filter.ColorReplaceRequest{}, filtrationerrors.NewValidationError(kind.String(), err.Error(), err)
		}
		request.Set(kind, replacement)
	}
	return request, nil
}

// ParseColorPair parses "OLD:NEW" with both colors in hex, as accepted by
// the replace-colors command flags.
func ParseColorPair(value string) (filter.ColorReplacement, error) {
	oldHex, newHex, ok := strings.Cut(value, ":")
	if !ok {
		return filter.ColorReplacement{}, fmt.Errorf("color pair %q must look like OLD:NEW", value)
	}
	return newReplacement(oldHex, newHex)
}

func newReplacement(oldHex, newHex string) (filter.ColorReplacement, error) {
	oldColor, err := filter.ParseHexColor(oldHex)
	if err != nil {
		return filter.ColorReplacement{}, err
	}
	newColor, err := filter.ParseHexColor(newHex)
	if err != nil {
		return filter.ColorReplacement{}, err
	}
	return filter.ColorReplacement{Enabled: true, Old: oldColor, New: newColor}, nil
}

func tomlLine(err error) int {
	var parseErr toml.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Position.Line
	}
	return 0
}
