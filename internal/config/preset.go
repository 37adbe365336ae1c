package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ironsheep/pixelsort-mcp/internal/pixelsort"
)

// LoadPreset reads a parameter preset from a TOML file.
//
// Keys use the snake_case names of pixelsort.Parameters (direction, sort_key,
// interval_mode, lower_threshold, ...). Enum values are given by name, e.g.
// interval_mode = "edges". Keys absent from the file keep their defaults and
// the result is clamped before it is returned.
//
// Parameters:
//   - path: Path to the TOML preset file
//
// Returns:
//   - The clamped parameters
//   - An error if the file cannot be read, is not valid TOML, or contains
//     unknown keys
func LoadPreset(path string) (pixelsort.Parameters, error) {
	p := pixelsort.DefaultParameters()
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return pixelsort.Parameters{}, fmt.Errorf("failed to read preset %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return pixelsort.Parameters{}, fmt.Errorf("preset %s: %w", path, err)
	}
	return p.Clamp(), nil
}

// DecodePreset parses a preset from TOML text. It behaves like LoadPreset.
func DecodePreset(data string) (pixelsort.Parameters, error) {
	p := pixelsort.DefaultParameters()
	md, err := toml.Decode(data, &p)
	if err != nil {
		return pixelsort.Parameters{}, fmt.Errorf("invalid preset: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return pixelsort.Parameters{}, err
	}
	return p.Clamp(), nil
}

// EncodePreset writes params as a TOML preset that DecodePreset reads back
// unchanged.
func EncodePreset(w io.Writer, params pixelsort.Parameters) error {
	if err := toml.NewEncoder(w).Encode(params.Clamp()); err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	return nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return fmt.Errorf("unknown preset keys: %s", strings.Join(keys, ", "))
}
