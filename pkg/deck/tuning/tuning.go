// Package tuning loads the heuristic tuning constants from a TOML file.
//
// Every threshold the classifier, safe-area calculator, and layout
// generator use is configurable; the defaults match common branded
// templates. A tuning file only needs to name the values it overrides:
//
//	[classify]
//	corner_margin = 2.0
//
//	[safe_area]
//	margin = 0.3
//
//	[layout]
//	title_ratio = 0.12
package tuning

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/BurntSushi/toml"

	"github.com/mkessler/deckplan/pkg/deck/classify"
	"github.com/mkessler/deckplan/pkg/deck/layout"
	"github.com/mkessler/deckplan/pkg/deck/safearea"
	"github.com/mkessler/deckplan/pkg/errors"
)

// Config bundles the tuning constants for all layout stages.
type Config struct {
	Classify classify.Config `toml:"classify"`
	SafeArea safearea.Config `toml:"safe_area"`
	Layout   layout.Config   `toml:"layout"`
}

// Default returns the documented default constants for every stage.
func Default() Config {
	return Config{
		Classify: classify.DefaultConfig(),
		SafeArea: safearea.DefaultConfig(),
		Layout:   layout.DefaultConfig(),
	}
}

// Load reads a TOML tuning file, applying its values over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse tuning file %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown tuning key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the constants for internally consistent values.
func (c Config) Validate() error {
	if c.Classify.LogoMaxSize <= 0 || c.Classify.CornerMargin <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "classify thresholds must be positive")
	}
	if c.Classify.DecorationMax >= c.Classify.LogoMaxSize {
		return errors.New(errors.ErrCodeInvalidConfig,
			"decoration threshold %g must stay below the logo size cutoff %g",
			c.Classify.DecorationMax, c.Classify.LogoMaxSize)
	}
	if c.SafeArea.Margin < 0 || c.SafeArea.Clearance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "safe-area margin and clearance cannot be negative")
	}
	if c.SafeArea.MinWidth <= 0 || c.SafeArea.MinHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "safe-area minimum dimensions must be positive")
	}
	if c.Layout.TitleRatio <= 0 || c.Layout.TitleRatio >= 0.5 {
		return errors.New(errors.ErrCodeInvalidConfig, "title ratio %g must be in (0, 0.5)", c.Layout.TitleRatio)
	}
	if c.Layout.GutterRatio < 0 || c.Layout.GutterRatio >= 0.2 {
		return errors.New(errors.ErrCodeInvalidConfig, "gutter ratio %g must be in [0, 0.2)", c.Layout.GutterRatio)
	}
	for _, share := range []float64{c.Layout.ImageSmall, c.Layout.ImageMedium, c.Layout.ImageLarge} {
		if share <= 0 || share >= 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "image share %g must be in (0, 1)", share)
		}
	}
	return nil
}

// Hash returns a stable content hash of the configuration, used in cache
// keys so tuning changes invalidate cached plans.
func (c Config) Hash() string {
	data, _ := json.Marshal(c)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Marshal renders the configuration back to TOML, for `deckplan inspect
// --show-tuning` style output.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode tuning config")
	}
	return buf.Bytes(), nil
}
