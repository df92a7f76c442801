package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Model    ModelConfig     `yaml:"model"`
	Screen   ScreenConfig    `yaml:"screen"`
	Solver   SolverConfig    `yaml:"solver"`
	Variants []VariantConfig `yaml:"variants"`
}

type ModelConfig struct {
	// Path to a COBRA JSON model on disk. Exactly one of Path and BiGGID
	// must be set.
	Path string `yaml:"path"`
	// BiGGID downloads the model from the BiGG repository instead.
	BiGGID string `yaml:"bigg_id"`
}

type ScreenConfig struct {
	// Target is the reaction whose flux is maximized in the production query.
	Target string `yaml:"target"`
	// Uptake is the substrate exchange used for the yield column (optional).
	Uptake string `yaml:"uptake"`
	// GrowthFraction pins growth at this fraction of its optimum during the
	// production query. Defaults to 0.5.
	GrowthFraction float64 `yaml:"growth_fraction"`
}

type SolverConfig struct {
	Tolerance float64 `yaml:"tolerance"`
	BigBound  float64 `yaml:"big_bound"`
}

type VariantConfig struct {
	Name string `yaml:"name"`
	// Optional: load the pathway CSV paths from a separate YAML
	// (e.g. examples/pathways/*.yaml). Explicit fields below override it.
	PathwayFile    string   `yaml:"pathway_file"`
	MetabolitesCSV string   `yaml:"metabolites_csv"`
	ReactionsCSV   string   `yaml:"reactions_csv"`
	Knockouts      []string `yaml:"knockouts"`
	// Bounds overrides reaction bounds after the pathway is grafted,
	// e.g. restricting oxygen uptake for one variant:
	//   bounds:
	//     EX_o2_e: [-5, 0]
	Bounds map[string][2]float64 `yaml:"bounds"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if c.Screen.GrowthFraction == 0 {
		c.Screen.GrowthFraction = 0.5
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for i := range c.Variants {
		v := &c.Variants[i]
		if v.PathwayFile != "" {
			loaded, err := loadPathwayFile(resolvePath(dir, v.PathwayFile))
			if err != nil {
				return nil, fmt.Errorf("variant %s: %w", v.Name, err)
			}
			*v = MergeVariant(loaded, *v)
		}
		v.MetabolitesCSV = resolvePath(dir, v.MetabolitesCSV)
		v.ReactionsCSV = resolvePath(dir, v.ReactionsCSV)
	}
	if c.Model.Path != "" {
		c.Model.Path = resolvePath(dir, c.Model.Path)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Model.Path == "" && c.Model.BiGGID == "" {
		return errors.New("model.path or model.bigg_id is required")
	}
	if c.Model.Path != "" && c.Model.BiGGID != "" {
		return errors.New("model.path and model.bigg_id are mutually exclusive")
	}
	if c.Screen.Target == "" {
		return errors.New("screen.target is required")
	}
	if c.Screen.GrowthFraction < 0 || c.Screen.GrowthFraction > 1 {
		return fmt.Errorf("screen.growth_fraction %g outside [0, 1]", c.Screen.GrowthFraction)
	}
	if len(c.Variants) == 0 {
		return errors.New("at least one variant is required")
	}
	seen := make(map[string]bool, len(c.Variants))
	for _, v := range c.Variants {
		if v.Name == "" {
			return errors.New("variant name is required")
		}
		if seen[v.Name] {
			return fmt.Errorf("variant %s listed twice", v.Name)
		}
		seen[v.Name] = true
		if v.MetabolitesCSV == "" || v.ReactionsCSV == "" {
			return fmt.Errorf("variant %s: metabolites_csv and reactions_csv are required", v.Name)
		}
		for id, b := range v.Bounds {
			if b[0] > b[1] {
				return fmt.Errorf("variant %s: bounds for %s: lower bound %g exceeds upper bound %g", v.Name, id, b[0], b[1])
			}
		}
	}
	return nil
}

// resolvePath prefers interpreting relative paths as relative to the config
// file directory, but falls back to the provided path (relative to cwd) if
// that doesn't exist.
func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(dir, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

type pathwayFileWrapper struct {
	Pathway VariantConfig `yaml:"pathway"`
}

func loadPathwayFile(path string) (VariantConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return VariantConfig{}, err
	}
	var w pathwayFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return VariantConfig{}, err
	}
	dir := filepath.Dir(path)
	w.Pathway.MetabolitesCSV = resolvePath(dir, w.Pathway.MetabolitesCSV)
	w.Pathway.ReactionsCSV = resolvePath(dir, w.Pathway.ReactionsCSV)
	return w.Pathway, nil
}

// MergeVariant overlays non-zero fields from override onto base.
// This is used when loading a pathway file and then applying the variant's
// own overrides.
func MergeVariant(base, override VariantConfig) VariantConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.MetabolitesCSV != "" {
		out.MetabolitesCSV = override.MetabolitesCSV
	}
	if override.ReactionsCSV != "" {
		out.ReactionsCSV = override.ReactionsCSV
	}
	if len(override.Knockouts) > 0 {
		out.Knockouts = override.Knockouts
	}
	if len(override.Bounds) > 0 {
		out.Bounds = override.Bounds
	}
	return out
}
