// Package config loads the helpdoc build configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/helpdoc/core/markup"
)

// DefaultFile is read when no configuration path is given and it exists in
// the working directory.
const DefaultFile = "helpdoc.yaml"

const (
	// EncoderBuiltin re-encodes diagrams in-process.
	EncoderBuiltin = "builtin"
	// EncoderIconv re-encodes diagrams with the iconv utility.
	EncoderIconv = "iconv"

	// SplicerBuiltin splices diagrams in-process. Any other splicer value
	// is the path of a helper binary.
	SplicerBuiltin = "builtin"
)

// DefaultToolTimeout bounds every external tool invocation.
const DefaultToolTimeout = 30 * time.Second

// Config describes where sources are read from and where outputs go.
// Empty optional outputs are not produced.
type Config struct {
	TopicsDir     string   `yaml:"topics_dir"`
	ProceduresDir string   `yaml:"procedures_dir"`
	DiagramsDir   string   `yaml:"diagrams_dir"`
	Template      string   `yaml:"template"`
	Stylesheet    string   `yaml:"stylesheet"`
	AssetDirs     []string `yaml:"asset_dirs"`

	TextOut     string `yaml:"text_out"`
	HTMLOut     string `yaml:"html_out"`
	TempDir     string `yaml:"temp_dir"`
	MarkdownOut string `yaml:"markdown_out"`
	PDFOut      string `yaml:"pdf_out"`
	ManifestOut string `yaml:"manifest_out"`

	TitleSuffix string        `yaml:"title_suffix"`
	ToolTimeout time.Duration `yaml:"tool_timeout"`
	Encoder     string        `yaml:"encoder"`
	Splicer     string        `yaml:"splicer"`
	Names       markup.Names  `yaml:"names"`
	Jobs        int           `yaml:"jobs"`
}

// Default returns the layout of the TMBASIC documentation tree, relative
// to its doc directory.
func Default() *Config {
	return &Config{
		TopicsDir:     "topics",
		ProceduresDir: "procedures",
		DiagramsDir:   "diagrams",
		Stylesheet:    "html/style.css",
		AssetDirs:     []string{"../ext/notoserif", "../ext/opensans", "../ext/oxygenmono"},
		TextOut:       "../obj/doc-txt",
		HTMLOut:       "../obj/doc-html",
		TempDir:       "../obj/doc-temp/diagrams-cp437",
		TitleSuffix:   " - TMBASIC Documentation",
		ToolTimeout:   DefaultToolTimeout,
		Encoder:       EncoderBuiltin,
		Splicer:       SplicerBuiltin,
		Names:         markup.DefaultNames(),
	}
}

// Load reads the configuration at path over the defaults. An empty path
// loads DefaultFile if it exists and the defaults otherwise.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Names = cfg.Names.WithDefaults()
	return cfg, nil
}

// Validate reports the first setting that cannot produce a build.
func (c *Config) Validate() error {
	dirs := []struct{ key, value string }{
		{"topics_dir", c.TopicsDir},
		{"procedures_dir", c.ProceduresDir},
		{"diagrams_dir", c.DiagramsDir},
		{"text_out", c.TextOut},
		{"html_out", c.HTMLOut},
		{"temp_dir", c.TempDir},
	}
	for _, d := range dirs {
		if d.value == "" {
			return fmt.Errorf("config: %s must not be empty", d.key)
		}
	}
	switch c.Encoder {
	case EncoderBuiltin, EncoderIconv:
	default:
		return fmt.Errorf("config: unknown encoder %q (want %s or %s)", c.Encoder, EncoderBuiltin, EncoderIconv)
	}
	if c.Splicer == "" {
		return errors.New("config: splicer must not be empty")
	}
	if c.ToolTimeout <= 0 {
		return fmt.Errorf("config: tool_timeout must be positive, got %s", c.ToolTimeout)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("config: jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}

// Resolve makes every relative path absolute against base, normally the
// directory holding the configuration file.
func (c *Config) Resolve(base string) {
	for _, p := range []*string{
		&c.TopicsDir, &c.ProceduresDir, &c.DiagramsDir, &c.Template, &c.Stylesheet,
		&c.TextOut, &c.HTMLOut, &c.TempDir, &c.MarkdownOut, &c.PDFOut, &c.ManifestOut,
	} {
		*p = resolve(base, *p)
	}
	for i := range c.AssetDirs {
		c.AssetDirs[i] = resolve(base, c.AssetDirs[i])
	}
	if c.Splicer != SplicerBuiltin && filepath.Base(c.Splicer) != c.Splicer {
		c.Splicer = resolve(base, c.Splicer)
	}
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
