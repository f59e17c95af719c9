package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	pkgopenapi "github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/validation"
)

const (
	DefaultAddr     = ":8080"
	DefaultBasePath = ""
)

// Config is the root of the YAML document.
type Config struct {
	Title       string               `yaml:"title,omitempty"`
	Intro       string               `yaml:"intro,omitempty"`
	SubmitLabel string               `yaml:"submit_label,omitempty"`
	LogLevel    string               `yaml:"log_level,omitempty"`
	Schema      string               `yaml:"schema,omitempty"`
	Server      Server               `yaml:"server"`
	Theme       Theme                `yaml:"theme,omitempty"`
	Messages    validation.Messages  `yaml:"messages,omitempty"`
	Presets     orchestrator.Presets `yaml:"presets,omitempty"`

	dir string
}

// Server configures the HTTP surface.
type Server struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"base_path"`
	// Live enables the websocket endpoint and the runtime script.
	Live bool `yaml:"live"`
	// CSRFField names the hidden input carrying the CSRF token. Empty
	// disables the token.
	CSRFField string `yaml:"csrf_field,omitempty"`
}

// Theme mirrors the go-theme manifest fields the renderer consumes.
type Theme struct {
	Name     string                  `yaml:"name,omitempty"`
	Variant  string                  `yaml:"variant,omitempty"`
	Tokens   map[string]string       `yaml:"tokens,omitempty"`
	Assets   Assets                  `yaml:"assets,omitempty"`
	Variants map[string]ThemeVariant `yaml:"variants,omitempty"`
}

// ThemeVariant overrides tokens and assets of the base theme.
type ThemeVariant struct {
	Tokens map[string]string `yaml:"tokens,omitempty"`
	Assets Assets            `yaml:"assets,omitempty"`
}

// Assets locates theme files.
type Assets struct {
	Prefix string            `yaml:"prefix,omitempty"`
	Files  map[string]string `yaml:"files,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:     DefaultAddr,
			BasePath: DefaultBasePath,
			Live:     true,
		},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes a YAML document on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the YAML decoder cannot.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path %q must start with /", c.Server.BasePath)
	}
	c.Server.BasePath = strings.TrimRight(c.Server.BasePath, "/")

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}

	if c.Theme.Name == "" && (c.Theme.Variant != "" || len(c.Theme.Tokens) > 0 || len(c.Theme.Variants) > 0) {
		return errors.New("theme.name is required when theme settings are present")
	}
	if err := c.Messages.Check(); err != nil {
		return fmt.Errorf("messages: %w", err)
	}
	if c.Theme.Variant != "" {
		if _, ok := c.Theme.Variants[c.Theme.Variant]; !ok {
			return fmt.Errorf("theme.variant %q is not declared under theme.variants", c.Theme.Variant)
		}
	}
	return nil
}

// RenderOptions converts the presentation settings.
func (c *Config) RenderOptions() render.RenderOptions {
	return render.RenderOptions{
		Title:       c.Title,
		Intro:       c.Intro,
		SubmitLabel: c.SubmitLabel,
	}
}

// Validator builds a validator using the configured messages.
func (c *Config) Validator() *validation.Validator {
	return validation.New(validation.WithMessages(c.Messages))
}

// Document loads the configured schema, or returns nil for the embedded one.
func (c *Config) Document() (*pkgopenapi.Document, error) {
	if strings.TrimSpace(c.Schema) == "" {
		return nil, nil
	}
	path := c.Schema
	if !filepath.IsAbs(path) && c.dir != "" {
		path = filepath.Join(c.dir, path)
	}
	doc, err := pkgopenapi.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: schema: %w", err)
	}
	return &doc, nil
}

// ThemeManifest converts the theme section, or returns nil when no theme is
// configured.
func (c *Config) ThemeManifest() *theme.Manifest {
	if c.Theme.Name == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:   c.Theme.Name,
		Tokens: c.Theme.Tokens,
		Assets: theme.Assets{
			Prefix: c.Theme.Assets.Prefix,
			Files:  c.Theme.Assets.Files,
		},
		Variants: make(map[string]theme.Variant, len(c.Theme.Variants)),
	}
	for name, variant := range c.Theme.Variants {
		manifest.Variants[name] = theme.Variant{
			Tokens: variant.Tokens,
			Assets: theme.Assets{
				Prefix: variant.Assets.Prefix,
				Files:  variant.Assets.Files,
			},
		}
	}
	return manifest
}

// OrchestratorOptions wires validator, presets, theme and logger into an
// orchestrator.
func (c *Config) OrchestratorOptions(logger *zap.Logger) []orchestrator.Option {
	options := []orchestrator.Option{
		orchestrator.WithValidator(c.Validator()),
		orchestrator.WithLogger(logger),
	}
	if !c.Presets.Empty() {
		options = append(options, orchestrator.WithSchemaTransformer(orchestrator.NewPresetTransformer(c.Presets)))
	}
	if manifest := c.ThemeManifest(); manifest != nil {
		selector := render.NewManifestSelector(manifest.Name, c.Theme.Variant, manifest)
		options = append(options, orchestrator.WithThemeSelector(selector, manifest.Name, c.Theme.Variant))
	}
	return options
}
