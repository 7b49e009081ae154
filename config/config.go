// Package config loads the predef tool configuration from predef.toml,
// environment variables, and defaults.
package config

import (
	"os"
	"strings"

	"github.com/gobwas/glob"

	"github.com/teranos/predef/errors"
)

// Config is the predef tool configuration.
type Config struct {
	Output     OutputConfig     `mapstructure:"output"`
	Namespaces NamespacesConfig `mapstructure:"namespaces"`
	Docs       DocsConfig       `mapstructure:"docs"`
	Go         GoConfig         `mapstructure:"go"`
	Log        LogConfig        `mapstructure:"log"`
}

// OutputConfig controls where stub files land.
type OutputConfig struct {
	Dir string `mapstructure:"dir"` // stub output directory (default: "pypredefs")
}

// NamespacesConfig selects the namespaces to generate.
type NamespacesConfig struct {
	Names    []string `mapstructure:"names"`     // dotted namespace names
	ListFile string   `mapstructure:"list_file"` // file with one dotted name per line, merged after Names
}

// DocsConfig controls documentation handling.
type DocsConfig struct {
	// StripClassDocs lists glob patterns of namespaces whose class
	// documentation is dropped from the output.
	StripClassDocs []string `mapstructure:"strip_class_docs"`
}

// GoConfig configures the Go package provider.
type GoConfig struct {
	Packages []string `mapstructure:"packages"` // go package patterns loaded through goscope
}

// LogConfig configures logging output.
type LogConfig struct {
	JSON bool `mapstructure:"json"` // structured JSON log output
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "output.dir cannot be empty")
	}
	if _, err := c.StripGlobs(); err != nil {
		return err
	}
	return nil
}

// StripGlobs compiles the strip-docs patterns.
func (c *Config) StripGlobs() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(c.Docs.StripClassDocs))
	for _, pattern := range c.Docs.StripClassDocs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidConfig,
				"docs.strip_class_docs pattern %q: %v", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// ResolveNames merges the configured namespace names with the contents of
// the namespace list file. Blank lines and #-comments are skipped; order
// is preserved and duplicates drop.
func (c *Config) ResolveNames() ([]string, error) {
	names := append([]string(nil), c.Namespaces.Names...)
	if c.Namespaces.ListFile != "" {
		data, err := os.ReadFile(c.Namespaces.ListFile)
		if err != nil {
			return nil, errors.Wrapf(err, "reading namespace list %s", c.Namespaces.ListFile)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			names = append(names, line)
		}
	}

	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}
