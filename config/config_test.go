package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/teranos/predef/errors"
)

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance without user or project config files.
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	if cfg.Output.Dir != "pypredefs" {
		t.Errorf("expected default output dir 'pypredefs', got %q", cfg.Output.Dir)
	}
	if len(cfg.Namespaces.Names) != 0 {
		t.Errorf("expected no default namespaces, got %v", cfg.Namespaces.Names)
	}
	if cfg.Namespaces.ListFile != "" {
		t.Errorf("expected no default list file, got %q", cfg.Namespaces.ListFile)
	}
	if cfg.Log.JSON {
		t.Error("expected JSON logging off by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predef.toml")
	content := `
[output]
dir = "stubs"

[namespaces]
names = ["gimp", "gimpenums"]

[docs]
strip_class_docs = ["gimp*"]

[go]
packages = ["./..."]

[log]
json = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if cfg.Output.Dir != "stubs" {
		t.Errorf("expected output dir 'stubs', got %q", cfg.Output.Dir)
	}
	if len(cfg.Namespaces.Names) != 2 || cfg.Namespaces.Names[0] != "gimp" {
		t.Errorf("unexpected namespace names: %v", cfg.Namespaces.Names)
	}
	if len(cfg.Docs.StripClassDocs) != 1 || cfg.Docs.StripClassDocs[0] != "gimp*" {
		t.Errorf("unexpected strip patterns: %v", cfg.Docs.StripClassDocs)
	}
	if len(cfg.Go.Packages) != 1 || cfg.Go.Packages[0] != "./..." {
		t.Errorf("unexpected go packages: %v", cfg.Go.Packages)
	}
	if !cfg.Log.JSON {
		t.Error("expected JSON logging enabled")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate_EmptyOutputDir(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for empty output dir")
	}
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_BadGlob(t *testing.T) {
	cfg := Config{
		Output: OutputConfig{Dir: "out"},
		Docs:   DocsConfig{StripClassDocs: []string{"[unterminated"}},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for malformed glob pattern")
	}
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStripGlobs_Match(t *testing.T) {
	cfg := Config{
		Output: OutputConfig{Dir: "out"},
		Docs:   DocsConfig{StripClassDocs: []string{"gimp*", "gtk"}},
	}
	globs, err := cfg.StripGlobs()
	if err != nil {
		t.Fatalf("StripGlobs() failed: %v", err)
	}

	if !globs[0].Match("gimpenums") {
		t.Error("expected gimp* to match gimpenums")
	}
	if globs[0].Match("gtk") {
		t.Error("gimp* should not match gtk")
	}
	if !globs[1].Match("gtk") {
		t.Error("expected gtk to match itself")
	}
}

func TestResolveNames_ListFileMerge(t *testing.T) {
	listPath := filepath.Join(t.TempDir(), "namespaces.txt")
	content := "gimpenums\n\n# core module below\ngimp\ngimpui\n"
	if err := os.WriteFile(listPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		Namespaces: NamespacesConfig{
			Names:    []string{"gimp", "gimpcolor"},
			ListFile: listPath,
		},
	}
	names, err := cfg.ResolveNames()
	if err != nil {
		t.Fatalf("ResolveNames() failed: %v", err)
	}

	want := []string{"gimp", "gimpcolor", "gimpenums", "gimpui"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestResolveNames_MissingListFile(t *testing.T) {
	cfg := Config{Namespaces: NamespacesConfig{ListFile: "/nonexistent/list.txt"}}
	if _, err := cfg.ResolveNames(); err == nil {
		t.Fatal("expected error for missing list file")
	}
}
