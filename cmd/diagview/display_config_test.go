package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDisplayConfigFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, displayManifestName)
	data := `[display]
style = "plain"
color = "off"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write diagview.toml: %v", err)
	}
	cfg, err := loadDisplayConfigFile(path)
	if err != nil {
		t.Fatalf("loadDisplayConfigFile: %v", err)
	}
	if cfg.Display.Style != "plain" {
		t.Fatalf("style = %q, want plain", cfg.Display.Style)
	}
	if cfg.Display.Color != "off" {
		t.Fatalf("color = %q, want off", cfg.Display.Color)
	}
}

func TestLoadDisplayConfigFileRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing section", `style = "plain"`},
		{"bad style", "[display]\nstyle = \"fancy\"\n"},
		{"bad color", "[display]\ncolor = \"sometimes\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			path := filepath.Join(root, displayManifestName)
			if err := os.WriteFile(path, []byte(tc.data), 0o600); err != nil {
				t.Fatalf("write diagview.toml: %v", err)
			}
			if _, err := loadDisplayConfigFile(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFindDiagviewTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, displayManifestName)
	if err := os.WriteFile(path, []byte("[display]\nstyle = \"short\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, ok, err := findDiagviewToml(nested)
	if err != nil {
		t.Fatalf("findDiagviewToml: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if found != path {
		t.Fatalf("found %q, want %q", found, path)
	}
}
