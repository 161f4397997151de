package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const displayManifestName = "diagview.toml"

type displayManifest struct {
	Path   string
	Root   string
	Config displayConfigFile
}

type displayConfigFile struct {
	Display displaySection `toml:"display"`
}

type displaySection struct {
	Style string `toml:"style"`
	Color string `toml:"color"`
}

// findDiagviewToml walks upward from startDir looking for diagview.toml, in
// the manner of toolchain manifests, so targets deep in a tree pick up the
// project's display defaults.
func findDiagviewToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, displayManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadDisplayManifest locates and parses the nearest diagview.toml. The
// second return reports whether one was found; a missing manifest is not an
// error.
func loadDisplayManifest(startDir string) (*displayManifest, bool, error) {
	manifestPath, ok, err := findDiagviewToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadDisplayConfigFile(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &displayManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadDisplayConfigFile(path string) (displayConfigFile, error) {
	var cfg displayConfigFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return displayConfigFile{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("display") {
		return displayConfigFile{}, fmt.Errorf("%s: missing [display]", path)
	}
	if meta.IsDefined("display", "style") {
		switch cfg.Display.Style {
		case "rich", "plain", "short":
		default:
			return displayConfigFile{}, fmt.Errorf("%s: invalid [display].style %q (must be rich, plain, or short)", path, cfg.Display.Style)
		}
	}
	if meta.IsDefined("display", "color") {
		switch cfg.Display.Color {
		case "auto", "on", "off":
		default:
			return displayConfigFile{}, fmt.Errorf("%s: invalid [display].color %q (must be auto, on, or off)", path, cfg.Display.Color)
		}
	}
	return cfg, nil
}
