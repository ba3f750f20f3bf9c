package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"loom/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new loom project",
	Long: `Initialize a new loom project by creating a project manifest (loom.toml)
and an example program snapshot (app.snapshot.json). If [path|name] is omitted,
initializes the current directory. If a non-existing name is provided, a
directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes a loom project at the specified target path (or the
// current working directory when no argument or "." is provided) by creating
// a loom.toml manifest and an example snapshot.
//
// It resolves the target path, creates the directory if it does not exist,
// derives a project name from the directory basename (falling back to
// "loom-project" for invalid names), and refuses to initialize if loom.toml
// already exists. On success it writes the manifest and snapshot and prints
// the created files; it returns an error for any filesystem or validation
// failures.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "loom-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, config.File)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create the example snapshot if not exists
	snapshotPath := filepath.Join(target, "app.snapshot.json")
	createdSnapshot := false
	if _, err := os.Stat(snapshotPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(snapshotPath, []byte(defaultSnapshot(name)), 0o600); err != nil {
			return fmt.Errorf("failed to write app.snapshot.json: %w", err)
		}
		createdSnapshot = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized loom project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", config.File)
	if createdSnapshot {
		fmt.Fprintf(os.Stdout, "  - app.snapshot.json\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - app.snapshot.json (existing)\n")
	}
	fmt.Fprintf(os.Stdout, "run: loom expand app.snapshot.json\n")
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest for a loom project.
// The manifest doubles as the project marker for config discovery.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# Loom project manifest: %s
[expand]
jobs = 0
max_diagnostics = 100

[cache]
enabled = false

[ui]
progress = true
color = "auto"
`, name)
}

// defaultSnapshot returns an example snapshot that exercises every built-in
// macro across all three phases.
func defaultSnapshot(name string) string {
	return fmt.Sprintf(`{
  "library": "app:%s",
  "declarations": [
    {"kind": "class", "name": "Point"},
    {"kind": "field", "name": "_x", "owner": "Point", "type": "int"},
    {"kind": "field", "name": "_y", "owner": "Point", "type": "int"},
    {"kind": "method", "name": "translate", "owner": "Point", "returns": "Point",
     "params": [{"name": "dx", "type": "int"}, {"name": "dy", "type": "int"}]},
    {"kind": "enum", "name": "Color"},
    {"kind": "enum_value", "name": "red", "owner": "Color"},
    {"kind": "enum_value", "name": "green", "owner": "Color"},
    {"kind": "function", "name": "main"}
  ],
  "applications": [
    {"macro": "dataInterface", "target": "Point"},
    {"macro": "autoEquals", "target": "Point"},
    {"macro": "observable", "target": "Point._x"},
    {"macro": "enumLabels", "target": "Color"},
    {"macro": "enumLabels", "target": "Color.red"},
    {"macro": "traceEntry", "target": "Point.translate"},
    {"macro": "traceEntry", "target": "main"}
  ]
}
`, name)
}
