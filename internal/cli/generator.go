package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/toyz/gypgen/internal/errors"
	"github.com/toyz/gypgen/internal/generator"
	"github.com/toyz/gypgen/internal/models"
	"github.com/toyz/gypgen/internal/store"
	"github.com/toyz/gypgen/internal/utils"
)

// Generator coordinates a single gypgen operation and reports on it
type Generator struct {
	config      Config
	scanner     *DirectoryScanner
	diagnostics *utils.DiagnosticSystem
}

// NewGenerator creates a CLI generator for cfg
func NewGenerator(cfg Config, diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		config:      cfg,
		scanner:     NewDirectoryScanner(cfg.ExtraExcludes),
		diagnostics: diagnostics,
	}
}

// builder creates the manifest builder for the resolved project root
func (g *Generator) builder() (*generator.Generator, error) {
	root, err := g.scanner.ResolveRoot(g.config.Root)
	if err != nil {
		return nil, err
	}
	g.diagnostics.Debug("Project root: %s", root)

	opts := g.config.GeneratorOptions()
	opts.Root = root
	return generator.NewGeneratorWithScanner(opts, g.scanner).WithProgress(g.diagnostics), nil
}

// Init generates a new manifest and prints it as a diff
func (g *Generator) Init(ctx context.Context) error {
	startTime := time.Now()
	g.diagnostics.Section("Generate " + g.config.ManifestFile)

	b, err := g.builder()
	if err != nil {
		return err
	}
	result, err := b.Init(ctx)
	if err != nil {
		return err
	}

	g.reportDetection(result.Detection)
	g.diagnostics.Diff(result.Diff)

	target := result.Manifest.Targets[0]
	g.diagnostics.Summary("Generation Complete!",
		[]string{"Target", "Sources", "Include dirs", "Dependencies", "Duration"},
		map[string]interface{}{
			"Target":       target.TargetName,
			"Sources":      len(target.Sources),
			"Include dirs": len(target.IncludeDirs),
			"Dependencies": len(target.Dependencies),
			"Duration":     time.Since(startTime).Round(time.Millisecond),
		})
	g.diagnostics.Success("%s written", result.Path)
	return nil
}

// Update reconciles the existing manifest and prints what changed
func (g *Generator) Update(ctx context.Context) error {
	startTime := time.Now()
	g.diagnostics.Section("Updating " + g.config.ManifestFile)

	b, err := g.builder()
	if err != nil {
		return err
	}
	result, err := b.Update(ctx, generator.UpdateOptions{DryRun: g.config.DryRun})
	if err != nil {
		return err
	}

	g.reportDetection(result.Detection)
	g.reportChanges(result.Changes)
	g.diagnostics.Diff(result.Diff)

	g.diagnostics.Summary("Update Complete!",
		[]string{"Sources added", "Sources removed", "Include dirs changed", "Dependencies changed", "Duration"},
		map[string]interface{}{
			"Sources added":        len(result.Changes.AddedSources),
			"Sources removed":      len(result.Changes.RemovedSources),
			"Include dirs changed": len(result.Changes.AddedIncludeDirs) + len(result.Changes.RemovedIncludeDirs),
			"Dependencies changed": len(result.Changes.AddedDependencies) + len(result.Changes.RemovedDependencies),
			"Duration":             time.Since(startTime).Round(time.Millisecond),
		})

	switch {
	case result.Written:
		g.diagnostics.Success("%s updated", result.Path)
	case result.Diff.Empty():
		g.diagnostics.Info("%s is already up to date", result.Path)
	default:
		g.diagnostics.Info("Dry run: %s was not modified", result.Path)
	}
	return nil
}

// Set stores a "key=value" assignment in the local cache
func (g *Generator) Set(assignment string) error {
	key, value, err := store.ParseAssignment(assignment)
	if err != nil {
		return err
	}

	g.diagnostics.Section(fmt.Sprintf("Set new config key %q with value: %s", key, value))
	return g.withStore(func(s *store.Store) error {
		return s.Set(key, value)
	})
}

// Get prints the value stored under key. The bare value goes to regular
// output even in quiet mode so it can be captured by scripts.
func (g *Generator) Get(key string) error {
	return g.withStore(func(s *store.Store) error {
		value, err := s.Get(key)
		if errors.HasCode(err, errors.KeyNotFoundErrorCode) {
			if keys, listErr := s.Keys(); listErr == nil && len(keys) > 0 {
				if base, ok := err.(*errors.BaseError); ok {
					base.WithSuggestion("Known keys: " + strings.Join(keys, ", "))
				}
			}
			return err
		}
		if err != nil {
			return err
		}

		g.diagnostics.Result(value)
		g.diagnostics.Verbose("Requested key '%s' has value => %s", key, value)
		return nil
	})
}

// Unset removes key from the local cache
func (g *Generator) Unset(key string) error {
	return g.withStore(func(s *store.Store) error {
		if err := s.Delete(key); err != nil {
			return err
		}
		g.diagnostics.Success("Removed config key %q", key)
		return nil
	})
}

// ClearCache removes every key from the local cache
func (g *Generator) ClearCache() error {
	return g.withStore(func(s *store.Store) error {
		removed, err := NewCleaner(s).ClearCache()
		for _, key := range removed {
			g.diagnostics.Verbose("Removed config key %q", key)
		}
		if err != nil {
			return err
		}
		g.diagnostics.Success("Cleared %d key(s) from %s", len(removed), g.config.CacheDir)
		return nil
	})
}

// withStore opens the cache for the duration of fn
func (g *Generator) withStore(fn func(s *store.Store) error) (err error) {
	g.diagnostics.Debug("Opening cache at %s", g.config.CacheDir)
	s, err := store.Open(store.Config{
		Path:        g.config.CacheDir,
		Diagnostics: g.diagnostics,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(s)
}

// reportDetection lists what was detected in verbose mode
func (g *Generator) reportDetection(det generator.Detection) {
	if g.diagnostics.Level() < utils.DiagnosticVerbose {
		return
	}

	g.diagnostics.Subsection("Detection")
	g.diagnostics.Indent()
	defer g.diagnostics.Unindent()
	if det.MetadataFound {
		g.diagnostics.List("Target name: %s", det.Metadata.TargetName())
	} else {
		g.diagnostics.List("Target name: %s (no readable %s)", models.DefaultTargetName, g.config.MetadataFile)
	}
	g.diagnostics.List("Include directory: %t", det.HasIncludeDir)
	if det.Helpers.NodeAddonAPI {
		g.diagnostics.List("%s %s", models.NodeAddonAPIPackage, models.DisplayVersion(det.Helpers.NodeAddonAPIVersion))
	}
	if det.Helpers.NAN {
		g.diagnostics.List("%s %s", models.NANPackage, models.DisplayVersion(det.Helpers.NANVersion))
	}
	if !det.Helpers.Any() {
		g.diagnostics.List("No %s or %s dependency", models.NodeAddonAPIPackage, models.NANPackage)
	}
}

// reportChanges lists the reconciled entries in verbose mode
func (g *Generator) reportChanges(changes generator.Changes) {
	if g.diagnostics.Level() < utils.DiagnosticVerbose || changes.Empty() {
		return
	}

	g.diagnostics.Subsection("Changes")
	g.diagnostics.Indent()
	defer g.diagnostics.Unindent()
	if changes.CreatedTarget {
		g.diagnostics.List("created target")
	}
	for _, group := range []struct {
		label   string
		added   []string
		removed []string
	}{
		{"source", changes.AddedSources, changes.RemovedSources},
		{"include dir", changes.AddedIncludeDirs, changes.RemovedIncludeDirs},
		{"dependency", changes.AddedDependencies, changes.RemovedDependencies},
	} {
		for _, entry := range group.added {
			g.diagnostics.List("+ %s %s", group.label, entry)
		}
		for _, entry := range group.removed {
			g.diagnostics.List("- %s %s", group.label, entry)
		}
	}
}
