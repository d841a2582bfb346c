package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/gypgen/internal/errors"
	"github.com/toyz/gypgen/internal/models"
	"github.com/toyz/gypgen/internal/utils"
	"github.com/toyz/gypgen/internal/utils/fileops"
)

// Options locates the project files the generator reads and writes
type Options struct {
	Root         string // project root, also the scan root
	ManifestFile string // defaults to binding.gyp
	MetadataFile string // defaults to package.json
	IncludeDir   string // defaults to include
	Excludes     []string // directory names skipped in addition to node_modules and .git
}

func (o Options) withDefaults() Options {
	if o.ManifestFile == "" {
		o.ManifestFile = models.ManifestFileName
	}
	if o.MetadataFile == "" {
		o.MetadataFile = models.MetadataFileName
	}
	if o.IncludeDir == "" {
		o.IncludeDir = models.IncludeDirName
	}
	return o
}

// UpdateOptions configures a single update run
type UpdateOptions struct {
	// DryRun computes the reconciled manifest without writing it
	DryRun bool
}

// InitResult describes a freshly generated manifest
type InitResult struct {
	Path      string
	Manifest  *models.BuildManifest
	Content   []byte
	Diff      utils.ManifestDiff
	Detection Detection
}

// UpdateResult describes a reconciled manifest
type UpdateResult struct {
	Path      string
	Manifest  *models.BuildManifest
	Content   []byte
	Diff      utils.ManifestDiff
	Detection Detection
	Changes   Changes
	Written   bool
}

// Generator implements the ManifestBuilder interface
type Generator struct {
	opts     Options
	scanner  SourceScanner
	reader   *utils.ProjectReader
	fileOps  *fileops.FileOps
	progress ProgressReporter
}

// NewGenerator creates a generator using the default tree scanner
func NewGenerator(opts Options) *Generator {
	return NewGeneratorWithScanner(opts, utils.NewFileProcessorWithExcludes(opts.Excludes))
}

// NewGeneratorWithScanner creates a generator with a custom source scanner
func NewGeneratorWithScanner(opts Options, scanner SourceScanner) *Generator {
	opts = opts.withDefaults()
	return &Generator{
		opts:     opts,
		scanner:  scanner,
		reader:   utils.NewProjectReader(opts.Root),
		fileOps:  fileops.NewFileOps(),
		progress: noopProgress{},
	}
}

// WithProgress reports detection steps to p
func (g *Generator) WithProgress(p ProgressReporter) *Generator {
	if p == nil {
		p = noopProgress{}
	}
	g.progress = p
	return g
}

// ManifestPath returns the absolute or root-joined manifest location
func (g *Generator) ManifestPath() (string, error) {
	return g.reader.Path(g.opts.ManifestFile)
}

// Init generates a new manifest. It refuses to run when the manifest
// already exists and never writes when detection or the scan fails.
func (g *Generator) Init(ctx context.Context) (*InitResult, error) {
	manifestPath, err := g.ManifestPath()
	if err != nil {
		return nil, err
	}
	if g.fileOps.Exists(manifestPath) {
		return nil, errors.NewManifestExistsError(manifestPath)
	}

	det := g.detect()
	sources, err := g.scan(ctx)
	if err != nil {
		return nil, err
	}

	manifest := BuildManifest(det, sources)
	content, err := manifest.Marshal()
	if err != nil {
		return nil, errors.WrapWithOperation("serialize", g.opts.ManifestFile, err)
	}

	diff, err := utils.RenderDiff(g.opts.ManifestFile, nil, content)
	if err != nil {
		return nil, errors.WrapWithOperation("render diff for", g.opts.ManifestFile, err)
	}

	if err := g.fileOps.CreateFile(manifestPath, content, 0644); err != nil {
		return nil, err
	}

	return &InitResult{
		Path:      manifestPath,
		Manifest:  manifest,
		Content:   content,
		Diff:      diff,
		Detection: det,
	}, nil
}

// Update reconciles the existing manifest with the current project state.
// The file is rewritten only when the reconciled manifest differs from the
// normalized original.
func (g *Generator) Update(ctx context.Context, opts UpdateOptions) (*UpdateResult, error) {
	manifestPath, err := g.ManifestPath()
	if err != nil {
		return nil, err
	}
	if !g.fileOps.Exists(manifestPath) {
		return nil, errors.NewManifestMissingError(manifestPath)
	}

	raw, err := g.fileOps.ReadFile(manifestPath)
	if err != nil {
		return nil, err
	}
	manifest, err := models.ParseManifest(raw)
	if err != nil {
		return nil, errors.WrapConfigurationError(g.opts.ManifestFile, "parse", err).
			WithLocation(manifestPath).
			WithSuggestion("Fix the JSON syntax or remove the file and run --init")
	}

	before, err := manifest.Marshal()
	if err != nil {
		return nil, errors.WrapWithOperation("serialize", g.opts.ManifestFile, err)
	}

	det := g.detect()
	sources, err := g.scan(ctx)
	if err != nil {
		return nil, err
	}

	changes := Reconcile(manifest, det, sources)
	after, err := manifest.Marshal()
	if err != nil {
		return nil, errors.WrapWithOperation("serialize", g.opts.ManifestFile, err)
	}

	diff, err := utils.RenderDiff(g.opts.ManifestFile, before, after)
	if err != nil {
		return nil, errors.WrapWithOperation("render diff for", g.opts.ManifestFile, err)
	}

	result := &UpdateResult{
		Path:      manifestPath,
		Manifest:  manifest,
		Content:   after,
		Diff:      diff,
		Detection: det,
		Changes:   changes,
	}
	if diff.Empty() || opts.DryRun {
		return result, nil
	}

	if err := g.fileOps.WriteFile(manifestPath, after, 0644); err != nil {
		return nil, err
	}
	result.Written = true
	return result, nil
}

// detect reads package metadata and checks for the include directory
func (g *Generator) detect() Detection {
	det := Detection{
		IncludeDir: filepath.ToSlash(filepath.Clean(g.opts.IncludeDir)),
		Excludes:   g.opts.Excludes,
	}

	g.progress.StartProgress(fmt.Sprintf("Parsing local %s...", g.opts.MetadataFile))
	det.Metadata, det.MetadataFound = g.reader.ReadMetadata(g.opts.MetadataFile)
	det.Helpers = models.DetectHelpers(det.Metadata)
	g.progress.EndProgress(det.MetadataFound, "")

	g.progress.StartProgress(fmt.Sprintf("/%s dir exist", det.IncludeDir))
	det.HasIncludeDir = g.reader.HasEntry(g.opts.IncludeDir)
	g.progress.EndProgress(det.HasIncludeDir, "")

	return det
}

// scan runs the source scanner over the project root
func (g *Generator) scan(ctx context.Context) ([]string, error) {
	g.progress.StartProgress(fmt.Sprintf("Search for %s files in the local tree...",
		strings.Join(models.NativeSourceExtensions, ", ")))
	sources, err := g.scanner.ScanSources(ctx, g.opts.Root)
	if err != nil {
		g.progress.EndProgress(false, "")
		return nil, err
	}
	g.progress.EndProgress(true, fmt.Sprintf("Found %d native source file(s)", len(sources)))
	return sources, nil
}
