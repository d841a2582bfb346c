package generator

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/toyz/gypgen/internal/models"
	"github.com/toyz/gypgen/internal/utils"
)

// Detection is everything gypgen learns about a project before building a target
type Detection struct {
	Metadata      models.ProjectMetadata
	MetadataFound bool
	IncludeDir    string // include directory name as written to include_dirs
	HasIncludeDir bool
	Helpers       models.HelperSet
	Excludes      []string // directory names skipped in addition to node_modules and .git
}

// includeDirs returns the detected include_dirs entries in manifest order
func (d Detection) includeDirs() []string {
	var dirs []string
	if d.HasIncludeDir {
		dirs = append(dirs, d.IncludeDir)
	}
	return append(dirs, d.Helpers.IncludeDirs()...)
}

// BuildTarget creates the single target written by init
func BuildTarget(det Detection, sources []string) models.Target {
	target := models.NewTarget(det.Metadata.TargetName())
	if sources != nil {
		target.Sources = append([]string{}, sources...)
	}
	target.IncludeDirs = nilIfEmpty(det.includeDirs())
	target.Dependencies = nilIfEmpty(det.Helpers.Dependencies())
	return target
}

// BuildManifest creates the manifest written by init
func BuildManifest(det Detection, sources []string) *models.BuildManifest {
	return &models.BuildManifest{
		Targets: []models.Target{BuildTarget(det, sources)},
	}
}

// Changes lists what Reconcile modified
type Changes struct {
	AddedSources        []string
	RemovedSources      []string
	AddedIncludeDirs    []string
	RemovedIncludeDirs  []string
	AddedDependencies   []string
	RemovedDependencies []string
	CreatedTarget       bool
}

// Empty reports whether Reconcile left the manifest untouched
func (c Changes) Empty() bool {
	return !c.CreatedTarget &&
		len(c.AddedSources) == 0 && len(c.RemovedSources) == 0 &&
		len(c.AddedIncludeDirs) == 0 && len(c.RemovedIncludeDirs) == 0 &&
		len(c.AddedDependencies) == 0 && len(c.RemovedDependencies) == 0
}

// Reconcile brings the first target of m in line with a fresh detection and
// scan. Sources still found keep their position, stale native sources are
// dropped and new ones are appended in scan order. Sources the scan cannot
// reach (outside the root or below an excluded directory) are kept. Entries gypgen manages in
// include_dirs and dependencies are added or removed to match det; every
// other entry and key is preserved. A manifest without targets gets the
// target init would have written.
func Reconcile(m *models.BuildManifest, det Detection, sources []string) Changes {
	if len(m.Targets) == 0 {
		target := BuildTarget(det, sources)
		m.Targets = []models.Target{target}
		return Changes{
			CreatedTarget:     true,
			AddedSources:      target.Sources,
			AddedIncludeDirs:  target.IncludeDirs,
			AddedDependencies: target.Dependencies,
		}
	}

	var changes Changes
	target := &m.Targets[0]
	if target.TargetName == "" {
		target.TargetName = det.Metadata.TargetName()
	}

	target.Sources, changes.AddedSources, changes.RemovedSources = reconcileSources(target.Sources, sources, det.Excludes)

	managedIncludes := []string{models.NodeAddonAPIInclude, models.NANInclude}
	if det.IncludeDir != "" {
		managedIncludes = append(managedIncludes, det.IncludeDir)
	}
	target.IncludeDirs, changes.AddedIncludeDirs, changes.RemovedIncludeDirs =
		reconcileManaged(target.IncludeDirs, det.includeDirs(), managedIncludes)

	target.Dependencies, changes.AddedDependencies, changes.RemovedDependencies =
		reconcileManaged(target.Dependencies, det.Helpers.Dependencies(), []string{models.NodeAddonAPIDependency})

	return changes
}

// reconcileSources merges the scanned sources into the existing list
func reconcileSources(existing, scanned, excludes []string) (merged, added, removed []string) {
	excluded := utils.ExcludedDirectoryFilter(excludes...)
	found := make(map[string]bool, len(scanned))
	for _, src := range scanned {
		found[path.Clean(src)] = true
	}

	merged = []string{}
	present := make(map[string]bool, len(existing))
	for _, src := range existing {
		key := path.Clean(filepath.ToSlash(src))
		if isManagedSource(key, excluded) && !found[key] {
			removed = append(removed, src)
			continue
		}
		merged = append(merged, src)
		present[key] = true
	}

	for _, src := range scanned {
		key := path.Clean(src)
		if present[key] {
			continue
		}
		merged = append(merged, src)
		added = append(added, src)
		present[key] = true
	}
	return merged, added, removed
}

// isManagedSource reports whether a sources entry is one the scanner would
// produce. Entries with gyp expansions, other extensions or paths outside the
// scanned tree belong to the user. src must be cleaned and slash-separated.
func isManagedSource(src string, excluded utils.DirectoryFilter) bool {
	if strings.ContainsAny(src, "<>$") {
		return false
	}
	if path.IsAbs(src) || filepath.IsAbs(src) || src == ".." || strings.HasPrefix(src, "../") {
		return false
	}
	for _, segment := range strings.Split(path.Dir(src), "/") {
		if excluded(segment) {
			return false
		}
	}
	ext := path.Ext(src)
	for _, native := range models.NativeSourceExtensions {
		if ext == native {
			return true
		}
	}
	return false
}

// reconcileManaged keeps unmanaged entries, drops managed entries that are
// no longer wanted and appends wanted entries that are missing
func reconcileManaged(existing, wanted, managed []string) (merged, added, removed []string) {
	isManaged := make(map[string]bool, len(managed))
	for _, entry := range managed {
		isManaged[entry] = true
	}
	isWanted := make(map[string]bool, len(wanted))
	for _, entry := range wanted {
		isWanted[entry] = true
	}

	present := make(map[string]bool, len(existing))
	for _, entry := range existing {
		if isManaged[entry] && !isWanted[entry] {
			removed = append(removed, entry)
			continue
		}
		merged = append(merged, entry)
		present[entry] = true
	}
	for _, entry := range wanted {
		if present[entry] {
			continue
		}
		merged = append(merged, entry)
		added = append(added, entry)
		present[entry] = true
	}
	return nilIfEmpty(merged), added, removed
}

func nilIfEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}
