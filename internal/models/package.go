package models

import "golang.org/x/mod/semver"

// ProjectMetadata holds the package.json fields gypgen reads
type ProjectMetadata struct {
	Name         string            `json:"name"`
	Dependencies map[string]string `json:"dependencies"`
}

// TargetName returns the project name or the default target name
func (m ProjectMetadata) TargetName() string {
	if m.Name == "" {
		return DefaultTargetName
	}
	return m.Name
}

// HasDependency reports whether name is declared as a dependency
func (m ProjectMetadata) HasDependency(name string) bool {
	_, ok := m.Dependencies[name]
	return ok
}

// HelperSet records which native-binding helper libraries a project declares
type HelperSet struct {
	NodeAddonAPI        bool
	NAN                 bool
	NodeAddonAPIVersion string
	NANVersion          string
}

// DetectHelpers derives the helper flags from project metadata
func DetectHelpers(meta ProjectMetadata) HelperSet {
	return HelperSet{
		NodeAddonAPI:        meta.HasDependency(NodeAddonAPIPackage),
		NAN:                 meta.HasDependency(NANPackage),
		NodeAddonAPIVersion: meta.Dependencies[NodeAddonAPIPackage],
		NANVersion:          meta.Dependencies[NANPackage],
	}
}

// Any reports whether at least one helper is present
func (h HelperSet) Any() bool {
	return h.NodeAddonAPI || h.NAN
}

// IncludeDirs returns the helper include expressions in manifest order
func (h HelperSet) IncludeDirs() []string {
	var dirs []string
	if h.NodeAddonAPI {
		dirs = append(dirs, NodeAddonAPIInclude)
	}
	if h.NAN {
		dirs = append(dirs, NANInclude)
	}
	return dirs
}

// Dependencies returns the helper gyp dependency expressions
func (h HelperSet) Dependencies() []string {
	if h.NodeAddonAPI {
		return []string{NodeAddonAPIDependency}
	}
	return nil
}

// DisplayVersion normalizes an npm version requirement for display.
// Plain versions and caret/tilde ranges are rendered as canonical semver
// ("^1.2" becomes "v1.2.0"); anything else is returned unchanged.
func DisplayVersion(requirement string) string {
	v := requirement
	for len(v) > 0 && (v[0] == '^' || v[0] == '~' || v[0] == '=') {
		v = v[1:]
	}
	if v == "" {
		return requirement
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return requirement
	}
	return semver.Canonical(v)
}
