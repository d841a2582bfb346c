package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Manifest keys with a fixed position in the serialized target
const (
	keyTargetName   = "target_name"
	keySources      = "sources"
	keyIncludeDirs  = "include_dirs"
	keyDefines      = "defines"
	keyCFlags       = "cflags!"
	keyCFlagsCC     = "cflags_cc!"
	keyMSVSSettings = "msvs_settings"
	keyDependencies = "dependencies"
	keyTargets      = "targets"
)

// BuildManifest is the content of a binding.gyp file
type BuildManifest struct {
	Targets []Target

	// Extra holds top-level keys gypgen does not manage, compacted
	Extra map[string]json.RawMessage
}

// Target is one buildable unit of a manifest
type Target struct {
	TargetName   string
	Sources      []string
	IncludeDirs  []string
	Defines      []string
	CFlags       []string // removed from cflags ("cflags!")
	CFlagsCC     []string // removed from cflags_cc ("cflags_cc!")
	MSVSSettings json.RawMessage
	Dependencies []string

	// Extra holds target keys gypgen does not manage, compacted
	Extra map[string]json.RawMessage
}

// NewTarget returns a target carrying the fixed exception-handling settings
func NewTarget(name string) Target {
	if name == "" {
		name = DefaultTargetName
	}
	return Target{
		TargetName:   name,
		Sources:      []string{},
		Defines:      []string{NAPIDisableCppExceptions},
		CFlags:       []string{NoExceptionsFlag},
		CFlagsCC:     []string{NoExceptionsFlag},
		MSVSSettings: json.RawMessage(DefaultMSVSSettings),
	}
}

// MarshalJSON writes the managed keys in their fixed order followed by
// unmanaged keys in sorted order. Empty optional arrays are omitted.
func (t Target) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()

	if err := w.field(keyTargetName, t.TargetName); err != nil {
		return nil, err
	}
	sources := t.Sources
	if sources == nil {
		sources = []string{}
	}
	if err := w.field(keySources, sources); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		key    string
		values []string
	}{
		{keyIncludeDirs, t.IncludeDirs},
		{keyDefines, t.Defines},
		{keyCFlags, t.CFlags},
		{keyCFlagsCC, t.CFlagsCC},
	} {
		if len(f.values) == 0 {
			continue
		}
		if err := w.field(f.key, f.values); err != nil {
			return nil, err
		}
	}
	if len(t.MSVSSettings) > 0 {
		w.raw(keyMSVSSettings, t.MSVSSettings)
	}
	if len(t.Dependencies) > 0 {
		if err := w.field(keyDependencies, t.Dependencies); err != nil {
			return nil, err
		}
	}
	w.extra(t.Extra)

	return w.close(), nil
}

// UnmarshalJSON reads managed keys into typed fields and keeps the rest in Extra
func (t *Target) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*t = Target{}
	for key, value := range fields {
		var err error
		switch key {
		case keyTargetName:
			err = json.Unmarshal(value, &t.TargetName)
		case keySources:
			err = json.Unmarshal(value, &t.Sources)
		case keyIncludeDirs:
			err = json.Unmarshal(value, &t.IncludeDirs)
		case keyDefines:
			err = json.Unmarshal(value, &t.Defines)
		case keyCFlags:
			err = json.Unmarshal(value, &t.CFlags)
		case keyCFlagsCC:
			err = json.Unmarshal(value, &t.CFlagsCC)
		case keyMSVSSettings:
			t.MSVSSettings, err = compactRaw(value)
		case keyDependencies:
			err = json.Unmarshal(value, &t.Dependencies)
		default:
			if t.Extra == nil {
				t.Extra = make(map[string]json.RawMessage)
			}
			t.Extra[key], err = compactRaw(value)
		}
		if err != nil {
			return fmt.Errorf("invalid %q: %w", key, err)
		}
	}
	return nil
}

// MarshalJSON writes targets first, then unmanaged top-level keys
func (m BuildManifest) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	targets := m.Targets
	if targets == nil {
		targets = []Target{}
	}
	if err := w.field(keyTargets, targets); err != nil {
		return nil, err
	}
	w.extra(m.Extra)
	return w.close(), nil
}

// UnmarshalJSON reads the targets array and keeps other keys in Extra
func (m *BuildManifest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*m = BuildManifest{}
	for key, value := range fields {
		if key == keyTargets {
			if err := json.Unmarshal(value, &m.Targets); err != nil {
				return fmt.Errorf("invalid %q: %w", key, err)
			}
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]json.RawMessage)
		}
		raw, err := compactRaw(value)
		if err != nil {
			return fmt.Errorf("invalid %q: %w", key, err)
		}
		m.Extra[key] = raw
	}
	return nil
}

// Marshal serializes the manifest with 4-space indentation. gyp command
// expansions start with '<', so HTML escaping is disabled.
func (m BuildManifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseManifest decodes binding.gyp content
func ParseManifest(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// objectWriter builds a JSON object with caller-controlled key order
type objectWriter struct {
	buf   bytes.Buffer
	count int
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

func (w *objectWriter) field(key string, value interface{}) error {
	encoded, err := encodeNoEscape(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	w.raw(key, encoded)
	return nil
}

func (w *objectWriter) raw(key string, value []byte) {
	if w.count > 0 {
		w.buf.WriteByte(',')
	}
	encodedKey, _ := encodeNoEscape(key)
	w.buf.Write(encodedKey)
	w.buf.WriteByte(':')
	w.buf.Write(value)
	w.count++
}

func (w *objectWriter) extra(fields map[string]json.RawMessage) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		w.raw(key, fields[key])
	}
}

func (w *objectWriter) close() []byte {
	w.buf.WriteByte('}')
	return w.buf.Bytes()
}

func encodeNoEscape(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func compactRaw(value json.RawMessage) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}
