package cli

import (
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/toyz/gypgen/internal/errors"
	"github.com/toyz/gypgen/internal/generator"
	"github.com/toyz/gypgen/internal/models"
	"github.com/toyz/gypgen/internal/store"
	"github.com/toyz/gypgen/internal/utils"
	"github.com/toyz/gypgen/internal/utils/fileops"
)

// ConfigFileName is the optional per-project configuration file
const ConfigFileName = ".gypgen.yaml"

// Config holds the configuration for a gypgen run
type Config struct {
	// Root is the project directory scanned and written to
	Root string `yaml:"-"`

	// ManifestFile, MetadataFile and IncludeDir are relative to Root
	ManifestFile string `yaml:"manifest"`
	MetadataFile string `yaml:"metadata"`
	IncludeDir   string `yaml:"include_dir"`

	// CacheDir is the key/value cache directory used by --set and --get
	CacheDir string `yaml:"cache_dir"`

	// ExtraExcludes are directory names skipped in addition to node_modules and .git
	ExtraExcludes []string `yaml:"exclude"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `yaml:"verbose"`

	// Quiet only shows errors and requested values
	Quiet bool `yaml:"quiet"`

	// DryRun reports what update would change without writing
	DryRun bool `yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	return Config{
		Root:         ".",
		ManifestFile: models.ManifestFileName,
		MetadataFile: models.MetadataFileName,
		IncludeDir:   models.IncludeDirName,
		CacheDir:     store.DefaultPath(),
	}
}

// LoadConfigFile overlays the project's .gypgen.yaml onto base. Keys absent
// from the file keep their value from base. The boolean result reports
// whether a file was found.
func LoadConfigFile(base Config) (Config, bool, error) {
	fileOps := fileops.NewFileOps()
	path := filepath.Join(base.Root, ConfigFileName)
	if !fileOps.IsFile(path) {
		return base, false, nil
	}

	content, err := fileOps.ReadFile(path)
	if err != nil {
		return base, false, err
	}

	cfg := base
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return base, false, errors.WrapConfigurationError(ConfigFileName, "parse", err).
			WithLocation(path).
			WithSuggestion("Check the YAML syntax of " + ConfigFileName)
	}
	cfg.Root = base.Root
	return cfg, true, nil
}

// Validate checks the configuration before any file is touched
func (c Config) Validate() error {
	if c.Verbose && c.Quiet {
		return errors.New(errors.ConfigurationErrorCode, "--verbose and --quiet cannot be used together")
	}
	for _, field := range []struct{ name, value string }{
		{"manifest", c.ManifestFile},
		{"metadata", c.MetadataFile},
		{"include_dir", c.IncludeDir},
	} {
		chain := utils.NewValidatorChain(utils.NotEmpty(field.name), utils.RelativePath(field.name))
		if err := chain.Validate(field.value); err != nil {
			return errors.New(errors.ConfigurationErrorCode, err.Error()).
				WithContext("field", field.name).
				WithSuggestion("Remove the key from " + ConfigFileName + " to use the default")
		}
	}
	if err := utils.ValidateEach("exclude", utils.DirectoryName("exclude"))(c.ExtraExcludes); err != nil {
		return errors.New(errors.ConfigurationErrorCode, err.Error()).
			WithSuggestion("List directory names such as 'build', not paths")
	}
	return nil
}

// DiagnosticLevel maps the verbosity flags onto a diagnostic level
func (c Config) DiagnosticLevel() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}

// GeneratorOptions returns the manifest builder options for this run
func (c Config) GeneratorOptions() generator.Options {
	return generator.Options{
		Root:         c.Root,
		ManifestFile: c.ManifestFile,
		MetadataFile: c.MetadataFile,
		IncludeDir:   c.IncludeDir,
		Excludes:     c.ExtraExcludes,
	}
}
