package models

// Conventional file and directory names inside a native addon project
const (
	ManifestFileName = "binding.gyp"
	MetadataFileName = "package.json"
	IncludeDirName   = "include"

	DefaultTargetName = "binding"
)

// Names of the native-binding helper libraries detected in package.json
const (
	NodeAddonAPIPackage = "node-addon-api"
	NANPackage          = "nan"
)

// gyp command expansions resolving the helper libraries at configure time
const (
	NodeAddonAPIInclude    = `<!@(node -p "require('node-addon-api').include")`
	NodeAddonAPIDependency = `<!(node -p "require('node-addon-api').gyp")`
	NANInclude             = `<!(node -e "require('nan')")`
)

// Fixed compiler settings disabling C++ exceptions for N-API builds
const (
	NAPIDisableCppExceptions = "NAPI_DISABLE_CPP_EXCEPTIONS"
	NoExceptionsFlag         = "-fno-exceptions"
)

// DefaultMSVSSettings enables synchronous exception handling on MSVC
const DefaultMSVSSettings = `{"VCCLCompilerTool":{"ExceptionHandling":1}}`

// NativeSourceExtensions lists the extensions recorded by the tree scanner
var NativeSourceExtensions = []string{".c", ".cc", ".cpp"}

// ExcludedDirectories lists directory names the tree scanner never enters
var ExcludedDirectories = []string{"node_modules", ".git"}
