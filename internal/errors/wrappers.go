package errors

import "fmt"

// Common error constructors used throughout the codebase

// NewManifestExistsError reports that init would overwrite an existing manifest
func NewManifestExistsError(path string) *BaseError {
	return New(ManifestExistsErrorCode, "unable to initialize, manifest already exists").
		WithLocation(path).
		WithSuggestion("Run with --update to reconcile the existing manifest")
}

// NewManifestMissingError reports that update has no manifest to reconcile
func NewManifestMissingError(path string) *BaseError {
	return New(ManifestMissingErrorCode, "unable to find manifest, cannot trigger update").
		WithLocation(path).
		WithSuggestion("Run with --init to generate a manifest first")
}

// NewKeyNotFoundError reports a cache key with no stored value
func NewKeyNotFoundError(key string) *BaseError {
	return Newf(KeyNotFoundErrorCode, "requested key '%s' not found in the local cache", key).
		WithContext("key", key)
}

// WrapWithOperation wraps an error with an operation context
func WrapWithOperation(operation, item string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s %s", operation, item)
	return Wrap(UnknownErrorCode, message, cause)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapStoreError wraps key/value cache errors
func WrapStoreError(operation, key string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s cache key '%s'", operation, key)
	return Wrap(StoreErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("key", key)
}
