package generator

import "context"

// SourceScanner discovers native source files below a project root and
// returns them relative to that root
type SourceScanner interface {
	ScanSources(ctx context.Context, root string) ([]string, error)
}

// ManifestBuilder creates and reconciles binding.gyp manifests
type ManifestBuilder interface {
	Init(ctx context.Context) (*InitResult, error)
	Update(ctx context.Context, opts UpdateOptions) (*UpdateResult, error)
}

// ProgressReporter receives the start and outcome of each detection step
type ProgressReporter interface {
	StartProgress(message string)
	EndProgress(success bool, message string)
}

type noopProgress struct{}

func (noopProgress) StartProgress(string)     {}
func (noopProgress) EndProgress(bool, string) {}
