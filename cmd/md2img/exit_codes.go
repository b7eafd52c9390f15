package main

import (
	"errors"
	"os"

	md2img "github.com/alnah/go-md2img"
	"github.com/alnah/go-md2img/internal/config"
)

// Exit codes for md2img CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render or passthrough
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBackend = 4 // Browser or render-service errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Backend errors (exit 4)
	if errors.Is(err, md2img.ErrBrowserConnect) ||
		errors.Is(err, md2img.ErrPageCreate) ||
		errors.Is(err, md2img.ErrPageLoad) ||
		errors.Is(err, md2img.ErrScreenshot) ||
		errors.Is(err, md2img.ErrServiceRequest) ||
		errors.Is(err, md2img.ErrServiceResponse) {
		return ExitBackend
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2img.ErrArtifactWrite) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, md2img.ErrInvalidMode) ||
		errors.Is(err, md2img.ErrInvalidThreshold) ||
		errors.Is(err, md2img.ErrInvalidBackend) ||
		errors.Is(err, md2img.ErrMissingServiceURL) ||
		errors.Is(err, ErrTooManyArgs) {
		return ExitUsage
	}

	return ExitGeneral
}
