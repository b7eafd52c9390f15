package md2img

import "errors"

// Sentinel errors for library operations.
var (
	// Backend lifecycle errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("screenshot capture failed")

	// Hosted render service errors.
	ErrServiceRequest  = errors.New("render service request failed")
	ErrServiceResponse = errors.New("render service returned invalid response")

	// Artifact errors. A failed write is fatal to the render call;
	// a failed delete of a stale artifact is not.
	ErrArtifactWrite = errors.New("failed to write image artifact")

	// Configuration validation errors.
	ErrInvalidMode       = errors.New("invalid render mode")
	ErrInvalidThreshold  = errors.New("invalid render threshold")
	ErrInvalidBackend    = errors.New("invalid backend kind")
	ErrMissingServiceURL = errors.New("service backend requires a URL")
)
