package md2img

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// serviceBackend delegates painting to a hosted render service over
// HTTP instead of a local browser. The service receives the document
// and capture options and replies with either raw JPEG bytes or a JSON
// envelope carrying a base64 `data` field.
type serviceBackend struct {
	url    string
	client *http.Client
}

// renderRequest is the wire format sent to the hosted service.
type renderRequest struct {
	HTML    string        `json:"html"`
	Options renderOptions `json:"options"`
}

type renderOptions struct {
	Type    string `json:"type"`
	Quality int    `json:"quality"`
}

// NewServiceBackend creates a backend that calls a hosted render
// service at url. Pass the result to WithBackend.
func NewServiceBackend(url string, timeout time.Duration) (*serviceBackend, error) {
	if url == "" {
		return nil, ErrMissingServiceURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &serviceBackend{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// RenderImage posts the document to the service and decodes the reply.
func (s *serviceBackend) RenderImage(ctx context.Context, htmlDoc string) ([]byte, error) {
	payload, err := json.Marshal(renderRequest{
		HTML:    htmlDoc,
		Options: renderOptions{Type: "jpeg", Quality: jpegQuality},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrServiceRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceResponse, err)
	}

	// Image endpoints reply with raw bytes; JSON envelopes carry a
	// base64 data field.
	if !strings.HasPrefix(strings.TrimSpace(resp.Header.Get("Content-Type")), "application/json") {
		if len(body) == 0 {
			return nil, fmt.Errorf("%w: empty body", ErrServiceResponse)
		}
		return body, nil
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() {
		return nil, fmt.Errorf("%w: missing data field", ErrServiceResponse)
	}

	img, err := base64.StdEncoding.DecodeString(data.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceResponse, err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrServiceResponse)
	}
	return img, nil
}

// Close is a no-op: the backend holds no persistent connection state
// beyond the HTTP client's idle pool.
func (s *serviceBackend) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
