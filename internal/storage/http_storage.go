package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "go-screenshot-detector/internal/errors"
	"go-screenshot-detector/pkg/models"
)

// HTTPImageSource fetches images over HTTP(S) before detection.
type HTTPImageSource struct {
	client *http.Client
}

// NewHTTPImageSource creates an HTTP image source tuned for single-image
// downloads.
func NewHTTPImageSource(timeout time.Duration) ImageSource {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPImageSource{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

func (h *HTTPImageSource) Load(ctx context.Context, imageURL string) (*models.SourceImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid image URL", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/webp, image/gif, */*")
	req.Header.Set("User-Agent", "Go-Screenshot-Detector/1.0")

	data, err := h.fetchWithRetry(req)
	if err != nil {
		return nil, err
	}

	return decodeSourceImage(data, imageURL)
}

// fetchWithRetry retries transient failures (network errors, 5xx) up to
// three attempts. 4xx responses are returned immediately; a 404 maps to
// the not-found error type so callers see the same failure mode as a
// missing local file.
func (h *HTTPImageSource) fetchWithRetry(req *http.Request) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
		}

		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			data, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = readErr
				continue
			}
			return data, nil

		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return nil, apperrors.NewNotFoundError("image not found: "+req.URL.String(), nil)

		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			resp.Body.Close()
			return nil, apperrors.NewNetworkError(
				fmt.Sprintf("client error: status code %d", resp.StatusCode), nil)

		default:
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
		}
	}

	return nil, apperrors.NewNetworkError("failed to fetch image after 3 attempts", lastErr)
}
