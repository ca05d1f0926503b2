package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "go-screenshot-detector/internal/errors"
)

func testPNGBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestHTTPImageSource_RetryLogic(t *testing.T) {
	tests := []struct {
		name          string
		responses     []int // Status codes to return in sequence
		expectCalls   int
		expectError   bool
		errorContains string
		errorType     apperrors.ErrorType
	}{
		{
			name:        "Success on first attempt",
			responses:   []int{200},
			expectCalls: 1,
		},
		{
			name:        "Success on second attempt after 5xx",
			responses:   []int{500, 200},
			expectCalls: 2,
		},
		{
			name:          "404 maps to not found without retry",
			responses:     []int{404},
			expectCalls:   1,
			expectError:   true,
			errorContains: "image not found",
			errorType:     apperrors.ErrorTypeNotFound,
		},
		{
			name:          "Other 4xx stops immediately",
			responses:     []int{400},
			expectCalls:   1,
			expectError:   true,
			errorContains: "client error: status code 400",
			errorType:     apperrors.ErrorTypeNetwork,
		},
		{
			name:          "All 5xx exhausts the retries",
			responses:     []int{500, 502, 503},
			expectCalls:   3,
			expectError:   true,
			errorContains: "failed to fetch image after 3 attempts",
			errorType:     apperrors.ErrorTypeNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pngData := testPNGBytes(t)
			requestCount := 0

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				statusCode := 500
				if requestCount < len(tt.responses) {
					statusCode = tt.responses[requestCount]
				}
				requestCount++

				if statusCode == 200 {
					w.Header().Set("Content-Type", "image/png")
					w.Write(pngData)
					return
				}
				w.WriteHeader(statusCode)
				fmt.Fprintf(w, "Error %d", statusCode)
			}))
			defer server.Close()

			source := NewHTTPImageSource(5 * time.Second)
			src, err := source.Load(context.Background(), server.URL+"/doc.png")

			if requestCount != tt.expectCalls {
				t.Errorf("Expected %d requests, got %d", tt.expectCalls, requestCount)
			}

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got none")
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error containing %q, got %v", tt.errorContains, err)
				}
				if !apperrors.IsType(err, tt.errorType) {
					t.Errorf("Expected error type %s, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if src.Format != "png" {
				t.Errorf("Expected format png, got %s", src.Format)
			}
			if src.Width() != 8 || src.Height() != 8 {
				t.Errorf("Expected 8x8 image, got %dx%d", src.Width(), src.Height())
			}
		})
	}
}

func TestHTTPImageSource_NonImageBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer server.Close()

	source := NewHTTPImageSource(5 * time.Second)
	_, err := source.Load(context.Background(), server.URL+"/doc.png")

	if err == nil {
		t.Fatal("Expected decode error for non-image body")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeProcessing) {
		t.Errorf("Expected processing error type, got %v", err)
	}
}

func TestHTTPImageSource_InvalidURL(t *testing.T) {
	source := NewHTTPImageSource(5 * time.Second)

	_, err := source.Load(context.Background(), "http://\x7f invalid")
	if err == nil {
		t.Fatal("Expected error for invalid URL")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("Expected validation error type, got %v", err)
	}
}
