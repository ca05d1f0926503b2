package validation

import (
	"net/url"
	"strings"

	apperrors "go-screenshot-detector/internal/errors"
)

// SourceValidator handles source-reference validation logic. A reference is
// either a URL (http, https, azure) or a local file path.
type SourceValidator struct {
	allowedSchemes []string
}

// NewSourceValidator creates a source validator with default settings
func NewSourceValidator() *SourceValidator {
	return &SourceValidator{
		allowedSchemes: []string{"http", "https", "azure"},
	}
}

// NewSourceValidatorWithSchemes creates a source validator accepting only
// the given URL schemes
func NewSourceValidatorWithSchemes(schemes []string) *SourceValidator {
	return &SourceValidator{allowedSchemes: schemes}
}

// ValidateSourceRef validates if the provided reference is acceptable for
// image detection
func (v *SourceValidator) ValidateSourceRef(ref string) error {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return apperrors.NewValidationError("source reference cannot be empty", nil)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" {
		// Plain file path; reachability is checked at load time.
		return nil
	}

	// Windows drive letters parse as single-letter schemes
	if len(parsed.Scheme) == 1 {
		return nil
	}

	if !v.isSchemeAllowed(parsed.Scheme) {
		return apperrors.NewValidationError("URL scheme not allowed: "+parsed.Scheme, nil)
	}

	if parsed.Host == "" {
		return apperrors.NewValidationError("URL must have a valid host", nil)
	}

	return nil
}

// isSchemeAllowed checks if the URL scheme is in the allowed list
func (v *SourceValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}
