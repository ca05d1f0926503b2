package validation

import (
	"testing"

	apperrors "go-screenshot-detector/internal/errors"
)

func TestValidateSourceRef(t *testing.T) {
	v := NewSourceValidator()

	tests := []struct {
		name        string
		ref         string
		expectError bool
	}{
		{"Relative file path", "uploads/passport.png", false},
		{"Absolute file path", "/var/uploads/passport.jpg", false},
		{"Windows drive path", `C:\uploads\passport.png`, false},
		{"HTTP URL", "http://example.com/doc.png", false},
		{"HTTPS URL", "https://example.com/doc.png", false},
		{"Azure URL", "azure://documents/passport.png", false},
		{"Empty reference", "", true},
		{"Whitespace only", "   ", true},
		{"Disallowed scheme", "ftp://example.com/doc.png", true},
		{"URL without host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSourceRef(tt.ref)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q, got none", tt.ref)
					return
				}
				if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
					t.Errorf("Expected validation error type, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected %q to validate, got %v", tt.ref, err)
			}
		})
	}
}

func TestValidateSourceRef_CustomSchemes(t *testing.T) {
	v := NewSourceValidatorWithSchemes([]string{"https"})

	if err := v.ValidateSourceRef("https://example.com/doc.png"); err != nil {
		t.Errorf("Expected https to validate, got %v", err)
	}
	if err := v.ValidateSourceRef("http://example.com/doc.png"); err == nil {
		t.Error("Expected http to be rejected when only https is allowed")
	}
}
