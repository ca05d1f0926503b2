package factory

import (
	"testing"
	"time"
)

func TestCreateSource(t *testing.T) {
	f := NewSourceFactory(5 * time.Second)

	if _, err := f.CreateSource(LocalStorage); err != nil {
		t.Errorf("Expected local source, got error: %v", err)
	}
	if _, err := f.CreateSource(HTTPStorage); err != nil {
		t.Errorf("Expected HTTP source, got error: %v", err)
	}
	if _, err := f.CreateSource("ftp"); err == nil {
		t.Error("Expected error for unsupported storage type")
	}
}

func TestCreateSource_AzureRequiresCredentials(t *testing.T) {
	t.Setenv("AZURE_STORAGE_ACCOUNT", "")
	t.Setenv("AZURE_STORAGE_KEY", "")

	f := NewSourceFactory(5 * time.Second)

	if _, err := f.CreateSource(AzureStorage); err == nil {
		t.Error("Expected error without Azure credentials")
	}
}

func TestSourceForReference(t *testing.T) {
	t.Setenv("AZURE_STORAGE_ACCOUNT", "testaccount")
	t.Setenv("AZURE_STORAGE_KEY", "dGVzdGtleQ==")

	f := NewSourceFactory(5 * time.Second)

	tests := []struct {
		name string
		ref  string
	}{
		{"Relative path", "uploads/doc.png"},
		{"Absolute path", "/var/uploads/doc.png"},
		{"HTTP URL", "http://example.com/doc.png"},
		{"HTTPS URL", "https://example.com/doc.png"},
		{"Azure reference", "azure://documents/doc.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := f.SourceForReference(tt.ref)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if source == nil {
				t.Error("Expected a source for the reference")
			}
		})
	}
}
