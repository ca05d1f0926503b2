package factory

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"go-screenshot-detector/internal/storage"
)

// StorageType represents different types of storage backends
type StorageType string

const (
	// LocalStorage for local file system paths
	LocalStorage StorageType = "local"
	// HTTPStorage for HTTP-based image fetching
	HTTPStorage StorageType = "http"
	// AzureStorage for Azure blob storage
	AzureStorage StorageType = "azure"
)

// SourceFactory creates image source implementations
type SourceFactory interface {
	CreateSource(storageType StorageType) (storage.ImageSource, error)
	SourceForReference(ref string) (storage.ImageSource, error)
}

type sourceFactory struct {
	fetchTimeout time.Duration
}

// NewSourceFactory creates a new image source factory
func NewSourceFactory(fetchTimeout time.Duration) SourceFactory {
	return &sourceFactory{fetchTimeout: fetchTimeout}
}

// CreateSource creates a storage backend of the specified type
func (f *sourceFactory) CreateSource(storageType StorageType) (storage.ImageSource, error) {
	switch storageType {
	case LocalStorage:
		return storage.NewFileImageSource(), nil
	case HTTPStorage:
		return storage.NewHTTPImageSource(f.fetchTimeout), nil
	case AzureStorage:
		account := os.Getenv("AZURE_STORAGE_ACCOUNT")
		key := os.Getenv("AZURE_STORAGE_KEY")
		if account == "" || key == "" {
			return nil, fmt.Errorf("azure storage requires AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY")
		}
		return storage.NewAzureImageSource(account, key)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// SourceForReference picks a backend from the reference's scheme: http(s)
// URLs fetch remotely, azure:// references read blob storage, everything
// else is treated as a local file path.
func (f *sourceFactory) SourceForReference(ref string) (storage.ImageSource, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return f.CreateSource(LocalStorage)
	}

	switch parsed.Scheme {
	case "http", "https":
		return f.CreateSource(HTTPStorage)
	case "azure":
		return f.CreateSource(AzureStorage)
	default:
		return f.CreateSource(LocalStorage)
	}
}
