package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	apperrors "go-screenshot-detector/internal/errors"
	"go-screenshot-detector/pkg/models"
)

// AzureImageSource loads images straight from Azure blob storage, for
// pipelines where document uploads land in a blob container.
type AzureImageSource struct {
	client *azblob.Client
}

// NewAzureImageSource creates a blob-backed image source using shared key
// credentials.
func NewAzureImageSource(accountName, accountKey string) (ImageSource, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureImageSource{client: client}, nil
}

// Load resolves references of the form azure://container/blobname.
func (s *AzureImageSource) Load(ctx context.Context, ref string) (*models.SourceImage, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid blob reference", err)
	}

	containerName := parsed.Host
	blobName := parsed.Path
	if len(blobName) > 0 && blobName[0] == '/' {
		blobName = blobName[1:]
	}
	if containerName == "" || blobName == "" {
		return nil, apperrors.NewValidationError("blob reference must name a container and blob", nil)
	}

	resp, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, apperrors.NewNetworkError("blob download failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError("blob read failed", err)
	}

	return decodeSourceImage(data, ref)
}
