// internal/services/picker.go
package services

import (
	"context"
	"fmt"
	"mime/multipart"
)

type PickResult struct {
	Cancelled bool
	Name      string
	URI       string
}

// Picker selects one file of any type. A user cancellation is a result, not an error.
type Picker interface {
	Pick(ctx context.Context) (PickResult, error)
}

// UploadPicker treats a multipart upload as the picked file. The file is stored
// first and the stored object URL becomes the picked URI.
type UploadPicker struct {
	storage *StorageService
	header  *multipart.FileHeader
}

// NewUploadPicker returns a picker that reports a cancellation when header is nil.
func NewUploadPicker(storage *StorageService, header *multipart.FileHeader) *UploadPicker {
	return &UploadPicker{storage: storage, header: header}
}

func (p *UploadPicker) Pick(ctx context.Context) (PickResult, error) {
	if p.header == nil {
		return PickResult{Cancelled: true}, nil
	}

	file, err := p.header.Open()
	if err != nil {
		return PickResult{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	result, err := p.storage.UploadFile(ctx, file, p.header, p.storage.GetDefaultUploadOptions(UploadCategoryDocuments))
	if err != nil {
		return PickResult{}, err
	}
	return PickResult{Name: p.header.Filename, URI: result.URL}, nil
}

// LinkOpener resolves a URI into something the client can open outside the app.
type LinkOpener interface {
	Open(ctx context.Context, uri string) (string, error)
}

type StorageLinkOpener struct {
	storage *StorageService
}

func NewStorageLinkOpener(storage *StorageService) *StorageLinkOpener {
	return &StorageLinkOpener{storage: storage}
}

func (o *StorageLinkOpener) Open(ctx context.Context, uri string) (string, error) {
	return o.storage.ResolveURL(uri)
}
