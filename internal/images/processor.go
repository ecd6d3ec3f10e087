package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"resume-builder/internal/shared/storage/object"
)

// ErrEmptyImage is returned when Process is called without data.
var ErrEmptyImage = errors.New("empty image")

// Processor turns raw image bytes into a durable URL.
type Processor interface {
	Process(ctx context.Context, data []byte, removeBackground bool) (string, error)
}

// StoreProcessor keeps originals in the object store and serves them through
// the media route. It does not resize the image or remove its background: the
// directive only travels as the tr query parameter, so those take effect only
// when a transforming CDN sits in front of the media route. Use the imagekit
// provider for real normalization.
type StoreProcessor struct {
	Store         object.ObjectStore
	PublicBaseURL string
}

func NewStoreProcessor(store object.ObjectStore, publicBaseURL string) *StoreProcessor {
	return &StoreProcessor{Store: store, PublicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (p *StoreProcessor) Process(ctx context.Context, data []byte, removeBackground bool) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	if p.Store == nil {
		return "", errors.New("object store not configured")
	}
	obj, err := p.Store.Save(ctx, Folder, FileName, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	if !strings.HasPrefix(obj.ContentType, "image/") {
		return "", fmt.Errorf("stored object is %s, not an image", obj.ContentType)
	}
	q := url.Values{"tr": []string{Directive(removeBackground)}}
	return p.PublicBaseURL + MediaPathPrefix + obj.Key + "?" + q.Encode(), nil
}

var _ Processor = (*StoreProcessor)(nil)
