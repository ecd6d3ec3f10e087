// Package imagekit uploads profile images to the ImageKit media library.
package imagekit

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	ik "github.com/imagekit-developer/imagekit-go"
	"github.com/imagekit-developer/imagekit-go/api/uploader"

	"resume-builder/internal/images"
)

const DefaultUploadPrefix = "https://upload.imagekit.io/api/v1/"

// Client uploads through the ImageKit SDK. The normalization directive is sent
// as a pre-transformation so the returned URL already points at the processed image.
type Client struct {
	sdk *ik.ImageKit
}

// NewClient builds a client authenticated with the account's private key.
// uploadPrefix overrides the upload API base, e.g. for a regional endpoint.
func NewClient(privateKey, publicKey, uploadPrefix string) (*Client, error) {
	if strings.TrimSpace(privateKey) == "" {
		return nil, errors.New("IMAGEKIT_PRIVATE_KEY is required")
	}
	sdk := ik.NewFromParams(ik.NewParams{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
	})
	if prefix := strings.TrimSpace(uploadPrefix); prefix != "" {
		sdk.Uploader.Config.API.UploadPrefix = strings.TrimRight(prefix, "/") + "/"
	}
	return &Client{sdk: sdk}, nil
}

// Process uploads data and returns the URL ImageKit assigns to it.
func (c *Client) Process(ctx context.Context, data []byte, removeBackground bool) (string, error) {
	if len(data) == 0 {
		return "", images.ErrEmptyImage
	}

	unique := true
	resp, err := c.sdk.Uploader.Upload(ctx, base64.StdEncoding.EncodeToString(data), uploader.UploadParam{
		FileName:          images.FileName,
		Folder:            images.Folder,
		UseUniqueFileName: &unique,
		Transformation:    &uploader.UploadTransformation{Pre: images.Directive(removeBackground)},
	})
	if err != nil {
		return "", fmt.Errorf("imagekit upload: %w", err)
	}
	if resp == nil || resp.Data.Url == "" {
		return "", errors.New("imagekit upload: response missing url")
	}
	return resp.Data.Url, nil
}

var _ images.Processor = (*Client)(nil)
