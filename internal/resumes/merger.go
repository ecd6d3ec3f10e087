package resumes

import (
	"context"
	"fmt"
	"strings"
)

// MergeInput is everything needed for one conditional resume write.
type MergeInput struct {
	ResumeID    string
	RequesterID string
	Patch       Patch
	// ImageURL is the processed image URL, if an image was uploaded.
	ImageURL string
}

// Merger folds a validated patch and an optional processed image URL into a stored resume.
type Merger struct {
	Repo Repo
}

// Merge writes in.Patch onto the resume owned by in.RequesterID.
//
// A processed image URL always wins over any image value carried by the patch.
// When the patch has no personal_info one is created holding only the image,
// and it replaces the stored personal_info like any other patched key.
func (m *Merger) Merge(ctx context.Context, in MergeInput) (Resume, error) {
	if strings.TrimSpace(in.ResumeID) == "" || strings.TrimSpace(in.RequesterID) == "" {
		return Resume{}, fmt.Errorf("%w: resume id and requester are required", ErrInvalidRequest)
	}

	patch := in.Patch
	if in.ImageURL != "" {
		if err := validate.Var(in.ImageURL, "http_url"); err != nil {
			return Resume{}, fmt.Errorf("%w: processor returned a non-URL value", ErrImageProcessingFailed)
		}
		patch = patch.withImage(in.ImageURL)
	}

	return m.Repo.Update(ctx, in.ResumeID, in.RequesterID, patch)
}
