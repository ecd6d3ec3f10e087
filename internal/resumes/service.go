package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

// ImageProcessor turns raw upload bytes into a durable, normalized image URL.
type ImageProcessor interface {
	Process(ctx context.Context, data []byte, removeBackground bool) (string, error)
}

type Service struct {
	Repo   Repo
	Images ImageProcessor
	Merger *Merger
}

func NewService(repo Repo, images ImageProcessor) *Service {
	return &Service{Repo: repo, Images: images, Merger: &Merger{Repo: repo}}
}

// Create stores a new resume with the given title and empty sections.
func (s *Service) Create(ctx context.Context, ownerID, title string) (Resume, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Resume{}, fmt.Errorf("%w: owner is required", ErrInvalidRequest)
	}
	content := NewContent(strings.TrimSpace(title))
	if err := validateStruct(content); err != nil {
		return Resume{}, err
	}
	resume, err := s.Repo.Create(ctx, Resume{
		ID:      uuid.NewString(),
		UserID:  ownerID,
		Content: content,
	})
	if err != nil {
		return Resume{}, fmt.Errorf("create resume: %w", err)
	}
	telemetry.Info("resume.created", map[string]any{"resume_id": resume.ID, "user_id": ownerID})
	return resume, nil
}

// CreateWithPatch creates a resume and immediately merges patch into it.
func (s *Service) CreateWithPatch(ctx context.Context, ownerID, title string, patch Patch) (Resume, error) {
	resume, err := s.Create(ctx, ownerID, title)
	if err != nil {
		return Resume{}, err
	}
	if patch.Empty() {
		return resume, nil
	}
	merged, err := s.Merger.Merge(ctx, MergeInput{ResumeID: resume.ID, RequesterID: ownerID, Patch: patch})
	if err != nil {
		// Runs even when ctx is cancelled so no empty resume is left behind.
		if delErr := s.Repo.Delete(context.WithoutCancel(ctx), resume.ID, ownerID); delErr != nil {
			telemetry.Warn("resume.create_rollback_failed", map[string]any{"resume_id": resume.ID, "error": delErr.Error()})
		}
		return Resume{}, err
	}
	return merged, nil
}

func (s *Service) Get(ctx context.Context, id, ownerID string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, fmt.Errorf("%w: resumeId is required", ErrInvalidRequest)
	}
	return s.Repo.GetByID(ctx, id, ownerID)
}

func (s *Service) GetPublic(ctx context.Context, id string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, fmt.Errorf("%w: resumeId is required", ErrInvalidRequest)
	}
	return s.Repo.GetPublic(ctx, id)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Resume, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: resumeId is required", ErrInvalidRequest)
	}
	if err := s.Repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	telemetry.Info("resume.deleted", map[string]any{"resume_id": id, "user_id": ownerID})
	return nil
}

// Update runs an optional image through the processor, then merges the patch.
// Image processing happens before the write; a processor failure aborts the
// update with nothing persisted.
func (s *Service) Update(ctx context.Context, ownerID string, cmd UpdateCommand) (Resume, error) {
	resume, err := s.update(ctx, ownerID, cmd)
	if err != nil {
		metrics.IncResumeUpdateFailed()
		return Resume{}, err
	}
	metrics.IncResumeUpdate()
	telemetry.Info("resume.updated", map[string]any{
		"resume_id": resume.ID,
		"user_id":   ownerID,
		"keys":      cmd.Patch.Keys(),
		"image":     len(cmd.Image) > 0,
	})
	return resume, nil
}

func (s *Service) update(ctx context.Context, ownerID string, cmd UpdateCommand) (Resume, error) {
	var imageURL string
	if len(cmd.Image) > 0 {
		// Skip the upload entirely when the write is bound to miss.
		if _, err := s.Repo.GetByID(ctx, cmd.ResumeID, ownerID); err != nil {
			return Resume{}, err
		}
		url, err := s.processImage(ctx, cmd.Image, cmd.RemoveBackground)
		if err != nil {
			return Resume{}, err
		}
		imageURL = url
	}
	return s.Merger.Merge(ctx, MergeInput{
		ResumeID:    cmd.ResumeID,
		RequesterID: ownerID,
		Patch:       cmd.Patch,
		ImageURL:    imageURL,
	})
}

func (s *Service) processImage(ctx context.Context, data []byte, removeBackground bool) (string, error) {
	if s.Images == nil {
		metrics.IncImageFailed()
		return "", fmt.Errorf("%w: no image processor configured", ErrImageProcessingFailed)
	}
	start := time.Now()
	url, err := s.Images.Process(ctx, data, removeBackground)
	metrics.ObserveImageDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncImageFailed()
		if errors.Is(err, ErrImageProcessingFailed) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrImageProcessingFailed, err)
	}
	metrics.IncImageProcessed()
	return url, nil
}
