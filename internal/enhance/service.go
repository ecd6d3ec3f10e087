package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resume-builder/internal/extract"
	"resume-builder/internal/llm"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
)

var (
	ErrMissingContent = errors.New("missing required fields")
	ErrModelOutput    = errors.New("model returned unusable resume data")
)

// ResumeCreator stores imported resumes.
type ResumeCreator interface {
	CreateWithPatch(ctx context.Context, ownerID, title string, patch resumes.Patch) (resumes.Resume, error)
}

type Service struct {
	LLM     llm.Client
	Resumes ResumeCreator
	// Archive keeps the original uploaded file. Optional.
	Archive object.ObjectStore
}

func NewService(client llm.Client, creator ResumeCreator, archive object.ObjectStore) *Service {
	if client == nil {
		client = llm.PlaceholderClient{}
	}
	return &Service{LLM: client, Resumes: creator, Archive: archive}
}

// EnhanceSummary rewrites a professional summary draft.
func (s *Service) EnhanceSummary(ctx context.Context, userContent string) (string, error) {
	return s.rewrite(ctx, "summary", summaryPrompt, userContent)
}

// EnhanceJobDescription rewrites a job description draft as bullet points.
func (s *Service) EnhanceJobDescription(ctx context.Context, userContent string) (string, error) {
	return s.rewrite(ctx, "job_description", jobDescriptionPrompt, userContent)
}

func (s *Service) rewrite(ctx context.Context, kind, system, userContent string) (string, error) {
	if strings.TrimSpace(userContent) == "" {
		return "", ErrMissingContent
	}
	out, err := s.complete(ctx, kind, llm.Request{System: system, User: userContent})
	if err != nil {
		return "", err
	}
	return plainText(out), nil
}

// ImportInput is resume text or an uploaded document to turn into a new resume.
type ImportInput struct {
	OwnerID  string
	Title    string
	Text     string
	File     []byte
	FileName string
}

// Import extracts sections from resume text with the language model and
// creates a resume owned by the requester.
func (s *Service) Import(ctx context.Context, in ImportInput) (resumes.Resume, error) {
	if strings.TrimSpace(in.Title) == "" {
		return resumes.Resume{}, ErrMissingContent
	}
	text := strings.TrimSpace(in.Text)
	if text == "" && len(in.File) > 0 {
		extracted, err := extract.Text(ctx, in.File, in.FileName)
		if err != nil {
			return resumes.Resume{}, err
		}
		text = extracted
		s.archive(ctx, in)
	}
	if text == "" {
		return resumes.Resume{}, ErrMissingContent
	}

	out, err := s.complete(ctx, "import", llm.Request{System: importPrompt, User: text, JSON: true})
	if err != nil {
		return resumes.Resume{}, err
	}
	patch, err := patchFromModel(out)
	if err != nil {
		telemetry.Warn("ai.import.invalid_output", map[string]any{"user_id": in.OwnerID, "error": err.Error()})
		return resumes.Resume{}, err
	}

	resume, err := s.Resumes.CreateWithPatch(ctx, in.OwnerID, in.Title, patch)
	if err != nil {
		return resumes.Resume{}, err
	}
	telemetry.Info("ai.import.created", map[string]any{"user_id": in.OwnerID, "resume_id": resume.ID, "keys": patch.Keys()})
	return resume, nil
}

func (s *Service) complete(ctx context.Context, kind string, req llm.Request) (string, error) {
	metrics.IncAIRequest()
	out, err := s.LLM.Complete(ctx, req)
	if err != nil {
		metrics.IncAIRequestFailed()
		if !errors.Is(err, llm.ErrNotConfigured) {
			telemetry.Error("ai.request_failed", map[string]any{"kind": kind, "error": err.Error()})
		}
		return "", err
	}
	return out, nil
}

// archive stores the original upload; failures are logged and do not block the import.
func (s *Service) archive(ctx context.Context, in ImportInput) {
	if s.Archive == nil {
		return
	}
	name, err := util.SanitizeFileName(in.FileName)
	if err != nil {
		name = "resume"
	}
	obj, err := s.Archive.Save(ctx, "imports/"+util.OwnerKey(in.OwnerID), name, bytes.NewReader(in.File))
	if err != nil {
		telemetry.Warn("ai.import.archive_failed", map[string]any{"user_id": in.OwnerID, "error": err.Error()})
		return
	}
	telemetry.Info("ai.import.archived", map[string]any{"user_id": in.OwnerID, "key": obj.Key, "size": obj.Size})
}

// patchFromModel turns model JSON into a patch. Keys the model must not set
// are dropped and scheme-less profile links are completed.
func patchFromModel(raw string) (resumes.Patch, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(llm.CleanJSON(raw)), &doc); err != nil || doc == nil {
		return resumes.Patch{}, fmt.Errorf("%w: not a JSON object", ErrModelOutput)
	}
	for _, key := range []string{"title", "public", "template", "accent_color"} {
		delete(doc, key)
	}
	sanitizeDocument(doc)
	if info, ok := doc["personal_info"].(map[string]any); ok {
		delete(info, "image")
		for _, key := range []string{"linkedin", "website"} {
			if link, ok := info[key].(string); ok {
				info[key] = withScheme(link)
			}
		}
	}

	patch, err := resumes.PatchFromDocument(doc)
	if err != nil {
		return resumes.Patch{}, fmt.Errorf("%w: %v", ErrModelOutput, err)
	}
	return patch, nil
}

func withScheme(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.Contains(link, "://") {
		return link
	}
	return "https://" + link
}
