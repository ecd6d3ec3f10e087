package enhance

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/llm"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/storage/object"
)

type fakeLLM struct {
	reply string
	err   error
	got   []llm.Request
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	f.got = append(f.got, req)
	return f.reply, f.err
}

type memArchive struct {
	saved map[string][]byte
}

func (m *memArchive) Save(_ context.Context, namespace, fileName string, r io.Reader) (object.Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return object.Object{}, err
	}
	key := namespace + "/" + fileName
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[key] = data
	return object.Object{Key: key, Size: int64(len(data))}, nil
}

func (m *memArchive) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

const modelResume = "```json\n" + `{
  "title": "ignored",
  "professional_summary": "Go engineer.",
  "skills": ["Go", "PostgreSQL"],
  "personal_info": {"full_name": "Jane Doe", "linkedin": "linkedin.com/in/jane", "image": "not-a-url"},
  "experience": [{"company": "Acme", "position": "Engineer", "start_date": "2020-01", "end_date": "", "description": "APIs", "is_current": true}]
}` + "\n```"

func newTestService(client llm.Client) (*Service, *resumes.Service, *memArchive) {
	resumeSvc := resumes.NewService(resumes.NewMemoryRepo(), nil)
	archive := &memArchive{}
	return NewService(client, resumeSvc, archive), resumeSvc, archive
}

func TestEnhanceSummaryUsesSystemPrompt(t *testing.T) {
	client := &fakeLLM{reply: "  Seasoned Go engineer.  "}
	svc, _, _ := newTestService(client)

	out, err := svc.EnhanceSummary(context.Background(), "i write go")
	require.NoError(t, err)
	assert.Equal(t, "Seasoned Go engineer.", out)
	require.Len(t, client.got, 1)
	assert.Equal(t, summaryPrompt, client.got[0].System)
	assert.Equal(t, "i write go", client.got[0].User)
	assert.False(t, client.got[0].JSON)
}

func TestEnhanceRequiresContent(t *testing.T) {
	client := &fakeLLM{reply: "x"}
	svc, _, _ := newTestService(client)

	_, err := svc.EnhanceJobDescription(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrMissingContent)
	assert.Empty(t, client.got)
}

func TestEnhanceNotConfigured(t *testing.T) {
	svc, _, _ := newTestService(nil)
	_, err := svc.EnhanceSummary(context.Background(), "draft")
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestImportFromTextCreatesOwnedResume(t *testing.T) {
	client := &fakeLLM{reply: modelResume}
	svc, resumeSvc, _ := newTestService(client)
	ctx := context.Background()

	created, err := svc.Import(ctx, ImportInput{OwnerID: "user-1", Title: "Imported", Text: "Jane Doe\nGo engineer"})
	require.NoError(t, err)
	assert.True(t, client.got[0].JSON)

	got, err := resumeSvc.Get(ctx, created.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Imported", got.Title)
	assert.Equal(t, "Go engineer.", got.ProfessionalSummary)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, got.Skills)
	assert.Equal(t, "Jane Doe", got.PersonalInfo.FullName)
	assert.Equal(t, "https://linkedin.com/in/jane", got.PersonalInfo.LinkedIn)
	assert.Empty(t, got.PersonalInfo.Image)
	require.Len(t, got.Experience, 1)
	assert.True(t, got.Experience[0].IsCurrent)

	_, err = resumeSvc.Get(ctx, created.ID, "someone-else")
	assert.ErrorIs(t, err, resumes.ErrNotFound)
}

func TestImportFromFileArchivesOriginal(t *testing.T) {
	client := &fakeLLM{reply: `{"skills":["Go"]}`}
	svc, _, archive := newTestService(client)

	_, err := svc.Import(context.Background(), ImportInput{
		OwnerID:  "user-1",
		Title:    "From file",
		File:     []byte("Jane Doe\nGo engineer\n"),
		FileName: "cv.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo engineer", client.got[0].User)
	require.Len(t, archive.saved, 1)
	for key := range archive.saved {
		assert.True(t, strings.HasPrefix(key, "imports/"))
		assert.True(t, strings.HasSuffix(key, "/cv.txt"))
	}
}

func TestImportRejectsGarbageModelOutput(t *testing.T) {
	svc, _, _ := newTestService(&fakeLLM{reply: "sorry, I cannot help"})
	_, err := svc.Import(context.Background(), ImportInput{OwnerID: "user-1", Title: "x", Text: "text"})
	assert.ErrorIs(t, err, ErrModelOutput)
}

func TestImportRejectsUnknownModelKeys(t *testing.T) {
	svc, _, _ := newTestService(&fakeLLM{reply: `{"hobbies":["chess"]}`})
	_, err := svc.Import(context.Background(), ImportInput{OwnerID: "user-1", Title: "x", Text: "text"})
	assert.ErrorIs(t, err, ErrModelOutput)
}

func TestImportRequiresTitleAndText(t *testing.T) {
	svc, _, _ := newTestService(&fakeLLM{reply: "{}"})
	_, err := svc.Import(context.Background(), ImportInput{OwnerID: "user-1", Text: "text"})
	assert.ErrorIs(t, err, ErrMissingContent)

	_, err = svc.Import(context.Background(), ImportInput{OwnerID: "user-1", Title: "x"})
	assert.ErrorIs(t, err, ErrMissingContent)
}

func TestImportRejectsUnsupportedFile(t *testing.T) {
	svc, _, _ := newTestService(&fakeLLM{reply: "{}"})
	_, err := svc.Import(context.Background(), ImportInput{
		OwnerID:  "user-1",
		Title:    "x",
		File:     []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"),
		FileName: "photo.png",
	})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingContent))
}
