package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestExtractTextJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("Built "), genai.Text("APIs in Go.")},
				},
			},
		},
	}
	got, err := extractText(resp)
	if err != nil {
		t.Fatalf("extractText: %v", err)
	}
	if got != "Built APIs in Go." {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtractTextNoCandidates(t *testing.T) {
	if _, err := extractText(&genai.GenerateContentResponse{}); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestExtractTextNoTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png", Data: []byte{1}}}}},
		},
	}
	if _, err := extractText(resp); err == nil {
		t.Fatal("expected error without text parts")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), "", ""); err == nil {
		t.Fatal("expected error without api key")
	}
}
