package resumes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// immutableKeys are store-maintained and silently dropped from any patch.
var immutableKeys = []string{"_id", "id", "userId", "createdAt", "updatedAt", "__v"}

// UpdateRequest is a raw update as received over HTTP.
// ResumeData holds JSON text: either an object or a string containing an object.
type UpdateRequest struct {
	ResumeID         string
	ResumeData       []byte
	Image            []byte
	RemoveBackground string
}

// UpdateCommand is a normalized, validated update.
type UpdateCommand struct {
	ResumeID         string
	Patch            Patch
	Image            []byte
	RemoveBackground bool
}

// ParseUpdate normalizes req. It performs no I/O.
func ParseUpdate(req UpdateRequest) (UpdateCommand, error) {
	resumeID := strings.TrimSpace(req.ResumeID)
	if resumeID == "" {
		return UpdateCommand{}, fmt.Errorf("%w: resumeId is required", ErrInvalidRequest)
	}

	patch, err := ParsePatch(req.ResumeData)
	if err != nil {
		return UpdateCommand{}, err
	}

	var image []byte
	if len(req.Image) > 0 {
		mt := mimetype.Detect(req.Image)
		if !strings.HasPrefix(mt.String(), "image/") {
			return UpdateCommand{}, fmt.Errorf("%w: image must be an image file, got %s", ErrInvalidRequest, mt.String())
		}
		image = req.Image
	}

	return UpdateCommand{
		ResumeID:         resumeID,
		Patch:            patch,
		Image:            image,
		RemoveBackground: ParseFlag(req.RemoveBackground),
	}, nil
}

// ParsePatch decodes and validates JSON patch text. Empty input is an empty patch.
func ParsePatch(raw []byte) (Patch, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Patch{}, nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return Patch{}, fmt.Errorf("%w: %v", ErrMalformedPatch, err)
		}
		raw = bytes.TrimSpace([]byte(inner))
		if len(raw) == 0 {
			return Patch{}, nil
		}
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrMalformedPatch, err)
	}
	if doc == nil {
		return Patch{}, fmt.Errorf("%w: resume data must be a JSON object", ErrMalformedPatch)
	}
	return PatchFromDocument(doc)
}

// PatchFromDocument validates a decoded JSON object and converts it to a Patch.
func PatchFromDocument(doc map[string]any) (Patch, error) {
	for _, key := range immutableKeys {
		delete(doc, key)
	}
	// A pending upload serializes as {} on the client; only string images are kept.
	if info, ok := doc["personal_info"].(map[string]any); ok {
		if img, present := info["image"]; present {
			if _, isString := img.(string); !isString {
				delete(info, "image")
			}
		}
	}

	if err := validatePatchDocument(doc); err != nil {
		return Patch{}, err
	}

	cleaned, err := json.Marshal(doc)
	if err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrMalformedPatch, err)
	}
	dec := json.NewDecoder(bytes.NewReader(cleaned))
	dec.DisallowUnknownFields()
	var patch Patch
	if err := dec.Decode(&patch); err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrMalformedPatch, err)
	}

	if err := validateStruct(patch); err != nil {
		return Patch{}, err
	}
	return patch, nil
}

// ParseFlag reports whether a form flag such as removeBackground is set.
func ParseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "1", "on":
		return true
	default:
		return false
	}
}
