package resumes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const defaultMaxImageBytes = 5 << 20 // 5MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc           *Service
	MaxImageBytes int64
}

// NewHandler constructs a Handler. maxImageBytes <= 0 selects the default.
func NewHandler(svc *Service, maxImageBytes int64) *Handler {
	if maxImageBytes <= 0 {
		maxImageBytes = defaultMaxImageBytes
	}
	return &Handler{Svc: svc, MaxImageBytes: maxImageBytes}
}

// RegisterRoutes attaches resume routes. Only the public read lives on the
// unauthenticated group.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/resumes/public/:resumeId", h.getPublic)

	protected.POST("/resumes/create", h.create)
	protected.PUT("/resumes/update", h.update)
	protected.DELETE("/resumes/delete/:resumeId", h.delete)
	protected.GET("/resumes/get/:resumeId", h.get)
	protected.GET("/users/resumes", h.list)
}

type createRequest struct {
	Title string `json:"title"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "title is required", nil)
		return
	}

	resume, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req.Title)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ResumeIDKey, resume.ID)
	respond.Created(c, gin.H{"message": "Resume created successfully", "resume": resume})
}

func (h *Handler) get(c *gin.Context) {
	resumeID := c.Param("resumeId")
	c.Set(middleware.ResumeIDKey, resumeID)

	resume, err := h.Svc.Get(c.Request.Context(), resumeID, middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"resume": resume})
}

func (h *Handler) getPublic(c *gin.Context) {
	resumeID := c.Param("resumeId")
	c.Set(middleware.ResumeIDKey, resumeID)

	resume, err := h.Svc.GetPublic(c.Request.Context(), resumeID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"resume": resume})
}

func (h *Handler) list(c *gin.Context) {
	resumes, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"resumes": resumes})
}

func (h *Handler) delete(c *gin.Context) {
	resumeID := c.Param("resumeId")
	c.Set(middleware.ResumeIDKey, resumeID)

	if err := h.Svc.Delete(c.Request.Context(), resumeID, middleware.UserIDFromContext(c)); err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "Resume deleted successfully"})
}

func (h *Handler) update(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxImageBytes+(1<<20))

	req, err := h.readUpdateRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ResumeIDKey, strings.TrimSpace(req.ResumeID))

	cmd, err := ParseUpdate(req)
	if err != nil {
		writeError(c, err)
		return
	}

	resume, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "Saved successfully", "resume": resume})
}

type updateJSONRequest struct {
	ResumeID         string          `json:"resumeId"`
	ResumeData       json.RawMessage `json:"resumeData"`
	RemoveBackground json.RawMessage `json:"removeBackground"`
}

// readUpdateRequest accepts either multipart form data or a JSON body.
func (h *Handler) readUpdateRequest(c *gin.Context) (UpdateRequest, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var body updateJSONRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			return UpdateRequest{}, fmt.Errorf("%w: invalid request body", ErrInvalidRequest)
		}
		return UpdateRequest{
			ResumeID:         body.ResumeID,
			ResumeData:       body.ResumeData,
			RemoveBackground: flagText(body.RemoveBackground),
		}, nil
	}

	if err := c.Request.ParseMultipartForm(h.MaxImageBytes); err != nil {
		return UpdateRequest{}, fmt.Errorf("%w: invalid multipart body", ErrInvalidRequest)
	}
	req := UpdateRequest{
		ResumeID:         c.PostForm("resumeId"),
		ResumeData:       []byte(c.PostForm("resumeData")),
		RemoveBackground: c.PostForm("removeBackground"),
	}

	fileHeader, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return UpdateRequest{}, fmt.Errorf("%w: unable to read image", ErrInvalidRequest)
	}
	if fileHeader.Size > h.MaxImageBytes {
		return UpdateRequest{}, fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidRequest, h.MaxImageBytes)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return UpdateRequest{}, fmt.Errorf("%w: unable to read image", ErrInvalidRequest)
	}
	defer file.Close()
	req.Image, err = io.ReadAll(io.LimitReader(file, h.MaxImageBytes+1))
	if err != nil {
		return UpdateRequest{}, fmt.Errorf("%w: unable to read image", ErrInvalidRequest)
	}
	if int64(len(req.Image)) > h.MaxImageBytes {
		return UpdateRequest{}, fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidRequest, h.MaxImageBytes)
	}
	return req, nil
}

// flagText turns a JSON bool or string into flag text for ParseFlag.
func flagText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// writeError maps service errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_failed", "Resume data failed validation", verr.Fields)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
	case errors.Is(err, ErrMalformedPatch):
		respond.Error(c, http.StatusBadRequest, "malformed_patch", "Invalid resumeData JSON", nil)
	case errors.Is(err, ErrInvalidRequest):
		respond.Error(c, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), ErrInvalidRequest.Error()+": "), nil)
	case errors.Is(err, ErrImageProcessingFailed):
		respond.Error(c, http.StatusBadRequest, "image_processing_failed", "Image could not be processed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Unexpected server error", nil)
	}
}
