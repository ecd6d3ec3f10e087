package enhance

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/extract"
	"resume-builder/internal/llm"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const maxUploadBytes = 10 << 20

// Handler exposes the AI endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the AI routes to an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/enhance-pro-sum", h.enhanceSummary)
	rg.POST("/ai/enhance-job-desc", h.enhanceJobDescription)
	rg.POST("/ai/upload-resume", h.uploadResume)
}

// RateLimitGroup classifies AI routes for the rate limiter.
func RateLimitGroup(c *gin.Context) string {
	if strings.HasSuffix(c.FullPath(), "/ai/upload-resume") {
		return "IMPORT"
	}
	return "DEFAULT"
}

type enhanceRequest struct {
	UserContent string `json:"userContent"`
}

func (h *Handler) enhanceSummary(c *gin.Context) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	out, err := h.Svc.EnhanceSummary(c.Request.Context(), req.UserContent)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"enhancedContent": out})
}

func (h *Handler) enhanceJobDescription(c *gin.Context) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	out, err := h.Svc.EnhanceJobDescription(c.Request.Context(), req.UserContent)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"enhancedContent": out})
}

type importRequest struct {
	Title      string `json:"title"`
	ResumeText string `json:"resumeText"`
}

func (h *Handler) uploadResume(c *gin.Context) {
	in := ImportInput{OwnerID: middleware.UserIDFromContext(c)}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+(1<<20))
		in.Title = c.PostForm("title")
		in.Text = c.PostForm("resumeText")
		if fh, err := c.FormFile("file"); err == nil {
			if fh.Size > maxUploadBytes {
				respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file too large", nil)
				return
			}
			f, err := fh.Open()
			if err != nil {
				respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to read file", nil)
				return
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to read file", nil)
				return
			}
			in.File = data
			in.FileName = fh.Filename
		}
	} else {
		var req importRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
			return
		}
		in.Title = req.Title
		in.Text = req.ResumeText
	}

	resume, err := h.Svc.Import(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ResumeIDKey, resume.ID)
	respond.Created(c, gin.H{"message": "Resume imported successfully", "resumeId": resume.ID, "resume": resume})
}

func writeError(c *gin.Context, err error) {
	var verr *resumes.ValidationError
	switch {
	case errors.Is(err, ErrMissingContent):
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Missing required fields", nil)
	case errors.Is(err, extract.ErrUnsupportedType), errors.Is(err, extract.ErrNoText):
		respond.Error(c, http.StatusBadRequest, "unsupported_file", err.Error(), nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "ai_unavailable", "AI features are not configured", nil)
	case errors.Is(err, ErrModelOutput):
		respond.Error(c, http.StatusBadGateway, "ai_invalid_output", "AI returned an unusable resume", nil)
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_failed", verr.Error(), verr.Fields)
	case errors.Is(err, resumes.ErrInvalidRequest):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	default:
		respond.Error(c, http.StatusBadGateway, "ai_failed", "AI request failed", nil)
	}
}
