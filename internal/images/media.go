package images

import (
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/storage/object"
)

// MediaPathPrefix is where stored images are served from.
const MediaPathPrefix = "/media/"

const maxMediaBytes = 10 << 20

// MediaHandler streams images saved by StoreProcessor.
type MediaHandler struct {
	Store object.ObjectStore
}

func NewMediaHandler(store object.ObjectStore) *MediaHandler {
	return &MediaHandler{Store: store}
}

func (h *MediaHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET(MediaPathPrefix+"*key", h.serve)
}

func (h *MediaHandler) serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if !strings.HasPrefix(key, Folder+"/") {
		respond.Error(c, http.StatusNotFound, "not_found", "media not found", nil)
		return
	}
	clean, err := object.CleanKey(key)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "media not found", nil)
		return
	}

	rc, err := h.Store.Open(c.Request.Context(), clean)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "media not found", nil)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxMediaBytes))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read media", nil)
		return
	}
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}
