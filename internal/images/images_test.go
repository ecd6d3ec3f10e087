package images

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	localstore "resume-builder/internal/shared/storage/object/local"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R', 0, 0, 0, 1}

func TestDirective(t *testing.T) {
	assert.Equal(t, "w-300,h-300,fo-face,z-0.75", Directive(false))
	assert.Equal(t, "w-300,h-300,fo-face,z-0.75,e-bgremove", Directive(true))
}

func TestStoreProcessorReturnsServableURL(t *testing.T) {
	store := localstore.New(t.TempDir())
	p := NewStoreProcessor(store, "http://localhost:8080/")

	raw, err := p.Process(context.Background(), pngBytes, true)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/media/user-resumes/"))
	assert.Equal(t, Directive(true), u.Query().Get("tr"))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewMediaHandler(store).RegisterRoutes(r)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, u.RequestURI(), nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "image/png", resp.Header().Get("Content-Type"))
	assert.True(t, bytes.Equal(pngBytes, resp.Body.Bytes()))
}

func TestStoreProcessorRejectsNonImage(t *testing.T) {
	p := NewStoreProcessor(localstore.New(t.TempDir()), "http://x")
	_, err := p.Process(context.Background(), []byte("plain text, not an image"), false)
	assert.Error(t, err)

	_, err = p.Process(context.Background(), nil, false)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestMediaHandlerOnlyServesImageFolder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewMediaHandler(localstore.New(t.TempDir())).RegisterRoutes(r)

	for _, path := range []string{"/media/imports/x.pdf", "/media/user-resumes/missing.png"} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, resp.Code, path)
	}
}
