package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/shared/storage/object"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestSaveAndOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	obj, err := store.Save(ctx, "user-resumes", "resume.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(obj.Key, "user-resumes/"))
	assert.True(t, strings.HasSuffix(obj.Key, "_resume.png"))
	assert.Equal(t, int64(len(pngHeader)), obj.Size)
	assert.Equal(t, "image/png", obj.ContentType)

	rc, err := store.Open(ctx, obj.Key)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, got)
}

func TestSaveRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	_, err := store.Save(ctx, "../outside", "a.png", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, object.ErrInvalidKey)

	_, err = store.Save(ctx, "ok", "../a.png", bytes.NewReader(pngHeader))
	assert.Error(t, err)

	_, err = store.Open(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, object.ErrInvalidKey)
}

func TestSaveHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(t.TempDir()).Save(ctx, "ns", "a.png", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, context.Canceled)
}
