package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestImageStorage(t *testing.T, maxBytes int64) (ImageFileStorage, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "images")
	s, err := NewImageFileStorage(config.Files{
		ImagesDir:      dir,
		PublicPrefix:   "/static/images",
		MaxUploadBytes: maxBytes,
	}, logger.Nop())
	require.NoError(t, err)
	return s, dir
}

func TestNewImageFileStorage_Disabled(t *testing.T) {
	_, err := NewImageFileStorage(config.Files{}, logger.Nop())
	assert.ErrorIs(t, err, ErrImageStorageDisabled)
}

func TestImageFileStorage_SaveImage(t *testing.T) {
	s, dir := newTestImageStorage(t, 1024)

	payload := append(bytes.Clone(pngHeader), bytes.Repeat([]byte{0}, 100)...)
	name, err := s.SaveImage(context.Background(), "F40 Red.PNG", bytes.NewReader(payload))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, ".png"))
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	assert.Equal(t, "/static/images/"+name, s.PublicURL(name))
	got, ok := s.FileName(s.PublicURL(name))
	assert.True(t, ok)
	assert.Equal(t, name, got)
}

func TestImageFileStorage_SaveImage_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		body     []byte
		wantErr  error
	}{
		{name: "extension", fileName: "car.exe", body: pngHeader, wantErr: ErrUnsupportedImageType},
		{name: "not an image", fileName: "car.png", body: []byte("plain text pretending"), wantErr: ErrUnsupportedImageType},
		{name: "too large", fileName: "car.png", body: append(bytes.Clone(pngHeader), bytes.Repeat([]byte{1}, 64)...), wantErr: ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, dir := newTestImageStorage(t, 32)

			_, err := s.SaveImage(context.Background(), tt.fileName, bytes.NewReader(tt.body))
			assert.ErrorIs(t, err, tt.wantErr)

			entries, readErr := os.ReadDir(dir)
			require.NoError(t, readErr)
			assert.Empty(t, entries, "rejected uploads must not leave files behind")
		})
	}
}

func TestImageFileStorage_DeleteImage(t *testing.T) {
	s, dir := newTestImageStorage(t, 0)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), pngHeader, 0o644))

	require.NoError(t, s.DeleteImage(context.Background(), "a.png"))
	_, err := os.Stat(filepath.Join(dir, "a.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.DeleteImage(context.Background(), "a.png"), "missing file is not an error")
	assert.Error(t, s.DeleteImage(context.Background(), "../secrets"))
	assert.Error(t, s.DeleteImage(context.Background(), ""))
}

func TestNewImageFileStorage_PublicPrefixIsRooted(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "static/images", want: "/static/images/f40.png"},
		{prefix: "/static/images/", want: "/static/images/f40.png"},
		{prefix: "static/images//", want: "/static/images/f40.png"},
		{prefix: "", want: "/f40.png"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			s, err := NewImageFileStorage(config.Files{ImagesDir: t.TempDir(), PublicPrefix: tt.prefix}, logger.Nop())
			require.NoError(t, err)

			url := s.PublicURL("f40.png")
			assert.Equal(t, tt.want, url)

			name, ok := s.FileName(url)
			assert.True(t, ok)
			assert.Equal(t, "f40.png", name)
		})
	}
}

func TestImageFileStorage_FileName(t *testing.T) {
	s, _ := newTestImageStorage(t, 0)

	for _, url := range []string{"", "https://cdn.example.com/a.png", "/static/images/", "/static/images/nested/a.png"} {
		_, ok := s.FileName(url)
		assert.False(t, ok, url)
	}
}
