// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/utils"
)

// allowedImageExtensions is the upload allow-list.
var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// imageFileStorage writes product images to a local directory under
// time-ordered uuid names.
type imageFileStorage struct {
	dir          string
	publicPrefix string
	maxBytes     int64
	names        *utils.UUIDGenerator
	logger       *logger.Logger
}

// NewImageFileStorage creates the image directory if needed.
func NewImageFileStorage(cfg config.Files, logger *logger.Logger) (ImageFileStorage, error) {
	if cfg.ImagesDir == "" {
		return nil, ErrImageStorageDisabled
	}

	if err := os.MkdirAll(cfg.ImagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating images dir: %w", err)
	}

	// same mount point as the static file route: rooted, one trailing slash
	prefix := "/"
	if trimmed := strings.Trim(cfg.PublicPrefix, "/"); trimmed != "" {
		prefix += trimmed + "/"
	}

	logger.Debug().Str("dir", cfg.ImagesDir).Msg("creating image file storage")
	return &imageFileStorage{
		dir:          cfg.ImagesDir,
		publicPrefix: prefix,
		maxBytes:     cfg.MaxUploadBytes,
		names:        utils.NewUUIDGenerator(),
		logger:       logger,
	}, nil
}

func (s *imageFileStorage) Dir() string {
	return s.dir
}

// SaveImage validates the extension and content type of the upload, then
// streams it into the directory. Oversized uploads are removed and rejected
// with [ErrImageTooLarge].
func (s *imageFileStorage) SaveImage(ctx context.Context, originalName string, r io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImageType, ext)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading image: %w", err)
	}
	head = head[:n]
	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		return "", fmt.Errorf("%w: content is not an image", ErrUnsupportedImageType)
	}

	fileName := s.names.Generate() + ext
	fullPath := filepath.Join(s.dir, fileName)

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		log.Err(err).Str("func", "*imageFileStorage.SaveImage").Msg("failed to create image file")
		return "", fmt.Errorf("error creating image file: %w", err)
	}

	body := io.MultiReader(bytes.NewReader(head), r)
	if s.maxBytes > 0 {
		body = io.LimitReader(body, s.maxBytes+1)
	}

	written, copyErr := io.Copy(file, body)
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("error writing image file: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("error closing image file: %w", closeErr)
	case s.maxBytes > 0 && written > s.maxBytes:
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("%w: limit is %d bytes", ErrImageTooLarge, s.maxBytes)
	}

	log.Info().
		Str("func", "*imageFileStorage.SaveImage").
		Str("file", fileName).
		Int64("bytes", written).
		Msg("image saved")

	return fileName, nil
}

// DeleteImage removes a stored file. Missing files are not an error.
func (s *imageFileStorage) DeleteImage(ctx context.Context, fileName string) error {
	if fileName == "" || fileName != filepath.Base(fileName) {
		return fmt.Errorf("invalid image file name %q", fileName)
	}

	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error deleting image file: %w", err)
	}
	return nil
}

func (s *imageFileStorage) PublicURL(fileName string) string {
	return path.Join(s.publicPrefix, fileName)
}

func (s *imageFileStorage) FileName(publicURL string) (string, bool) {
	name, ok := strings.CutPrefix(publicURL, s.publicPrefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
