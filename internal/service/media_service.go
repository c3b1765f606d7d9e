package service

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/rs/zerolog"
)

// Sentinel errors for media access.
var (
	ErrPathForbidden = errors.New("path escapes the media root")
	ErrImageNotFound = errors.New("image not found")
)

// Content types of the image files served from exam-set folders.
var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Image is an opened media file. The caller closes File.
type Image struct {
	File        fs.File
	Info        fs.FileInfo
	ContentType string
}

// MediaService opens exam-set images below the media root.
type MediaService struct {
	root fs.FS
	log  zerolog.Logger
}

// NewMediaService creates a new MediaService reading from root.
func NewMediaService(root fs.FS, log zerolog.Logger) *MediaService {
	return &MediaService{
		root: root,
		log:  log.With().Str("component", "media_service").Logger(),
	}
}

// Open opens the image at the slash-separated relative path name, as
// produced by the image resolver. Names that leave the root, such as those
// containing "..", yield ErrPathForbidden. Missing files, directories and
// non-image files yield ErrImageNotFound.
func (s *MediaService) Open(name string) (*Image, error) {
	name = strings.TrimPrefix(name, "/")
	if !fs.ValidPath(name) || strings.Contains(name, `\`) {
		s.log.Warn().Str("path", name).Msg("Rejected media path")
		return nil, ErrPathForbidden
	}

	contentType, ok := imageContentTypes[strings.ToLower(path.Ext(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, name)
	}

	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, name)
		}
		return nil, fmt.Errorf("open image: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, name)
	}

	return &Image{File: f, Info: info, ContentType: contentType}, nil
}
