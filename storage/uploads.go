package storage

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxImageSize = 5 << 20 // 5MB

// UploadStore writes uploaded images to local disk under BaseDir and hands
// back the public /uploads path they are served from.
type UploadStore struct {
	BaseDir string
}

// NewUploadStore creates the per-resource subdirectories up front.
func NewUploadStore(baseDir string) (*UploadStore, error) {
	for _, sub := range []string{"hotels", "blogs"} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("storage: creating upload dir: %w", err)
		}
	}
	return &UploadStore{BaseDir: baseDir}, nil
}

// SaveImage persists an uploaded image under subdir ("hotels" or "blogs")
// with a collision-safe name and returns its public URL path. Only image
// content types up to 5MB are accepted.
func (s *UploadStore) SaveImage(subdir string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds the 5MB limit")
	}
	if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("only image files are allowed")
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	prefix := strings.TrimSuffix(subdir, "s")
	name := fmt.Sprintf("%s-%d-%d%s", prefix, time.Now().UnixMilli(), rand.Intn(1_000_000_000), filepath.Ext(fh.Filename))

	dst, err := os.Create(filepath.Join(s.BaseDir, subdir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + subdir + "/" + name, nil
}
