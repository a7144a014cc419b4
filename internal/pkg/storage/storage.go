// Package storage keeps uploaded evidence and generated letters on local disk
// under a directory that the HTTP server exposes as /uploads.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxEvidenceSize is the largest accepted evidence upload (2 MB)
const MaxEvidenceSize = 2 << 20

const (
	DirEvidence = "evidence"
	DirLetters  = "letters"
)

var (
	ErrFileMissing  = errors.New("file is required")
	ErrFileTooLarge = fmt.Errorf("file exceeds %d MB", MaxEvidenceSize>>20)
	ErrNotPDF       = errors.New("only PDF files are allowed")
)

// Store writes files below Root and returns their public URL paths
type Store struct {
	Root      string // directory on disk
	URLPrefix string // e.g. "/uploads"
}

// New creates a store and its sub directories
func New(root, urlPrefix string) (*Store, error) {
	for _, dir := range []string{DirEvidence, DirLetters} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}
	return &Store{Root: root, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// SaveEvidencePDF validates and stores an uploaded evidence file.
// It returns the public path and the detected content type.
func (s *Store) SaveEvidencePDF(fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", ErrFileMissing
	}
	if fh.Size > MaxEvidenceSize {
		return "", "", ErrFileTooLarge
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && ct != "application/pdf" {
		return "", "", ErrNotPDF
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	// Read one byte past the limit so oversize bodies with a lying header are caught
	data, err := io.ReadAll(io.LimitReader(src, MaxEvidenceSize+1))
	if err != nil {
		return "", "", err
	}
	if len(data) > MaxEvidenceSize {
		return "", "", ErrFileTooLarge
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return "", "", ErrNotPDF
	}

	url, err := s.write(DirEvidence, ".pdf", func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return "", "", err
	}
	return url, "application/pdf", nil
}

// SaveLetter stores a generated letter. render writes the PDF body.
func (s *Store) SaveLetter(render func(io.Writer) error) (string, error) {
	return s.write(DirLetters, ".pdf", render)
}

// Remove deletes a file previously returned by this store. Unknown paths are ignored.
func (s *Store) Remove(publicPath string) error {
	local, ok := s.localPath(publicPath)
	if !ok {
		return nil
	}
	if err := os.Remove(local); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) write(dir, ext string, fill func(io.Writer) error) (string, error) {
	name := uuid.NewString() + ext
	local := filepath.Join(s.Root, dir, name)

	f, err := os.OpenFile(local, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if err := fill(f); err != nil {
		f.Close()
		os.Remove(local)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(local)
		return "", err
	}

	return path.Join(s.URLPrefix, dir, name), nil
}

func (s *Store) localPath(publicPath string) (string, bool) {
	rel := strings.TrimPrefix(publicPath, s.URLPrefix+"/")
	if rel == publicPath || strings.Contains(rel, "..") {
		return "", false
	}
	return filepath.Join(s.Root, filepath.FromSlash(rel)), true
}
