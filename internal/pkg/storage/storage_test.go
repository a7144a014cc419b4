package storage

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fileHeader builds a multipart file header the way an HTTP upload produces it
func fileHeader(t *testing.T, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="evidence"; filename="evidence.pdf"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	part.Write(body)
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(10 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["evidence"][0]
}

func TestSaveEvidencePDF(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, "/uploads")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pdf := []byte("%PDF-1.4\n%test\n")
	tooBig := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), MaxEvidenceSize)...)

	tests := []struct {
		name        string
		contentType string
		body        []byte
		wantErr     error
	}{
		{"valid pdf", "application/pdf", pdf, nil},
		{"wrong content type", "image/png", pdf, ErrNotPDF},
		{"pdf header lies", "application/pdf", []byte("not a pdf"), ErrNotPDF},
		{"too large", "application/pdf", tooBig, ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, ct, err := store.SaveEvidencePDF(fileHeader(t, tt.contentType, tt.body))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ct != "application/pdf" || !strings.HasPrefix(url, "/uploads/evidence/") {
				t.Errorf("url=%q ct=%q", url, ct)
			}

			local := filepath.Join(root, DirEvidence, filepath.Base(url))
			got, err := os.ReadFile(local)
			if err != nil || !bytes.Equal(got, tt.body) {
				t.Errorf("stored file mismatch: %v", err)
			}

			if err := store.Remove(url); err != nil {
				t.Errorf("Remove: %v", err)
			}
			if _, err := os.Stat(local); !os.IsNotExist(err) {
				t.Errorf("file still present after Remove")
			}
		})
	}

	if _, _, err := store.SaveEvidencePDF(nil); !errors.Is(err, ErrFileMissing) {
		t.Errorf("nil header error = %v, want ErrFileMissing", err)
	}
}

func TestSaveLetterCleansUpOnFailure(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, "/uploads")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	boom := errors.New("render failed")
	if _, err := store.SaveLetter(func(io.Writer) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want render failure", err)
	}

	entries, _ := os.ReadDir(filepath.Join(root, DirLetters))
	if len(entries) != 0 {
		t.Errorf("letters dir has %d leftover files", len(entries))
	}
}
