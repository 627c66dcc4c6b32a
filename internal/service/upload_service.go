package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNoFile            = errors.New("no file uploaded")
	ErrInvalidFileFormat = errors.New("invalid file format for this upload category")
	ErrFileSizeExceeded  = errors.New("file size exceeds limit")
	ErrUnknownCategory   = errors.New("unknown upload category")
)

// MaxUploadSize bounds a single uploaded file.
const MaxUploadSize = 10 * 1024 * 1024 // 10MiB

// UploadCategory selects the validation rules and target directory.
type UploadCategory string

const (
	CategoryResume  UploadCategory = "resume"
	CategoryProfile UploadCategory = "profile"
)

// uploadRule accepts a file when EITHER the declared MIME type OR the
// filename extension matches. The looseness is deliberate: clients mislabel
// MIME types, and this is not a content-based validator.
type uploadRule struct {
	mimeType   string
	extensions []string
	storedExt  string
}

// Rule order matters for the stored extension: for profile images anything
// claiming PNG stores as .png, everything else JPEG as .jpg.
var uploadRules = map[UploadCategory][]uploadRule{
	CategoryResume: {
		{mimeType: "application/pdf", extensions: []string{".pdf"}, storedExt: ".pdf"},
	},
	CategoryProfile: {
		{mimeType: "image/png", extensions: []string{".png"}, storedExt: ".png"},
		{mimeType: "image/jpeg", extensions: []string{".jpg", ".jpeg"}, storedExt: ".jpg"},
	},
}

func (r uploadRule) matches(mimeType, filename string) bool {
	if mimeType == r.mimeType {
		return true
	}
	lower := strings.ToLower(filename)
	for _, ext := range r.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// resolveStoredExt returns the storage extension for the first matching
// rule, or "" when neither the MIME type nor the extension is acceptable.
func resolveStoredExt(category UploadCategory, mimeType, filename string) string {
	for _, rule := range uploadRules[category] {
		if rule.matches(mimeType, filename) {
			return rule.storedExt
		}
	}
	return ""
}

// UploadService persists uploaded artifacts under opaque generated names
type UploadService interface {
	SaveFile(category UploadCategory, fileHeader *multipart.FileHeader) (string, error)
}

type uploadService struct {
	uploadsDir string
}

// NewUploadService creates a new UploadService rooted at uploadsDir
func NewUploadService(uploadsDir string) UploadService {
	return &uploadService{uploadsDir: uploadsDir}
}

// EnsureUploadDirs idempotently creates the per-category directories.
func EnsureUploadDirs(uploadsDir string) error {
	for category := range uploadRules {
		dir := filepath.Join(uploadsDir, string(category))
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create upload directory %s: %w", dir, err)
		}
	}
	return nil
}

// SaveFile validates the file against the category's rule table, persists
// the bytes under a fresh uuid name and returns the retrieval path. The
// client filename is never used for storage. The whole file is buffered in
// memory before writing so a disconnect mid-upload leaves nothing on disk.
func (s *uploadService) SaveFile(category UploadCategory, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", ErrNoFile
	}
	if _, ok := uploadRules[category]; !ok {
		return "", ErrUnknownCategory
	}
	if fileHeader.Size > MaxUploadSize {
		return "", ErrFileSizeExceeded
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	storedExt := resolveStoredExt(category, mimeType, fileHeader.Filename)
	if storedExt == "" {
		return "", fmt.Errorf("%w: mimetype=%q filename=%q", ErrInvalidFileFormat, mimeType, fileHeader.Filename)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	buf, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(buf) > MaxUploadSize {
		return "", ErrFileSizeExceeded
	}

	fileName := uuid.NewString() + storedExt
	filePath := filepath.Join(s.uploadsDir, string(category), fileName)
	if err := os.WriteFile(filePath, buf, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file to disk: %w", err)
	}

	return "/host/" + string(category) + "/" + fileName, nil
}
