package wizard

import (
	"fmt"
	"strings"

	"signpubliq/internal/domain/entity"
)

// UploadPolicy is the client-side upload validation: per-file and
// per-envelope size ceilings plus an extension/MIME allowlist.
type UploadPolicy struct {
	MaxFileBytes     int64
	MaxEnvelopeBytes int64
	AcceptedExts     []string
	AcceptedMime     []string
}

// DefaultUploadPolicy matches the wizard's published limits: 25 MB
// per file, 100 MB per envelope, PDF/DOC/DOCX plus PNG/JPG images
// that get converted to PDF downstream.
func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxFileBytes:     25 << 20,
		MaxEnvelopeBytes: 100 << 20,
		AcceptedExts:     []string{"pdf", "doc", "docx", "png", "jpg", "jpeg"},
		AcceptedMime: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"image/png",
			"image/jpeg",
		},
	}
}

var convertibleExts = map[string]bool{"png": true, "jpg": true, "jpeg": true}

// Validate splits an upload batch into accepted files and rejection
// reasons. Exceeding the envelope ceiling rejects the whole batch,
// because partial staging would leave the user guessing which files
// made it.
func (p UploadPolicy) Validate(files []entity.IncomingFile, stagedBytes int64) (accepted []entity.IncomingFile, rejected []string, err error) {
	total := stagedBytes
	for _, f := range files {
		if !p.accepts(f) {
			rejected = append(rejected, fmt.Sprintf("%s (unsupported format)", f.Name))
			continue
		}
		size := int64(len(f.Content))
		if size > p.MaxFileBytes {
			rejected = append(rejected, fmt.Sprintf("%s (%.2f MB exceeds %d MB)", f.Name, mb(size), p.MaxFileBytes>>20))
			continue
		}
		total += size
		accepted = append(accepted, f)
	}

	if total > p.MaxEnvelopeBytes {
		return nil, nil, fmt.Errorf("%w: envelope size limit exceeded (%d MB total)", entity.ErrValidation, p.MaxEnvelopeBytes>>20)
	}
	return accepted, rejected, nil
}

// WillConvert reports whether the file is an image that the backend
// converts to PDF.
func WillConvert(name string) bool {
	return convertibleExts[Extension(name)]
}

// Extension returns the lowercase filename extension without the dot.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

func (p UploadPolicy) accepts(f entity.IncomingFile) bool {
	for _, m := range p.AcceptedMime {
		if f.MimeType == m {
			return true
		}
	}
	ext := Extension(f.Name)
	for _, e := range p.AcceptedExts {
		if ext == e {
			return true
		}
	}
	return false
}

func mb(n int64) float64 {
	return float64(n) / (1 << 20)
}
