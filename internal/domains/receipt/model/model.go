package model

import (
	"conference/shared/constant"
	"conference/shared/failure"
	"io"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/unicode/norm"
)

const (
	EntityName = "receipt"

	DirectoryPrefix = "booking_"
	nameSeparator   = "_"
	maxNameLength   = 200
)

var (
	ErrReceiptNotFound = &failure.Failure{Code: http.StatusNotFound, Message: "Receipt not found."}
	ErrInvalidPath     = &failure.Failure{Code: http.StatusBadRequest, Message: "Invalid receipt path."}
	ErrInvalidFile     = &failure.Failure{Code: http.StatusBadRequest, Message: "Invalid file type. Please upload PNG, JPG, JPEG, or PDF."}
	ErrNoFile          = &failure.Failure{Code: http.StatusBadRequest, Message: "No file selected"}
	ErrFileTooLarge    = &failure.Failure{Code: http.StatusRequestEntityTooLarge, Message: "File is too large."}
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// File is an opened receipt; callers must close Body.
type File struct {
	Name        string
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// SanitizeFilename reduces an uploaded name to ASCII letters, digits, dots, dashes and underscores.
// Directory components are flattened, so the result is always a single path segment.
func SanitizeFilename(name string) string {
	decomposed := norm.NFKD.String(name)

	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}

		if r == '/' || r == '\\' {
			return ' '
		}

		return r
	}, decomposed)

	joined := strings.Join(strings.Fields(ascii), nameSeparator)
	cleaned := strings.Trim(unsafeNameChars.ReplaceAllString(joined, constant.Empty), "._")

	if len(cleaned) > maxNameLength {
		ext := filepath.Ext(cleaned)
		cleaned = cleaned[:maxNameLength-len(ext)] + ext
	}

	return cleaned
}

// ObjectName builds booking_{id}/{YYYYmmddHHMMSS}_{sanitized name}.
func ObjectName(bookingID, filename string, at time.Time) (string, error) {
	safe := SanitizeFilename(filename)
	if safe == constant.Empty || bookingID == constant.Empty || strings.ContainsAny(bookingID, `/\.`) {
		return constant.Empty, ErrInvalidFile
	}

	return path.Join(DirectoryPrefix+bookingID, at.Format(constant.ReceiptTimeFormat)+nameSeparator+safe), nil
}

// ValidatePath accepts only paths produced by ObjectName: one booking directory and one file.
func ValidatePath(objectPath string) error {
	if objectPath == constant.Empty || strings.Contains(objectPath, `\`) || path.IsAbs(objectPath) {
		return ErrInvalidPath
	}

	cleaned := path.Clean(objectPath)
	if cleaned != objectPath {
		return ErrInvalidPath
	}

	dir, file := path.Split(cleaned)
	dir = strings.TrimSuffix(dir, "/")

	if file == constant.Empty || strings.HasPrefix(file, ".") ||
		!strings.HasPrefix(dir, DirectoryPrefix) || strings.Contains(dir, "/") || dir == DirectoryPrefix {
		return ErrInvalidPath
	}

	return nil
}

// DetectContentType sniffs data, falling back on the file extension when the content is not
// recognised.
func DetectContentType(filename string, data []byte) string {
	if len(data) > 0 {
		detected := mimetype.Detect(data)
		if !detected.Is(constant.ContentTypeOctetStream) && !detected.Is("text/plain") {
			return detected.String()
		}
	}

	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != constant.Empty {
		return byExt
	}

	return constant.ContentTypeOctetStream
}
