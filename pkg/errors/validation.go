package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// MaxDimension bounds the width and height accepted from callers.
const MaxDimension = 20000

var chartNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateChartName checks a chart name taken from a URL or command line.
// Names map to definition files, so anything that could escape the
// definitions directory is rejected.
func ValidateChartName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "chart name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "chart name too long (max 128 characters)")
	}
	if strings.Contains(name, "..") || !chartNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "chart name contains invalid characters: %q", name)
	}
	return nil
}

// ValidatePath checks a data file path from a chart definition. Paths are
// resolved against the definition's directory and must stay inside it.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	return nil
}

// ValidateURL checks that rawURL uses http or https.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}

// ValidateMongoURI checks that uri uses a MongoDB scheme.
func ValidateMongoURI(uri string) error {
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidSource, "mongo uri must use mongodb:// or mongodb+srv://")
	}
	return nil
}

// ValidateDimensions checks a requested render size. Zero means "use the
// default" and is accepted.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return New(ErrCodeInvalidDimensions, "dimensions must be finite and non-negative, got %gx%g", width, height)
		}
		if v > MaxDimension {
			return New(ErrCodeInvalidDimensions, "dimension %g exceeds maximum %d", v, MaxDimension)
		}
	}
	return nil
}
