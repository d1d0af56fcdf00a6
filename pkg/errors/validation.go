package errors

import (
	"strings"
	"unicode"
)

// MaxCanvasInches bounds canvas dimensions to catch unit mix-ups (EMU or
// pixel values passed where inches are expected).
const MaxCanvasInches = 120.0

// ValidateCanvas validates slide canvas dimensions in inches.
func ValidateCanvas(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas dimensions must be positive, got %gx%g", width, height)
	}
	if width > MaxCanvasInches || height > MaxCanvasInches {
		return New(ErrCodeInvalidCanvas, "canvas %gx%g exceeds %g inches; dimensions must be in inches", width, height, MaxCanvasInches)
	}
	return nil
}

// ValidateSlideCount validates a requested slide count for outline planning.
func ValidateSlideCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "slide count cannot be negative")
	}
	if n > 100 {
		return New(ErrCodeInvalidInput, "slide count too large (max 100)")
	}
	return nil
}

// ValidateTemplatePath validates a template file path for safety.
// It rejects paths that could be used for traversal or injection.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - No parent-directory traversal
//   - Maximum length of 500 characters
func ValidateTemplatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidTemplate, "template path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidTemplate, "template path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidTemplate, "template path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidTemplate, "template path cannot contain traversal sequences (..)")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
