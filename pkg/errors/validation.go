package errors

import (
	"image"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// ValidateCenter checks that both coordinates of a cloud center are
// non-negative.
func ValidateCenter(center image.Point) error {
	if center.X < 0 || center.Y < 0 {
		return New(ErrCodeInvalidArgument, "center coordinates must be nonnegative, but were %v", center)
	}
	return nil
}

// ValidateSize checks that a rectangle size is strictly positive and fits
// into a field of the given dimensions.
func ValidateSize(size, field image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return New(ErrCodeInvalidArgument, "rectangle size must be positive, but was %v", size)
	}
	if size.X > field.X || size.Y > field.Y {
		return New(ErrCodeInvalidArgument, "rectangle size must not exceed field size %v, but was %v", field, size)
	}
	return nil
}

// ValidateOutputPath validates a file path an artifact is written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
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

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed map[string]bool) error {
	if !allowed[format] {
		names := make([]string, 0, len(allowed))
		for name := range allowed {
			names = append(names, name)
		}
		slices.Sort(names)
		return New(ErrCodeInvalidFormat, "invalid format: %q (supported: %s)", format, strings.Join(names, ", "))
	}
	return nil
}
