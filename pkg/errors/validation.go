package errors

import (
	"os"
	"unicode"
)

// ValidateInputPath checks that path names an existing regular file that
// can be opened for reading.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - The file must exist and must not be a directory
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(ErrCodeFileNotFound, "no such file: %s", path)
		}
		return Wrap(ErrCodeInvalidPath, err, "cannot access %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is a directory", path)
	}
	return nil
}
