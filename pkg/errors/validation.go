package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds node names accepted from a payload.
const maxNameLength = 512

// ValidateNodeName validates a node display name from a graph payload.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 512 bytes
//
// Names are used as layout keys and dependency references, so anything that
// cannot be displayed on one line is rejected.
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPayload, "node name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPayload, "node name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPayload, "node name %q contains control characters", name)
		}
	}
	return nil
}

// ValidateBasePath validates the navigation base path supplied by the host.
//
// Validation rules:
//   - Empty is allowed (navigation targets become "/<id>")
//   - Must be absolute (start with /) when set
//   - No control characters or backslashes
//   - No trailing slash, since node ids are joined with a single "/"
func ValidateBasePath(path string) error {
	if path == "" {
		return nil
	}
	if !strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidInput, "base path must start with /: %q", path)
	}
	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidInput, "base path must not end with /: %q", path)
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "base path cannot contain backslashes")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "base path contains invalid characters")
		}
	}
	return nil
}
