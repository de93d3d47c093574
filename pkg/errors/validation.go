package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// materialRegex matches namespaced or bare material identifiers such as
// "stone", "oak_slab" or "minecraft:white_wool".
var materialRegex = regexp.MustCompile(`^([a-z0-9_.-]+:)?[a-z0-9_./-]+$`)

// ValidateMaterialName validates a material identifier from a scene file.
func ValidateMaterialName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidMaterial, "material name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidMaterial, "material name too long (max 128 characters)")
	}
	if !materialRegex.MatchString(strings.ToLower(name)) {
		return New(ErrCodeInvalidMaterial, "invalid material name: %q", name)
	}
	return nil
}

// sceneNameRegex matches names safe to use as a file basename.
var sceneNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateSceneName validates a scene or request name. Names become part
// of artifact filenames, so they must be simple basenames.
func ValidateSceneName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "name too long (max 64 characters)")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "name cannot contain %q", "..")
	}
	if !sceneNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid name: %q", name)
	}
	return nil
}

// ValidateOutputPath validates an artifact output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..) after cleaning
func ValidateOutputPath(path string) error {
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

	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}
	return nil
}
