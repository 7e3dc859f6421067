package security

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/pkg/filesystem"
	"github.com/doeshing/jarvis-go/internal/ports"
)

const forbiddenFilenameChars = `<>:"/\|?*`

var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// Validator implements ports.Validator for one workspace.
type Validator struct {
	workspace string
	roots     []string
	sanitizer *Sanitizer
}

// NewValidator builds a validator. Relative paths resolve against workspace;
// every accepted path must sit under one of roots.
func NewValidator(workspace string, roots []string, sanitizer *Sanitizer) *Validator {
	canonical := make([]string, 0, len(roots))
	for _, root := range roots {
		if root == "" {
			continue
		}
		if resolved, err := canonicalize(expandHome(root)); err == nil {
			canonical = append(canonical, resolved)
		}
	}
	return &Validator{
		workspace: workspace,
		roots:     canonical,
		sanitizer: sanitizer,
	}
}

// ValidateFilename rejects names that are empty, too long, reserved or carry path characters.
func (v *Validator) ValidateFilename(name string) (string, error) {
	return ValidateFilename(name)
}

// ValidatePath resolves path and requires it under an allowed root.
func (v *Validator) ValidatePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	path = expandHome(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(v.workspace, path)
	}
	resolved, err := canonicalize(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	for _, root := range v.roots {
		if resolved == root || strings.HasPrefix(resolved, root+string(filepath.Separator)) {
			return resolved, nil
		}
	}
	return "", fmt.Errorf("%w: path %s is outside the allowed directories", domain.ErrInvalidInput, resolved)
}

// SanitizeContent strips injection patterns.
func (v *Validator) SanitizeContent(text string) string {
	if v.sanitizer == nil {
		return strings.TrimSpace(text)
	}
	return v.sanitizer.Sanitize(text)
}

// ValidateFilename is the stateless filename check.
func ValidateFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: filename cannot be empty", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxFilenameLength {
		return "", fmt.Errorf("%w: filename longer than %d characters", domain.ErrInvalidInput, domain.MaxFilenameLength)
	}
	if strings.ContainsAny(name, forbiddenFilenameChars) {
		return "", fmt.Errorf("%w: filename %q contains one of %s", domain.ErrInvalidInput, name, forbiddenFilenameChars)
	}
	for _, r := range name {
		if r < 0x20 {
			return "", fmt.Errorf("%w: filename contains control characters", domain.ErrInvalidInput)
		}
	}
	if name == "." || name == ".." {
		return "", fmt.Errorf("%w: filename %q is not a file", domain.ErrInvalidInput, name)
	}
	stem := strings.ToUpper(name)
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	if _, reserved := reservedNames[strings.TrimSpace(stem)]; reserved {
		return "", fmt.Errorf("%w: %q is a reserved device name", domain.ErrInvalidInput, name)
	}
	return name, nil
}

// canonicalize makes path absolute and resolves symlinks on the part that exists.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return resolveExisting(abs), nil
}

func resolveExisting(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path
	}
	return filepath.Join(resolveExisting(parent), filepath.Base(path))
}

func expandHome(path string) string {
	return filesystem.ExpandHome(path)
}

var _ ports.Validator = (*Validator)(nil)
