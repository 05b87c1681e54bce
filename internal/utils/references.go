package utils

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ReferenceType represents the type of reference string
type ReferenceType int

const (
	ReferenceTypeUnknown ReferenceType = iota
	ReferenceTypeURL
	ReferenceTypeFilePath
	ReferenceTypeFragment
)

// ReferenceClassification holds the result of classifying a reference string
type ReferenceClassification struct {
	Type      ReferenceType
	Original  string
	ParsedURL *url.URL
}

// ClassifyReference determines if a string represents a URL, file path, or JSON Pointer fragment.
func ClassifyReference(ref string) (*ReferenceClassification, error) {
	if ref == "" {
		return nil, errors.New("empty reference")
	}

	result := &ReferenceClassification{
		Original: ref,
	}

	if strings.HasPrefix(ref, "#") {
		result.Type = ReferenceTypeFragment
		return result, nil
	}

	// Windows drive letters parse as a one letter scheme.
	if isWindowsAbsolutePath(ref) {
		result.Type = ReferenceTypeFilePath
		return result, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid reference format: %w", err)
	}

	if u.Scheme != "" {
		result.Type = ReferenceTypeURL
		result.ParsedURL = u
		return result, nil
	}

	result.Type = ReferenceTypeFilePath
	return result, nil
}

// JoinWith joins this classified reference with a relative reference.
// URLs are resolved with ResolveReference and file paths relative to the directory of the base.
func (rc *ReferenceClassification) JoinWith(relative string) (string, error) {
	if relative == "" {
		return rc.Original, nil
	}

	if strings.HasPrefix(relative, "#") {
		base, _ := SplitReference(rc.Original)
		return base + relative, nil
	}

	switch rc.Type {
	case ReferenceTypeURL:
		relativeURL, err := url.Parse(relative)
		if err != nil {
			return "", fmt.Errorf("invalid relative URL: %w", err)
		}
		return rc.ParsedURL.ResolveReference(relativeURL).String(), nil
	case ReferenceTypeFragment:
		return relative, nil
	default:
		return rc.joinFilePath(relative), nil
	}
}

func (rc *ReferenceClassification) joinFilePath(relative string) string {
	if filepath.IsAbs(relative) || strings.HasPrefix(relative, "/") || isWindowsAbsolutePath(relative) {
		return relative
	}
	if u, err := url.Parse(relative); err == nil && u.Scheme != "" {
		return relative
	}

	base, _ := SplitReference(rc.Original)
	joined := filepath.Join(filepath.Dir(filepath.FromSlash(base)), filepath.FromSlash(relative))
	return filepath.ToSlash(joined)
}

// isWindowsAbsolutePath checks if a path is a Windows absolute path (e.g., C:\path or \\server\share)
func isWindowsAbsolutePath(path string) bool {
	if len(path) >= 3 && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		return true
	}
	return strings.HasPrefix(path, "\\\\")
}

// JoinReference classifies the base reference and joins it with a relative reference.
func JoinReference(base, relative string) (string, error) {
	if base == "" {
		return relative, nil
	}

	baseClassification, err := ClassifyReference(base)
	if err != nil {
		return "", fmt.Errorf("invalid base reference: %w", err)
	}

	return baseClassification.JoinWith(relative)
}

// SplitReference splits a reference into the resource and the fragment following the first "#".
// The fragment is returned without its "#".
func SplitReference(ref string) (string, string) {
	resource, fragment, _ := strings.Cut(ref, "#")
	return resource, fragment
}
