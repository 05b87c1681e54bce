// Package version parses the version markers of API description documents.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a major.minor[.patch] version. A missing patch is zero.
type Version struct {
	Major int
	Minor int
	Patch int
}

func New(major, minor, patch int) *Version {
	return &Version{
		Major: major,
		Minor: minor,
		Patch: patch,
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v Version) Equal(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor && v.Patch == other.Patch
}

// SameMinor reports whether v and other only differ in their patch version.
func (v Version) SameMinor(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor
}

// Parse parses "major.minor" or "major.minor.patch".
func Parse(version string) (*Version, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, fmt.Errorf("invalid version %s", version)
	}

	names := []string{"major", "minor", "patch"}
	numbers := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid %s version %s: %w", names[i], part, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid %s version %s: cannot be negative", names[i], part)
		}
		numbers[i] = n
	}

	return New(numbers[0], numbers[1], numbers[2]), nil
}
