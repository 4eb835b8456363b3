// Package services contains domain logic that does not touch the network or disk.
package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ochairo/playport/internal/domain/entities"
)

// dottedVersionPattern matches plain numeric versions with one or two dots (1.8, 1.20.4)
var dottedVersionPattern = regexp.MustCompile(`^\d+(\.\d+){1,2}$`)

// IsDottedVersion reports whether v is a strict numeric dotted version
func IsDottedVersion(v string) bool {
	return dottedVersionPattern.MatchString(v)
}

// FallbackVersions returns the synthetic listing used when an upstream cannot be read:
// 1.100, 1.99, ..., 1.1
func FallbackVersions() []string {
	versions := make([]string, 0, entities.MaxVersions)
	for i := entities.MaxVersions; i >= 1; i-- {
		versions = append(versions, fmt.Sprintf("1.%d", i))
	}
	return versions
}

// FallbackList wraps FallbackVersions for a provider
func FallbackList(provider entities.ProviderID) entities.VersionList {
	return entities.VersionList{
		Provider: provider,
		Versions: FallbackVersions(),
		Source:   entities.SourceFallback,
	}
}

// versionSegments splits on '.' and '-' and returns each segment as a decimal
// string without leading zeros; non-numeric segments count as "0"
func versionSegments(v string) []string {
	parts := strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-'
	})
	segments := make([]string, len(parts))
	for i, p := range parts {
		segments[i] = numericSegment(p)
	}
	return segments
}

func numericSegment(s string) string {
	for _, r := range s {
		if r < '0' || r > '9' {
			return "0"
		}
	}
	if s = strings.TrimLeft(s, "0"); s == "" {
		return "0"
	}
	return s
}

// compareNumeric compares two digit strings without leading zeros. Any length
// is allowed, so segments too long for an integer still order correctly.
func compareNumeric(a, b string) int {
	if len(a) != len(b) {
		if len(a) > len(b) {
			return 1
		}
		return -1
	}
	return strings.Compare(a, b)
}

// CompareVersions compares two version strings segment by segment.
// Returns: 1 if v1 > v2, -1 if v1 < v2, 0 if equal.
// Missing segments are treated as 0, so "1.20" == "1.20.0".
func CompareVersions(v1, v2 string) int {
	s1 := versionSegments(v1)
	s2 := versionSegments(v2)

	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}

	for i := 0; i < maxLen; i++ {
		n1, n2 := "0", "0"
		if i < len(s1) {
			n1 = s1[i]
		}
		if i < len(s2) {
			n2 = s2[i]
		}
		if c := compareNumeric(n1, n2); c != 0 {
			return c
		}
	}

	return 0
}

// SortDescending orders versions newest-first in place. Versions that compare equal
// numerically are ordered by descending string value so the result is deterministic.
func SortDescending(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		if c := CompareVersions(versions[i], versions[j]); c != 0 {
			return c > 0
		}
		return versions[i] > versions[j]
	})
}

// Reverse reverses versions in place
func Reverse(versions []string) {
	for i, j := 0, len(versions)-1; i < j; i, j = i+1, j-1 {
		versions[i], versions[j] = versions[j], versions[i]
	}
}

// Normalize trims entries, drops empty ones and duplicates (first occurrence wins)
// and caps the result at MaxVersions. Order is otherwise preserved.
func Normalize(versions []string) []string {
	seen := make(map[string]struct{}, len(versions))
	out := make([]string, 0, len(versions))
	for _, v := range versions {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == entities.MaxVersions {
			break
		}
	}
	return out
}
