package entities

// MaxVersions caps every version listing
const MaxVersions = 100

// VersionSource tells whether a listing came from the upstream or the fallback
type VersionSource string

// Version list sources
const (
	SourceLive     VersionSource = "live"
	SourceFallback VersionSource = "fallback"
)

// VersionList is an ordered, newest-first, non-empty list of version identifiers
type VersionList struct {
	Provider ProviderID
	Versions []string
	Source   VersionSource
}

// Len returns the number of versions
func (l VersionList) Len() int {
	return len(l.Versions)
}

// Contains reports whether version is present in the list
func (l VersionList) Contains(version string) bool {
	for _, v := range l.Versions {
		if v == version {
			return true
		}
	}
	return false
}

// Page returns the 1-based page of versions of the given size and the total page count
func (l VersionList) Page(page, size int) ([]string, int) {
	if size <= 0 {
		size = 10
	}
	total := (len(l.Versions) + size - 1) / size
	if page < 1 || page > total {
		page = 1
	}
	start := (page - 1) * size
	end := start + size
	if end > len(l.Versions) {
		end = len(l.Versions)
	}
	return l.Versions[start:end], total
}
