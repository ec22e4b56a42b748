package serverversion

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two version strings using semver ordering.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Surrounding whitespace and a single leading "v" are tolerated; anything else
// must be a full MAJOR.MINOR.PATCH version.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// IsOutdated reports whether current is strictly older than latest.
// Versions that fail to parse are never outdated; validating them is left to
// whoever starts the server.
func IsOutdated(current, latest string) bool {
	cmp, err := CompareVersions(current, latest)
	if err != nil {
		return false
	}
	return cmp < 0
}

func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.StrictNewVersion(version)
}
