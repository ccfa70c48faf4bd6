package stac

import (
	"strconv"
	"strings"
)

// DefaultStacVersion is the STAC spec version objects are created with and
// migrated to.
const DefaultStacVersion = "1.0.0"

// CompareVersions compares two dotted version strings numerically, returning
// -1, 0 or 1. Pre-release suffixes are compared lexically after the numeric
// segments, so "1.0.0-beta.2" sorts before "1.0.0".
func CompareVersions(a, b string) int {
	aParts, aPre := splitVersion(a)
	bParts, bPre := splitVersion(b)

	for i := 0; i < len(aParts) || i < len(bParts); i++ {
		av, bv := 0, 0
		if i < len(aParts) {
			av = aParts[i]
		}
		if i < len(bParts) {
			bv = bParts[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}

	// A release outranks its own pre-releases.
	switch {
	case aPre == bPre:
		return 0
	case aPre == "":
		return 1
	case bPre == "":
		return -1
	case aPre < bPre:
		return -1
	}
	return 1
}

// VersionLessThan reports whether version a predates version b.
func VersionLessThan(a, b string) bool {
	return CompareVersions(a, b) < 0
}

func splitVersion(v string) (parts []int, pre string) {
	if i := strings.IndexByte(v, '-'); i >= 0 {
		pre = v[i+1:]
		v = v[:i]
	}
	for _, s := range strings.Split(v, ".") {
		n, err := strconv.Atoi(s)
		if err != nil {
			n = 0
		}
		parts = append(parts, n)
	}
	return parts, pre
}
