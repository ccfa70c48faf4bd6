package stac

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IsAbsoluteHref reports whether href is absolute: either a URL with an
// http(s) scheme or an absolute filesystem path.
func IsAbsoluteHref(href string) bool {
	return strings.HasPrefix(href, "http://") ||
		strings.HasPrefix(href, "https://") ||
		path.IsAbs(href)
}

// MakeAbsoluteHref resolves source against start and returns an absolute
// href. start is typically the self href of the owning object; when
// startIsDir is true, start is treated as a directory rather than a file.
//
// An already-absolute source is returned unchanged. If start is empty the
// current working directory is used, matching the behavior of catalogs built
// in memory without a self href.
func MakeAbsoluteHref(source, start string, startIsDir bool) string {
	if IsAbsoluteHref(source) {
		return source
	}
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return source
		}
		start = filepath.ToSlash(cwd)
		startIsDir = true
	}

	if u, err := url.Parse(start); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		base := *u
		if startIsDir && !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		ref, err := url.Parse(source)
		if err != nil {
			return source
		}
		return base.ResolveReference(ref).String()
	}

	dir := start
	if !startIsDir {
		dir = path.Dir(start)
	}
	return path.Clean(path.Join(dir, source))
}

// MakeRelativeHref returns source expressed relative to start. Both hrefs
// must be absolute and, for URLs, share a scheme and host; otherwise source
// is returned unchanged. The result uses a leading "./" when it does not
// climb out of start's directory, so a sibling file renders as "./file.json".
func MakeRelativeHref(source, start string, startIsDir bool) string {
	srcPath, srcPrefix, ok := splitHref(source)
	startPath, startPrefix, ok2 := splitHref(start)
	if !ok || !ok2 || srcPrefix != startPrefix {
		return source
	}

	startDir := startPath
	if !startIsDir {
		startDir = path.Dir(startPath)
	}

	rel := relPath(srcPath, startDir)
	if rel == "" {
		return source
	}
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}

// splitHref separates an href into its path component and a scheme://host
// prefix ("" for filesystem paths). ok is false for hrefs that are neither
// absolute paths nor http(s) URLs.
func splitHref(href string) (p, prefix string, ok bool) {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		u, err := url.Parse(href)
		if err != nil {
			return "", "", false
		}
		return u.Path, u.Scheme + "://" + u.Host, true
	}
	if path.IsAbs(href) {
		return href, "", true
	}
	return "", "", false
}

// relPath computes the slash-separated relative path from dir to target.
// Both inputs must be absolute slash paths.
func relPath(target, dir string) string {
	tParts := splitPath(path.Clean(target))
	dParts := splitPath(path.Clean(dir))

	common := 0
	for common < len(tParts) && common < len(dParts) && tParts[common] == dParts[common] {
		common++
	}

	var b strings.Builder
	for i := common; i < len(dParts); i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(tParts[common:], "/"))
	return strings.TrimSuffix(b.String(), "/")
}

func splitPath(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}
