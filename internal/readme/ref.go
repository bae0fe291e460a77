// Package readme locates and fetches project READMEs for public GitHub
// repositories over the raw content host.
package readme

import (
	"regexp"
	"strings"
)

// refPattern matches the owner and repository segments of a GitHub URL.
// The host is matched case-sensitively; scheme and extra path segments
// are ignored.
var refPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`)

// Ref identifies a GitHub repository. URL keeps the original input for
// error reporting.
type Ref struct {
	Owner string
	Name  string
	URL   string
}

func (r Ref) String() string { return r.Owner + "/" + r.Name }

// ParseRef extracts the owner and repository from a GitHub URL. It performs
// no network I/O. A URL without a github.com/<owner>/<repo> shape yields a
// *ParseError.
func ParseRef(raw string) (Ref, error) {
	m := refPattern.FindStringSubmatch(normalize(raw))
	if m == nil {
		return Ref{}, &ParseError{URL: raw}
	}
	return Ref{Owner: m[1], Name: m[2], URL: raw}, nil
}

// DisplayName derives a human-facing project name from a repository URL:
// the final path segment minus any .git suffix.
func DisplayName(raw string) string {
	s := strings.TrimSuffix(raw, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSuffix(s, ".git")
}

// normalize strips a trailing slash, then a trailing .git.
func normalize(raw string) string {
	s := strings.TrimSuffix(raw, "/")
	return strings.TrimSuffix(s, ".git")
}
