package readme

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError reports a URL without a github.com/<owner>/<repo> shape.
// Callers should prefer the predicate functions (IsParseError, IsNotFound)
// to inspect errors rather than asserting on the types directly.
type ParseError struct {
	URL string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse GitHub URL: %s", e.URL)
}

// IsParseError reports whether err is a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// NotFoundError reports that every README candidate missed for a repository.
type NotFoundError struct {
	URL      string
	Branches []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find a README in %s (checked branches %s)",
		e.URL, strings.Join(e.Branches, ", "))
}

// IsNotFound reports whether err is a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
