// Package pagination turns raw page / perPage query values into a storage window.
//
// Page numbering follows the public API contract: a requested page p > 0 skips
// p*perPage records and is reported back as page p+1, while page 0 (or no page
// at all) is the first page.
//
// Values that are not plain base-10 integers ("abc", "10abc") are rejected with
// a ParameterError; they are not read as page 0 or truncated to their numeric prefix.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DefaultPerPage is used when neither the request nor Defaults carry a page size.
const DefaultPerPage = 10

// ErrInvalidParameter marks any pagination input rejected by Resolve.
var ErrInvalidParameter = errors.New("invalid pagination parameter")

// Kind tells why a parameter was rejected.
type Kind int

const (
	// KindMalformed: the value is present but is not a base-10 integer.
	KindMalformed Kind = iota + 1
	// KindOutOfRange: the value parsed but lies outside the accepted range.
	KindOutOfRange
)

func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindOutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}

// ParameterError describes a rejected page or perPage value.
// It unwraps to ErrInvalidParameter.
type ParameterError struct {
	Param string
	Raw   string
	Kind  Kind
}

func (e *ParameterError) Error() string { return "Invalid " + e.Param + " number." }
func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

// Param is a raw query value that may be absent.
type Param struct {
	raw string
	set bool
}

// Absent is a parameter the client did not send.
func Absent() Param { return Param{} }

// Value wraps a raw value the client sent.
func Value(raw string) Param { return Param{raw: raw, set: true} }

// FromQuery adapts the (value, ok) pair returned by query lookups such as gin's GetQuery.
func FromQuery(raw string, ok bool) Param { return Param{raw: raw, set: ok} }

// Present reports whether the parameter carries a non-blank value.
// A blank value (?page=) is treated like an absent one.
func (p Param) Present() bool { return p.set && strings.TrimSpace(p.raw) != "" }

// Defaults are the caller's fallbacks. Page is accepted for symmetry with the
// listing handlers but is not consulted: an absent page always means the first page.
type Defaults struct {
	Page    int
	PerPage int
}

// Result is the normalized window handed to a storage query.
type Result struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Offset  int `json:"offset"`
}

// Resolve validates and normalizes the raw parameters. It performs no I/O and is
// safe for concurrent use.
func Resolve(page, perPage Param, defaults Defaults) (Result, error) {
	defaultPerPage := defaults.PerPage
	if defaultPerPage <= 0 {
		defaultPerPage = DefaultPerPage
	}

	requested := 0
	if page.Present() {
		n, err := parseInt(page.raw)
		if err != nil {
			return Result{}, &ParameterError{Param: "page", Raw: page.raw, Kind: parseKind(err)}
		}
		if n < 0 {
			return Result{}, &ParameterError{Param: "page", Raw: page.raw, Kind: KindOutOfRange}
		}
		requested = n
	}

	size := defaultPerPage
	if perPage.Present() {
		n, err := parseInt(perPage.raw)
		if err != nil {
			return Result{}, &ParameterError{Param: "perPage", Raw: perPage.raw, Kind: parseKind(err)}
		}
		if n < 1 {
			return Result{}, &ParameterError{Param: "perPage", Raw: perPage.raw, Kind: KindOutOfRange}
		}
		size = n
	}

	if requested == 0 {
		return Result{Page: 1, PerPage: size, Offset: 0}, nil
	}
	if requested > math.MaxInt/size {
		return Result{}, &ParameterError{Param: "page", Raw: page.raw, Kind: KindOutOfRange}
	}
	return Result{Page: requested + 1, PerPage: size, Offset: requested * size}, nil
}

// TotalPages is the number of pages needed to hold total records, perPage at a time.
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func parseInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

// parseKind treats integers too large for int as out of range rather than malformed.
func parseKind(err error) Kind {
	if errors.Is(err, strconv.ErrRange) {
		return KindOutOfRange
	}
	return KindMalformed
}
