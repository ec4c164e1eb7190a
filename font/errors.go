package font

import (
	"errors"
	"fmt"
)

// Sentinel errors for the font package.
var (
	// ErrBadMagic is returned by Parse when the blob does not start with
	// the font magic.
	ErrBadMagic = errors.New("font: bad magic")

	// ErrTruncated is returned by Parse when the blob ends early.
	ErrTruncated = errors.New("font: truncated data")

	// ErrVersion is returned by Parse for an unknown format version.
	ErrVersion = errors.New("font: unsupported version")

	// ErrBPP is returned for a bit depth other than 2 or 4.
	ErrBPP = errors.New("font: bpp must be 2 or 4")

	// ErrNoGlyphs is returned when a font has no glyph 0.
	ErrNoGlyphs = errors.New("font: no glyphs")

	// ErrUnsorted is returned when ranges or a sparse list are not strictly
	// ascending.
	ErrUnsorted = errors.New("font: not sorted")

	// ErrOutOfBounds is returned when an index points past its table.
	ErrOutOfBounds = errors.New("font: index out of bounds")

	// ErrEmptyCharset is returned by FromFace when the face covers none of
	// the requested code points.
	ErrEmptyCharset = errors.New("font: face has no glyph in charset")
)

// FormatError reports which table entry of a font failed validation.
type FormatError struct {
	Table string
	Index int
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("font: %s[%d]: %v", e.Table, e.Index, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
