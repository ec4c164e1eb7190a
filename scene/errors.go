package scene

import "errors"

var (
	// ErrAllocFailed is returned when the node arena is full.
	ErrAllocFailed = errors.New("scene: node allocation failed")

	// ErrDepthExceeded is returned when an operation would make the tree
	// deeper than its configured maximum.
	ErrDepthExceeded = errors.New("scene: maximum tree depth exceeded")

	// ErrCycle is returned by Reparent when the new parent lies inside the
	// moved subtree.
	ErrCycle = errors.New("scene: node cannot become its own descendant")
)
