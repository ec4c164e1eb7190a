package fbui

import (
	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/scene"
)

// Option configures an Engine during creation.
//
// Example:
//
//	e, err := fbui.New(dev,
//	    fbui.WithTickInterval(20),
//	    fbui.WithMaxNodes(128),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	interval  uint32
	maxDepth  int
	maxNodes  int
	animate   func()
	pageColor *pixel.Color
}

// Defaults used when no option overrides them.
const (
	DefaultTickInterval = 10
	DefaultMaxDepth     = scene.DefaultMaxDepth
	DefaultMaxNodes     = scene.DefaultMaxNodes
)

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		interval: DefaultTickInterval,
		maxDepth: DefaultMaxDepth,
		maxNodes: DefaultMaxNodes,
	}
}

// WithTickInterval sets how many ticks (milliseconds by convention) must
// accumulate through TickInc before Handle runs a pass. 0 runs a pass on
// every Handle call.
func WithTickInterval(ms uint32) Option {
	return func(o *options) {
		o.interval = ms
	}
}

// WithMaxDepth bounds the depth of the node tree. A page is at depth 1.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithMaxNodes bounds the number of nodes, pages included.
func WithMaxNodes(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxNodes = n
		}
	}
}

// WithAnimation installs a hook that Handle calls before collecting damage.
// The hook may mutate the tree.
func WithAnimation(fn func()) Option {
	return func(o *options) {
		o.animate = fn
	}
}

// WithPageColor sets the background colour of new pages, in the device's
// depth. The default is white.
func WithPageColor(c pixel.Color) Option {
	return func(o *options) {
		o.pageColor = &c
	}
}
