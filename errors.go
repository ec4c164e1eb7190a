package fbui

import (
	"errors"
	"fmt"
)

// Device validation errors. New wraps them in a *ConfigError.
var (
	ErrNoBuffer       = errors.New("fbui: device has no buffer")
	ErrTooManyBuffers = errors.New("fbui: device has more than two buffers")
	ErrBufferSize     = errors.New("fbui: buffer smaller than capacity")
	ErrCapacity       = errors.New("fbui: capacity smaller than one screen row")
	ErrResolution     = errors.New("fbui: invalid resolution")
	ErrDepth          = errors.New("fbui: unsupported pixel depth")
	ErrNoFlush        = errors.New("fbui: device has no flush function")
)

// ErrNotPage is returned by Load for an ID that is not a page.
var ErrNotPage = errors.New("fbui: node is not a page")

// ConfigError reports an invalid Device field.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("fbui: device %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
