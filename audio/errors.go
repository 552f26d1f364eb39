// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize     = errors.New("dst size must be multiple of channels")
	ErrTooFewFiles        = errors.New("not enough files specified")
	ErrSampleRateMismatch = errors.New("all input files must be at same sample rate")
	ErrTooManyChannels    = fmt.Errorf("maximum number of output file channels is %d", MaxChannels)
	ErrIllegalFormat      = errors.New("illegal output format")
	ErrInvalidBlockSize   = errors.New("block size must be at least one frame")
)

// ConfigError reports an option or input combination that cannot produce
// an output. It is always raised before the output stream is created.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// IOError reports a failure of an open, read, write, truncate or close
// operation on the named stream.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func configErr(err error) error {
	return &ConfigError{Err: err}
}
