package pipeline

import (
	"github.com/pkg/errors"
)

// Error kinds of a run. Call sites wrap them with errors.Wrapf so the message
// carries context while errors.Is still classifies the failure.
var (
	ErrUsage                = errors.New("usage error")
	ErrMalformedInput       = errors.New("malformed input")
	ErrInsufficientGeometry = errors.New("insufficient geometry")
	ErrDegenerateBounds     = errors.New("degenerate bounds")
	ErrRenderExport         = errors.New("render/export failure")
)

const (
	ExitOK                   = 0
	ExitFailure              = 1
	ExitUsage                = 2
	ExitMalformedInput       = 3
	ExitInsufficientGeometry = 4
	ExitDegenerateBounds     = 5
	ExitRenderExport         = 6
)

// Maps an error chain to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrMalformedInput):
		return ExitMalformedInput
	case errors.Is(err, ErrInsufficientGeometry):
		return ExitInsufficientGeometry
	case errors.Is(err, ErrDegenerateBounds):
		return ExitDegenerateBounds
	case errors.Is(err, ErrRenderExport):
		return ExitRenderExport
	}
	return ExitFailure
}
