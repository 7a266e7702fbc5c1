// Package platform refuses to run stuckbar anywhere but Windows.
package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// Supported is the only GOOS stuckbar manages a shell on.
const Supported = "windows"

// ErrUnsupported is matched by every error returned from Check.
var ErrUnsupported = errors.New("unsupported platform")

// UnsupportedError names the platform stuckbar was run on.
type UnsupportedError struct {
	OS string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("stuckbar is a Windows-only tool.\n"+
		"Current platform '%s' is not supported.\n"+
		"This tool restarts explorer.exe which only exists on Windows.", e.OS)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Check returns an *UnsupportedError unless running on Windows.
func Check() error {
	return CheckOS(runtime.GOOS)
}

// CheckOS is Check for an explicit GOOS value.
func CheckOS(goos string) error {
	if goos != Supported {
		return &UnsupportedError{OS: goos}
	}
	return nil
}
