package iconpress

import (
	"fmt"
	"path/filepath"
)

// SetupError reports an unusable environment, such as a missing icons root.
// It is the only error class that aborts a whole run.
type SetupError struct {
	Reason string
	Err    error
}

func (e *SetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *SetupError) Unwrap() error { return e.Err }

// ValidationError reports an SVG master whose declared intrinsic size does
// not match the required square, or whose size attributes are unusable.
type ValidationError struct {
	Path   string
	Reason string
	Width  float64
	Height float64
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", filepath.Base(e.Path), e.Reason)
	}
	return fmt.Sprintf("%s declares %gx%g, expected %dx%d",
		filepath.Base(e.Path), e.Width, e.Height, RequiredSize, RequiredSize)
}

// SourceMissingError reports a folder with no source asset to convert, or a
// marker regeneration with no mirror file left to rebuild from.
type SourceMissingError struct {
	Folder string
	Reason string
}

func (e *SourceMissingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Folder, e.Reason)
}

// EncodeError reports a failed rasterization or variant encode.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
