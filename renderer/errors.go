package renderer

import "errors"

var (
	ErrSceneNotDefined   = errors.New("renderer: no scene defined")
	ErrInvalidFrameDims  = errors.New("renderer: frame dimensions must be positive")
	ErrInvalidSampleRate = errors.New("renderer: samples per pixel must be positive")
)
