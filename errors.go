package gg3d

import "errors"

// ErrInvalidHandle is returned when a handle does not refer to a live value
// in its arena. The kind-specific errors below wrap it, so
// errors.Is(err, ErrInvalidHandle) matches all of them.
var ErrInvalidHandle = errors.New("gg3d: invalid resource handle")

// Resource lookup errors returned from entity submission.
var (
	ErrMeshNotFound     = kindError("mesh")
	ErrMaterialNotFound = kindError("material")
	ErrTextureNotFound  = kindError("texture")
	ErrCubemapNotFound  = kindError("cubemap")
)

// ErrInvalidMesh is returned by NewMesh for index lists that are not a
// multiple of three or that reference missing vertices.
var ErrInvalidMesh = errors.New("gg3d: invalid mesh")

func kindError(kind string) error {
	return &handleError{kind: kind}
}

type handleError struct {
	kind string
}

func (e *handleError) Error() string { return "gg3d: " + e.kind + " not found" }

func (e *handleError) Unwrap() error { return ErrInvalidHandle }
