package engine

import "errors"

var (
	// ErrSurfaceCreation covers glfw initialisation and window creation.
	ErrSurfaceCreation = errors.New("could not create render surface")
	// ErrGraphicsInit is returned when the GL function pointers cannot be loaded.
	ErrGraphicsInit = errors.New("could not initialize OpenGL")
)
