package syphon

import "errors"

// Sentinel errors returned by this package. Match them with errors.Is.
var (
	// ErrUnavailable indicates the Syphon framework cannot be used in this
	// build: the platform is not macOS, or cgo is disabled. Constructors
	// return it without touching any native state.
	ErrUnavailable = errors.New("syphon: framework not available in this build")

	// ErrNilContext indicates a zero OpenGL context handle was passed to a
	// constructor that requires one.
	ErrNilContext = errors.New("syphon: nil OpenGL context")

	// ErrNilDevice indicates a zero Metal device handle was passed to a
	// constructor that requires one.
	ErrNilDevice = errors.New("syphon: nil Metal device")

	// ErrNilDescription indicates a client constructor was given no server
	// description.
	ErrNilDescription = errors.New("syphon: nil server description")

	// ErrCreateFailed indicates the framework declined to create the native
	// object.
	ErrCreateFailed = errors.New("syphon: native object creation failed")

	// ErrNotOwned indicates a release was requested through a description
	// that holds no reference of its own, either because it is borrowed from
	// the directory or because its references were already released.
	ErrNotOwned = errors.New("syphon: description not owned")
)
