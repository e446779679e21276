package syphon

import (
	"sync"

	"github.com/gogpu/syphon/internal/native"
)

// OpenGLImage is one received frame: a GL_TEXTURE_RECTANGLE texture the
// framework shares into the client's context. The texture belongs to the
// framework; Close releases the frame, after which the texture name must
// not be used.
//
// The framework recycles frames from a bounded pool. Close each image
// within the draw cycle that took it, and never use one after the client
// that produced it has stopped.
//
// All methods are safe on a nil receiver.
type OpenGLImage struct {
	api native.API

	mu     sync.Mutex
	h      native.Handle
	closed bool
}

// TextureName returns the OpenGL texture name backing the frame, or 0 after
// Close.
func (img *OpenGLImage) TextureName() uint32 {
	if img == nil {
		return 0
	}
	img.mu.Lock()
	defer img.mu.Unlock()
	if img.closed {
		return 0
	}
	return img.api.GLImageTextureName(img.h)
}

// TextureSize returns the frame's dimensions in pixels, zero after Close.
func (img *OpenGLImage) TextureSize() Size {
	if img == nil {
		return Size{}
	}
	img.mu.Lock()
	defer img.mu.Unlock()
	if img.closed {
		return Size{}
	}
	w, h := img.api.GLImageTextureSize(img.h)
	return Size{W: w, H: h}
}

// Close releases the frame. Close is idempotent and always returns nil.
func (img *OpenGLImage) Close() error {
	if img == nil {
		return nil
	}
	img.mu.Lock()
	defer img.mu.Unlock()
	if img.closed {
		return nil
	}
	img.closed = true
	img.api.GLImageRelease(img.h)
	img.h = 0
	return nil
}
