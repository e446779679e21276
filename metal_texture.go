package syphon

import (
	"sync"

	"github.com/gogpu/syphon/internal/native"
)

// MetalTexture is one received or republished frame, an id<MTLTexture> this
// wrapper holds a reference to. Close releases the reference; the handle
// must not be used afterwards.
//
// The framework recycles frames from a bounded pool. Close each texture
// within the draw cycle that took it, and never use one after the client
// or server it came from has stopped.
//
// All methods are safe on a nil receiver.
type MetalTexture struct {
	api native.API

	mu     sync.Mutex
	h      native.Handle
	closed bool
}

// Handle returns the bridged id<MTLTexture> pointer for handing to the
// caller's Metal pipeline, or 0 after Close. The pointer stays valid until
// Close.
func (t *MetalTexture) Handle() MetalTextureHandle {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0
	}
	return MetalTextureHandle(t.api.MetalTexturePointer(t.h))
}

// Close releases the texture reference. Close is idempotent and always
// returns nil.
func (t *MetalTexture) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.api.MetalTextureRelease(t.h)
	t.h = 0
	return nil
}
