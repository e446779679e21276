package syphon

import (
	"sync"

	"github.com/gogpu/syphon/internal/native"
)

// MetalClient receives frames from one server as Metal textures.
//
// All methods are safe on a nil receiver.
type MetalClient struct {
	api native.API

	mu      sync.Mutex
	h       native.Handle
	handler FrameHandler
	stopped bool
	closed  bool
}

// NewMetalClient connects to the server identified by desc; frames arrive
// as textures on the given Metal device. desc may be borrowed, the
// framework copies what it needs during construction.
//
// onFrame, if non-nil, runs after every new frame on a thread owned by the
// framework; see [FrameHandler] for its constraints. Options are reserved;
// pass nil.
//
// A client is returned even when the server cannot be reached; check
// IsValid.
func NewMetalClient(desc *ServerDescription, device MetalDevice, options Options, onFrame FrameHandler) (*MetalClient, error) {
	a := nativeAPI()
	if !a.Available() {
		return nil, ErrUnavailable
	}
	if device == 0 {
		return nil, ErrNilDevice
	}
	if desc == nil {
		return nil, ErrNilDescription
	}
	dh, ok := desc.liveHandle()
	if !ok {
		return nil, ErrNilDescription
	}
	h := a.MetalClientCreate(dh, uintptr(device), options, wrapHandler(onFrame))
	if h == 0 {
		return nil, ErrCreateFailed
	}
	Logger().Debug("syphon: Metal client connected")
	return &MetalClient{api: a, h: h, handler: onFrame}, nil
}

// IsValid reports whether the client is connected to a live server. It
// turns false when the server stops or the client is stopped or closed.
func (c *MetalClient) IsValid() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stopped {
		return false
	}
	return c.api.MetalClientIsValid(c.h)
}

// HasNewFrame reports whether a frame newer than the last one taken with
// FrameImage has arrived.
func (c *MetalClient) HasNewFrame() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stopped {
		return false
	}
	return c.api.MetalClientHasNewFrame(c.h)
}

// FrameImage returns the most recent frame as an owned texture, or nil when
// no frame has arrived yet. The caller must close it.
func (c *MetalClient) FrameImage() *MetalTexture {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stopped {
		return nil
	}
	h := c.api.MetalClientFrameImage(c.h)
	if h == 0 {
		return nil
	}
	return &MetalTexture{api: c.api, h: h}
}

// Stop disconnects from the server. Once Stop returns the frame handler
// will not be invoked again. Stop is idempotent; the native object stays
// alive until Close.
func (c *MetalClient) Stop() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *MetalClient) stopLocked() {
	if c.stopped || c.closed {
		return
	}
	c.stopped = true
	c.api.MetalClientStop(c.h)
	Logger().Debug("syphon: Metal client stopped")
}

// Close stops the client if needed, releases the native object, then drops
// the handler reference, in that order. Close is idempotent and always
// returns nil.
func (c *MetalClient) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.stopLocked()
	c.closed = true
	c.api.MetalClientRelease(c.h)
	c.h = 0
	c.handler = nil
	return nil
}
