package syphon

import (
	"sync"

	"github.com/gogpu/syphon/internal/native"
)

// OpenGLClient receives frames from one server as OpenGL textures.
//
// All methods are safe on a nil receiver.
type OpenGLClient struct {
	api native.API

	mu      sync.Mutex
	h       native.Handle
	handler FrameHandler
	stopped bool
	closed  bool
}

// NewOpenGLClient connects to the server identified by desc. context must
// be a live CGL context; frames arrive as textures shared into it. desc may
// be borrowed, the framework copies what it needs during construction.
//
// onFrame, if non-nil, runs after every new frame on a thread owned by the
// framework; see [FrameHandler] for its constraints. Options are reserved;
// pass nil.
//
// A client is returned even when the server cannot be reached; check
// IsValid.
func NewOpenGLClient(desc *ServerDescription, context GLContext, options Options, onFrame FrameHandler) (*OpenGLClient, error) {
	a := nativeAPI()
	if !a.Available() {
		return nil, ErrUnavailable
	}
	if context == 0 {
		return nil, ErrNilContext
	}
	if desc == nil {
		return nil, ErrNilDescription
	}
	dh, ok := desc.liveHandle()
	if !ok {
		return nil, ErrNilDescription
	}
	h := a.GLClientCreate(dh, uintptr(context), options, wrapHandler(onFrame))
	if h == 0 {
		return nil, ErrCreateFailed
	}
	Logger().Debug("syphon: OpenGL client connected")
	return &OpenGLClient{api: a, h: h, handler: onFrame}, nil
}

// wrapHandler shields the framework's notification thread from handler
// panics; an unrecovered panic there would abort the process.
func wrapHandler(onFrame FrameHandler) func() {
	if onFrame == nil {
		return nil
	}
	return func() {
		defer func() {
			if r := recover(); r != nil {
				Logger().Error("syphon: frame handler panicked", "panic", r)
			}
		}()
		onFrame()
	}
}

// IsValid reports whether the client is connected to a live server. It
// turns false when the server stops or the client is stopped or closed.
func (c *OpenGLClient) IsValid() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stopped {
		return false
	}
	return c.api.GLClientIsValid(c.h)
}

// HasNewFrame reports whether a frame newer than the last one taken with
// FrameImage has arrived.
func (c *OpenGLClient) HasNewFrame() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stopped {
		return false
	}
	return c.api.GLClientHasNewFrame(c.h)
}

// FrameImage returns the most recent frame as an owned image, or nil when
// no frame has arrived yet. The caller must close it. The client's CGL
// context must be current on the calling thread.
func (c *OpenGLClient) FrameImage() *OpenGLImage {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stopped {
		return nil
	}
	h := c.api.GLClientFrameImage(c.h)
	if h == 0 {
		return nil
	}
	return &OpenGLImage{api: c.api, h: h}
}

// Stop disconnects from the server. Once Stop returns the frame handler
// will not be invoked again. Stop is idempotent; the native object stays
// alive until Close.
func (c *OpenGLClient) Stop() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *OpenGLClient) stopLocked() {
	if c.stopped || c.closed {
		return
	}
	c.stopped = true
	c.api.GLClientStop(c.h)
	Logger().Debug("syphon: OpenGL client stopped")
}

// Close stops the client if needed, releases the native object, then drops
// the handler reference, in that order. Close is idempotent and always
// returns nil.
func (c *OpenGLClient) Close() error {
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
	c.api.GLClientRelease(c.h)
	c.h = 0
	c.handler = nil
	return nil
}
