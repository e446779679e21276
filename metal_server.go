package syphon

import (
	"sync"

	"github.com/gogpu/syphon/internal/native"
)

// MetalServer publishes Metal textures under a name visible to every Syphon
// client on the system.
//
// All methods are safe on a nil receiver.
type MetalServer struct {
	api  native.API
	name string

	mu      sync.Mutex
	h       native.Handle
	stopped bool
	closed  bool
}

// NewMetalServer announces a new server backed by the given Metal device.
// The name distinguishes multiple servers from one application and may be
// empty. Options are reserved; pass nil.
func NewMetalServer(name string, device MetalDevice, options Options) (*MetalServer, error) {
	a := nativeAPI()
	if !a.Available() {
		return nil, ErrUnavailable
	}
	if device == 0 {
		return nil, ErrNilDevice
	}
	h := a.MetalServerCreate(name, uintptr(device), options)
	if h == 0 {
		return nil, ErrCreateFailed
	}
	Logger().Debug("syphon: Metal server started", "name", name)
	return &MetalServer{api: a, name: name, h: h}, nil
}

// Name returns the name the server was created with.
func (s *MetalServer) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// HasClients reports whether any client is connected right now.
func (s *MetalServer) HasClients() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.api.MetalServerHasClients(s.h)
}

// Description returns an owned description of this server, or nil after
// Close. The caller must close it.
func (s *MetalServer) Description() *ServerDescription {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	h := s.api.MetalServerDescription(s.h)
	if h == 0 {
		return nil
	}
	return ownedDescription(s.api, h)
}

// PublishFrameTexture publishes a region of a Metal texture as the server's
// next frame. The copy is encoded onto commandBuffer; committing the buffer
// stays the caller's job, and the frame reaches clients once it completes.
// flipped marks content stored bottom-up.
//
// A zero texture or command buffer is a logged no-op, as is publishing
// after Stop or Close.
func (s *MetalServer) PublishFrameTexture(tex MetalTextureHandle, commandBuffer MetalCommandBuffer, region Rect, flipped bool) {
	if s == nil {
		return
	}
	if tex == 0 || commandBuffer == 0 {
		Logger().Warn("syphon: publish skipped, missing texture or command buffer", "server", s.name)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.stopped {
		Logger().Warn("syphon: publish skipped, server stopped", "server", s.name)
		return
	}
	s.api.MetalServerPublish(s.h, uintptr(tex), uintptr(commandBuffer),
		region.X, region.Y, region.W, region.H, flipped)
}

// FrameImage returns the server's own most recent published frame as an
// owned texture, or nil before the first publish or after Close. The caller
// must close it.
func (s *MetalServer) FrameImage() *MetalTexture {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	h := s.api.MetalServerFrameImage(s.h)
	if h == 0 {
		return nil
	}
	return &MetalTexture{api: s.api, h: h}
}

// Stop withdraws the server from the directory and disconnects its clients.
// Stop is idempotent; the native object stays alive until Close.
func (s *MetalServer) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *MetalServer) stopLocked() {
	if s.stopped || s.closed {
		return
	}
	s.stopped = true
	s.api.MetalServerStop(s.h)
	Logger().Debug("syphon: Metal server stopped", "name", s.name)
}

// Close stops the server if needed and releases the native object. Close is
// idempotent and always returns nil.
func (s *MetalServer) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.stopLocked()
	s.closed = true
	s.api.MetalServerRelease(s.h)
	s.h = 0
	return nil
}
