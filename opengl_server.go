package syphon

import (
	"sync"

	"github.com/gogpu/syphon/internal/native"
)

// GL texture targets accepted by PublishFrameTexture. Frames reach clients
// as rectangle textures regardless of the target they were published with.
const (
	TextureTarget2D        uint32 = 0x0DE1 // GL_TEXTURE_2D
	TextureTargetRectangle uint32 = 0x84F5 // GL_TEXTURE_RECTANGLE
)

// OpenGLServer publishes OpenGL textures under a name visible to every
// Syphon client on the system.
//
// The server is tied to the CGL context it was created with; publish calls
// must come from a thread where that context can be made current, per the
// framework's threading rules. Close withdraws the server and releases it.
//
// All methods are safe on a nil receiver.
type OpenGLServer struct {
	api  native.API
	name string

	mu      sync.Mutex
	h       native.Handle
	stopped bool
	closed  bool
}

// NewOpenGLServer announces a new server. The name distinguishes multiple
// servers from one application and may be empty. context must be a live CGL
// context. Options are reserved; pass nil.
func NewOpenGLServer(name string, context GLContext, options Options) (*OpenGLServer, error) {
	a := nativeAPI()
	if !a.Available() {
		return nil, ErrUnavailable
	}
	if context == 0 {
		return nil, ErrNilContext
	}
	h := a.GLServerCreate(name, uintptr(context), options)
	if h == 0 {
		return nil, ErrCreateFailed
	}
	Logger().Debug("syphon: OpenGL server started", "name", name)
	return &OpenGLServer{api: a, name: name, h: h}, nil
}

// Name returns the name the server was created with.
func (s *OpenGLServer) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// HasClients reports whether any client is connected right now. Publishing
// when no client listens wastes GPU work, so callers may skip rendering
// while this is false.
func (s *OpenGLServer) HasClients() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.api.GLServerHasClients(s.h)
}

// Description returns an owned description of this server, or nil after
// Close. The caller must close it.
func (s *OpenGLServer) Description() *ServerDescription {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	h := s.api.GLServerDescription(s.h)
	if h == 0 {
		return nil
	}
	return ownedDescription(s.api, h)
}

// PublishFrameTexture publishes a region of an OpenGL texture as the
// server's next frame. tex is the GL texture name and target its GL texture
// target; textureSize is the full size of the texture and region the part
// of it to publish. flipped marks content stored bottom-up.
//
// The texture must stay valid until the call returns. A zero tex is a
// logged no-op, as is publishing after Stop or Close.
func (s *OpenGLServer) PublishFrameTexture(tex, target uint32, region Rect, textureSize Size, flipped bool) {
	if s == nil {
		return
	}
	if tex == 0 {
		Logger().Warn("syphon: publish skipped, zero texture", "server", s.name)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.stopped {
		Logger().Warn("syphon: publish skipped, server stopped", "server", s.name)
		return
	}
	s.api.GLServerPublish(s.h, tex, target,
		region.X, region.Y, region.W, region.H,
		textureSize.W, textureSize.H, flipped)
}

// BindToDrawFrame binds the server's own frame surface as the current
// framebuffer so the caller can render straight into it, avoiding a copy.
// It reports whether the bind succeeded; pair every successful bind with
// UnbindAndPublish.
func (s *OpenGLServer) BindToDrawFrame(size Size) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.stopped {
		return false
	}
	return s.api.GLServerBindToDrawFrame(s.h, size.W, size.H)
}

// UnbindAndPublish restores the previous framebuffer and publishes whatever
// was drawn since the matching BindToDrawFrame.
func (s *OpenGLServer) UnbindAndPublish() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.stopped {
		return
	}
	s.api.GLServerUnbindAndPublish(s.h)
}

// Stop withdraws the server from the directory and disconnects its clients.
// Stop is idempotent; the native object stays alive until Close.
func (s *OpenGLServer) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *OpenGLServer) stopLocked() {
	if s.stopped || s.closed {
		return
	}
	s.stopped = true
	s.api.GLServerStop(s.h)
	Logger().Debug("syphon: OpenGL server stopped", "name", s.name)
}

// Close stops the server if needed and releases the native object. Close is
// idempotent and always returns nil.
func (s *OpenGLServer) Close() error {
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
	s.api.GLServerRelease(s.h)
	s.h = 0
	return nil
}
