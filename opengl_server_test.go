package syphon

import (
	"errors"
	"testing"
)

func TestOpenGLServerLifecycle(t *testing.T) {
	f := installFake(t)

	server, err := NewOpenGLServer("Scene A", 0xC0DE, nil)
	if err != nil {
		t.Fatalf("NewOpenGLServer() = %v", err)
	}
	if got := server.Name(); got != "Scene A" {
		t.Errorf("Name() = %q, want %q", got, "Scene A")
	}

	// A running server advertises itself in the shared directory.
	dir := SharedDirectory()
	if got := dir.Count(); got != 1 {
		t.Fatalf("directory Count() = %d, want 1", got)
	}
	if name, ok := dir.At(0).Name(); !ok || name != "Scene A" {
		t.Errorf("directory Name() = %q, %v, want %q, true", name, ok, "Scene A")
	}

	desc := server.Description()
	if desc == nil {
		t.Fatal("Description() = nil")
	}
	if !desc.Owned() {
		t.Error("Description() should return an owned description")
	}
	wantUUID, _ := dir.At(0).UUID()
	if got, ok := desc.UUID(); !ok || got != wantUUID {
		t.Errorf("Description().UUID() = %q, %v, want %q, true", got, ok, wantUUID)
	}
	if err := desc.Close(); err != nil {
		t.Fatalf("description Close() = %v", err)
	}

	if err := server.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if got := dir.Count(); got != 0 {
		t.Errorf("directory Count() = %d after Close, want 0", got)
	}

	st := f.Stats()
	if st.GLServers != 0 {
		t.Errorf("live servers = %d, want 0", st.GLServers)
	}
	if st.Descriptions != 0 {
		t.Errorf("descriptions still referenced = %d, want 0", st.Descriptions)
	}
	if st.Retains != st.Releases {
		t.Errorf("retains = %d, releases = %d, want balanced", st.Retains, st.Releases)
	}
	if st.Misuses != 0 {
		t.Errorf("misuses = %d, want 0", st.Misuses)
	}
}

func TestOpenGLServerCreateErrors(t *testing.T) {
	f := installFake(t)

	if _, err := NewOpenGLServer("name", 0, nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("zero context error = %v, want ErrNilContext", err)
	}

	f.SetFailCreates(true)
	if _, err := NewOpenGLServer("name", 0xC0DE, nil); !errors.Is(err, ErrCreateFailed) {
		t.Errorf("failed create error = %v, want ErrCreateFailed", err)
	}
}

func TestOpenGLServerPublishZeroTexture(t *testing.T) {
	f := installFake(t)

	server, err := NewOpenGLServer("Scene A", 0xC0DE, nil)
	if err != nil {
		t.Fatalf("NewOpenGLServer() = %v", err)
	}
	t.Cleanup(func() { server.Close() })

	before := f.Stats().Calls
	server.PublishFrameTexture(0, TextureTargetRectangle, FullRect(Size{W: 64, H: 64}), Size{W: 64, H: 64}, false)
	if got := f.Stats().Calls; got != before {
		t.Errorf("native calls = %d after zero-texture publish, want %d", got, before)
	}
}

func TestOpenGLServerPublishAfterStop(t *testing.T) {
	f := installFake(t)

	server, err := NewOpenGLServer("Scene A", 0xC0DE, nil)
	if err != nil {
		t.Fatalf("NewOpenGLServer() = %v", err)
	}
	t.Cleanup(func() { server.Close() })
	server.Stop()

	before := f.Stats().Calls
	server.PublishFrameTexture(7, TextureTargetRectangle, FullRect(Size{W: 64, H: 64}), Size{W: 64, H: 64}, false)
	if server.BindToDrawFrame(Size{W: 64, H: 64}) {
		t.Error("BindToDrawFrame() = true on a stopped server")
	}
	server.UnbindAndPublish()
	if got := f.Stats().Calls; got != before {
		t.Errorf("native calls = %d after publishing on stopped server, want %d", got, before)
	}
	if got := f.Stats().Misuses; got != 0 {
		t.Errorf("misuses = %d, want 0", got)
	}
}

func TestOpenGLServerStopIdempotent(t *testing.T) {
	f := installFake(t)

	server, err := NewOpenGLServer("Scene A", 0xC0DE, nil)
	if err != nil {
		t.Fatalf("NewOpenGLServer() = %v", err)
	}
	t.Cleanup(func() { server.Close() })

	server.Stop()
	if got := SharedDirectory().Count(); got != 0 {
		t.Errorf("directory Count() = %d after Stop, want 0", got)
	}

	before := f.Stats().Calls
	server.Stop()
	if got := f.Stats().Calls; got != before {
		t.Errorf("second Stop() touched the native layer, calls %d -> %d", before, got)
	}
}

func TestOpenGLServerCloseIdempotent(t *testing.T) {
	f := installFake(t)

	server, err := NewOpenGLServer("Scene A", 0xC0DE, nil)
	if err != nil {
		t.Fatalf("NewOpenGLServer() = %v", err)
	}
	if err := server.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := server.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if got := f.Stats().Misuses; got != 0 {
		t.Errorf("misuses = %d, want 0", got)
	}

	// Queries degrade to empty results after Close.
	if server.HasClients() {
		t.Error("HasClients() = true after Close")
	}
	if server.Description() != nil {
		t.Error("Description() != nil after Close")
	}
}

func TestOpenGLServerBindToDrawFrame(t *testing.T) {
	f := installFake(t)

	server, err := NewOpenGLServer("Scene A", 0xC0DE, nil)
	if err != nil {
		t.Fatalf("NewOpenGLServer() = %v", err)
	}
	t.Cleanup(func() { server.Close() })

	if !server.BindToDrawFrame(Size{W: 640, H: 480}) {
		t.Fatal("BindToDrawFrame() = false")
	}
	server.UnbindAndPublish()
	if got := f.Stats().Misuses; got != 0 {
		t.Errorf("misuses = %d, want 0", got)
	}
}

func TestOpenGLServerHasClients(t *testing.T) {
	installFake(t)

	server, err := NewOpenGLServer("Scene A", 0xC0DE, nil)
	if err != nil {
		t.Fatalf("NewOpenGLServer() = %v", err)
	}
	t.Cleanup(func() { server.Close() })

	if server.HasClients() {
		t.Error("HasClients() = true with no clients")
	}

	client, err := NewOpenGLClient(SharedDirectory().At(0), 0xFACE, nil, nil)
	if err != nil {
		t.Fatalf("NewOpenGLClient() = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	if !server.HasClients() {
		t.Error("HasClients() = false with a connected client")
	}
	client.Stop()
	if server.HasClients() {
		t.Error("HasClients() = true after the client stopped")
	}
}

func TestOpenGLServerNilReceiver(t *testing.T) {
	var server *OpenGLServer

	if server.Name() != "" {
		t.Error("nil Name() != \"\"")
	}
	if server.HasClients() {
		t.Error("nil HasClients() = true")
	}
	if server.Description() != nil {
		t.Error("nil Description() != nil")
	}
	server.PublishFrameTexture(1, TextureTargetRectangle, Rect{}, Size{}, false)
	if server.BindToDrawFrame(Size{}) {
		t.Error("nil BindToDrawFrame() = true")
	}
	server.UnbindAndPublish()
	server.Stop()
	if err := server.Close(); err != nil {
		t.Errorf("nil Close() = %v, want nil", err)
	}
}
