package syphon

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestMetalClientReceivesFrames(t *testing.T) {
	f := installFake(t)

	server, err := NewMetalServer("Scene M", 0xD11CE, nil)
	if err != nil {
		t.Fatalf("NewMetalServer() = %v", err)
	}
	t.Cleanup(func() { server.Close() })

	notify := make(chan struct{}, 8)
	client, err := NewMetalClient(SharedDirectory().At(0), 0xD11CE, nil, func() {
		notify <- struct{}{}
	})
	if err != nil {
		t.Fatalf("NewMetalClient() = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	if !client.IsValid() {
		t.Fatal("IsValid() = false against a running server")
	}
	if client.FrameImage() != nil {
		t.Error("FrameImage() != nil before any publish")
	}

	server.PublishFrameTexture(0xFEED, 0xB0F, FullRect(Size{W: 128, H: 72}), false)
	waitSignal(t, notify, "frame notification")

	if !client.HasNewFrame() {
		t.Fatal("HasNewFrame() = false after publish")
	}
	tex := client.FrameImage()
	if tex == nil {
		t.Fatal("FrameImage() = nil after publish")
	}
	if got := tex.Handle(); got != 0xFEED {
		t.Errorf("Handle() = %#x, want 0xfeed", got)
	}
	if client.HasNewFrame() {
		t.Error("HasNewFrame() = true after the frame was taken")
	}
	if err := tex.Close(); err != nil {
		t.Fatalf("texture Close() = %v", err)
	}

	if err := client.Close(); err != nil {
		t.Fatalf("client Close() = %v", err)
	}
	if err := server.Close(); err != nil {
		t.Fatalf("server Close() = %v", err)
	}
	st := f.Stats()
	if st.MetalClients != 0 || st.MetalTextures != 0 || st.MetalServers != 0 {
		t.Errorf("live objects = %d clients, %d textures, %d servers, want 0 each",
			st.MetalClients, st.MetalTextures, st.MetalServers)
	}
	if st.Misuses != 0 {
		t.Errorf("misuses = %d, want 0", st.Misuses)
	}
}

func TestMetalClientCreateErrors(t *testing.T) {
	f := installFake(t)
	f.AddServer("Scene M", "VJApp")
	desc := SharedDirectory().At(0)

	if _, err := NewMetalClient(desc, 0, nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("zero device error = %v, want ErrNilDevice", err)
	}
	if _, err := NewMetalClient(nil, 0xD11CE, nil, nil); !errors.Is(err, ErrNilDescription) {
		t.Errorf("nil description error = %v, want ErrNilDescription", err)
	}

	released := desc.Clone()
	if err := released.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if _, err := NewMetalClient(released, 0xD11CE, nil, nil); !errors.Is(err, ErrNilDescription) {
		t.Errorf("released description error = %v, want ErrNilDescription", err)
	}

	f.SetFailCreates(true)
	if _, err := NewMetalClient(desc, 0xD11CE, nil, nil); !errors.Is(err, ErrCreateFailed) {
		t.Errorf("failed create error = %v, want ErrCreateFailed", err)
	}
}

func TestMetalClientRemotePublish(t *testing.T) {
	f := installFake(t)
	id := f.AddServer("Scene M", "VJApp")

	notify := make(chan struct{}, 8)
	client, err := NewMetalClient(SharedDirectory().At(0), 0xD11CE, nil, func() {
		notify <- struct{}{}
	})
	if err != nil {
		t.Fatalf("NewMetalClient() = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	f.Publish(id, 5, 256, 144)
	waitSignal(t, notify, "frame notification")

	tex := client.FrameImage()
	if tex == nil {
		t.Fatal("FrameImage() = nil after publish")
	}
	t.Cleanup(func() { tex.Close() })
	if tex.Handle() == 0 {
		t.Error("Handle() = 0 for a received frame")
	}
}

func TestMetalClientStopSilencesHandler(t *testing.T) {
	f := installFake(t)
	id := f.AddServer("Scene M", "VJApp")

	var fired atomic.Int32
	notify := make(chan struct{}, 8)
	client, err := NewMetalClient(SharedDirectory().At(0), 0xD11CE, nil, func() {
		fired.Add(1)
		notify <- struct{}{}
	})
	if err != nil {
		t.Fatalf("NewMetalClient() = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	f.Publish(id, 5, 32, 32)
	waitSignal(t, notify, "frame notification")

	client.Stop()
	if client.IsValid() {
		t.Error("IsValid() = true after Stop")
	}
	f.Publish(id, 6, 32, 32)
	if got := fired.Load(); got != 1 {
		t.Errorf("handler fired %d times, want 1", got)
	}

	client.Stop()
	if got := fired.Load(); got != 1 {
		t.Errorf("handler fired %d times after repeated Stop, want 1", got)
	}
}

func TestMetalClientNilReceiver(t *testing.T) {
	var client *MetalClient

	if client.IsValid() {
		t.Error("nil IsValid() = true")
	}
	if client.HasNewFrame() {
		t.Error("nil HasNewFrame() = true")
	}
	if client.FrameImage() != nil {
		t.Error("nil FrameImage() != nil")
	}
	client.Stop()
	if err := client.Close(); err != nil {
		t.Errorf("nil Close() = %v, want nil", err)
	}
}
