package syphon

import "testing"

func takeGLImage(t *testing.T) *OpenGLImage {
	t.Helper()
	f := installFake(t)
	id := f.AddServer("Scene A", "VJApp")
	f.Publish(id, 9, 128, 96)

	client, err := NewOpenGLClient(SharedDirectory().At(0), 0xFACE, nil, nil)
	if err != nil {
		t.Fatalf("NewOpenGLClient() = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	img := client.FrameImage()
	if img == nil {
		t.Fatal("FrameImage() = nil after publish")
	}
	return img
}

func TestOpenGLImageQueries(t *testing.T) {
	img := takeGLImage(t)
	t.Cleanup(func() { img.Close() })

	if got := img.TextureName(); got != 9 {
		t.Errorf("TextureName() = %d, want 9", got)
	}
	if got := img.TextureSize(); got != (Size{W: 128, H: 96}) {
		t.Errorf("TextureSize() = %v, want {128 96}", got)
	}
}

func TestOpenGLImageCloseIdempotent(t *testing.T) {
	img := takeGLImage(t)

	if err := img.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := img.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if got := img.TextureName(); got != 0 {
		t.Errorf("TextureName() = %d after Close, want 0", got)
	}
	if got := img.TextureSize(); got != (Size{}) {
		t.Errorf("TextureSize() = %v after Close, want zero", got)
	}
}

func TestOpenGLImageNilReceiver(t *testing.T) {
	var img *OpenGLImage

	if img.TextureName() != 0 {
		t.Error("nil TextureName() != 0")
	}
	if img.TextureSize() != (Size{}) {
		t.Error("nil TextureSize() != zero")
	}
	if err := img.Close(); err != nil {
		t.Errorf("nil Close() = %v, want nil", err)
	}
}
