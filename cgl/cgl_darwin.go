// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin && cgo

package cgl

/*
#cgo CFLAGS: -Wno-deprecated-declarations
#cgo LDFLAGS: -framework OpenGL

#include <stdlib.h>
#include <OpenGL/OpenGL.h>
#include <OpenGL/gl.h>

static CGLContextObj cgl_create_headless_context(void) {
	CGLPixelFormatAttribute attrs[] = {
		kCGLPFAAccelerated,
		kCGLPFAAllowOfflineRenderers,
		(CGLPixelFormatAttribute)0,
	};
	CGLPixelFormatObj pix = NULL;
	GLint npix = 0;
	if (CGLChoosePixelFormat(attrs, &pix, &npix) != kCGLNoError || pix == NULL) {
		return NULL;
	}
	CGLContextObj ctx = NULL;
	CGLError err = CGLCreateContext(pix, NULL, &ctx);
	CGLReleasePixelFormat(pix);
	if (err != kCGLNoError) {
		return NULL;
	}
	return ctx;
}

static GLuint cgl_create_texture_rectangle_rgba8(size_t width, size_t height, const unsigned char *rgba) {
	GLuint tex = 0;
	glGenTextures(1, &tex);
	if (tex == 0) {
		return 0;
	}
	glBindTexture(GL_TEXTURE_RECTANGLE_ARB, tex);
	glTexParameteri(GL_TEXTURE_RECTANGLE_ARB, GL_TEXTURE_MIN_FILTER, GL_NEAREST);
	glTexParameteri(GL_TEXTURE_RECTANGLE_ARB, GL_TEXTURE_MAG_FILTER, GL_NEAREST);
	glTexImage2D(GL_TEXTURE_RECTANGLE_ARB, 0, GL_RGBA8, (GLsizei)width, (GLsizei)height,
		0, GL_RGBA, GL_UNSIGNED_BYTE, rgba);
	glBindTexture(GL_TEXTURE_RECTANGLE_ARB, 0);
	glFlush();
	return tex;
}

static void cgl_read_texture_rectangle_rgba8(GLuint tex, unsigned char *out) {
	glBindTexture(GL_TEXTURE_RECTANGLE_ARB, tex);
	glGetTexImage(GL_TEXTURE_RECTANGLE_ARB, 0, GL_RGBA, GL_UNSIGNED_BYTE, out);
	glBindTexture(GL_TEXTURE_RECTANGLE_ARB, 0);
}

static void cgl_delete_texture(GLuint tex) {
	glDeleteTextures(1, &tex);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Available reports whether CGL can be used in this build.
func Available() bool { return true }

// CreateHeadlessContext creates an OpenGL context with no drawable attached.
// The caller must destroy it with DestroyContext.
func CreateHeadlessContext() (Context, error) {
	ctx := C.cgl_create_headless_context()
	if ctx == nil {
		return 0, ErrCreateFailed
	}
	return Context(uintptr(unsafe.Pointer(ctx))), nil
}

// DestroyContext releases a context made with CreateHeadlessContext. It is
// detached first if it is current. A zero context is a no-op.
func DestroyContext(ctx Context) {
	if ctx == 0 {
		return
	}
	obj := C.CGLContextObj(unsafe.Pointer(ctx))
	if C.CGLGetCurrentContext() == obj {
		C.CGLSetCurrentContext(nil)
	}
	C.CGLDestroyContext(obj)
}

// MakeCurrent binds the context to the calling thread. Callers doing GL work
// should pin the goroutine with runtime.LockOSThread first.
func MakeCurrent(ctx Context) error {
	err := C.CGLSetCurrentContext(C.CGLContextObj(unsafe.Pointer(ctx)))
	if err != C.kCGLNoError {
		return fmt.Errorf("cgl: make current: %s", C.GoString(C.CGLErrorString(err)))
	}
	return nil
}

// CreateTextureRectangleRGBA8 allocates a GL_TEXTURE_RECTANGLE texture with
// RGBA8 storage in the current context. rgba, when non-nil, must hold
// width*height*4 bytes of tightly packed pixels; nil leaves the texture
// uninitialized. The caller must delete the texture with DeleteTexture.
func CreateTextureRectangleRGBA8(width, height int, rgba []byte) (uint32, error) {
	if width <= 0 || height <= 0 {
		return 0, ErrCreateFailed
	}
	var data unsafe.Pointer
	if rgba != nil {
		if len(rgba) < width*height*4 {
			return 0, fmt.Errorf("cgl: pixel buffer holds %d bytes, need %d", len(rgba), width*height*4)
		}
		data = unsafe.Pointer(&rgba[0])
	}
	tex := C.cgl_create_texture_rectangle_rgba8(C.size_t(width), C.size_t(height), (*C.uchar)(data))
	if tex == 0 {
		return 0, ErrCreateFailed
	}
	return uint32(tex), nil
}

// ReadTextureRectangleRGBA8 reads a rectangle texture back as tightly packed
// RGBA8 pixels. The texture's context must be current.
func ReadTextureRectangleRGBA8(tex uint32, width, height int) []byte {
	if tex == 0 || width <= 0 || height <= 0 {
		return nil
	}
	out := make([]byte, width*height*4)
	C.cgl_read_texture_rectangle_rgba8(C.GLuint(tex), (*C.uchar)(unsafe.Pointer(&out[0])))
	return out
}

// DeleteTexture deletes a texture made with CreateTextureRectangleRGBA8. A
// zero texture is a no-op.
func DeleteTexture(tex uint32) {
	if tex == 0 {
		return
	}
	C.cgl_delete_texture(C.GLuint(tex))
}
