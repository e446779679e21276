// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin && cgo

package native

/*
#cgo CFLAGS: -x objective-c -fobjc-arc -Wno-deprecated-declarations
#cgo LDFLAGS: -framework Syphon -framework Foundation -framework OpenGL -framework IOSurface -framework Metal -framework CoreFoundation -framework QuartzCore -framework AppKit

#include <stdlib.h>
#include "syphon_glue.h"

extern void goSyphonNewFrame(void *userdata);

// The callback parameter cannot be passed from Go, so these wrappers hand the
// exported trampoline to the glue. A NULL userdata means no handler was set.
static void *bridge_opengl_client_create(void *description, void *context, void *userdata) {
	return syphon_opengl_client_create(description, (CGLContextObj)context, NULL,
		userdata != NULL ? goSyphonNewFrame : NULL, userdata);
}

static void *bridge_metal_client_create(void *description, void *device, void *userdata) {
	return syphon_metal_client_create(description, device, NULL,
		userdata != NULL ? goSyphonNewFrame : NULL, userdata);
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/mattn/go-pointer"
)

// framework implements API on top of Syphon.framework. A Handle is the
// bridged Objective-C object pointer itself; handles never refer to Go
// memory, so storing them as integers is safe across garbage collections.
//
// Options maps are reserved and not forwarded; the native calls always
// receive a NULL options dictionary.
type framework struct{}

var _ API = framework{}

// Default returns the binding backed by Syphon.framework.
func Default() API { return framework{} }

// Frame handlers must stay reachable for as long as the native client can
// invoke them. pins holds one reference per client, dropped on release.
var (
	pinMu sync.Mutex
	pins  = map[Handle]unsafe.Pointer{}
)

func pinHandler(client Handle, userdata unsafe.Pointer) Handle {
	if userdata == nil {
		return client
	}
	if client == 0 {
		pointer.Unref(userdata)
		return 0
	}
	pinMu.Lock()
	pins[client] = userdata
	pinMu.Unlock()
	return client
}

func unpinHandler(client Handle) {
	pinMu.Lock()
	userdata, ok := pins[client]
	if ok {
		delete(pins, client)
	}
	pinMu.Unlock()
	if ok {
		pointer.Unref(userdata)
	}
}

func ref(h Handle) unsafe.Pointer      { return unsafe.Pointer(h) }
func handleOf(p unsafe.Pointer) Handle { return Handle(uintptr(p)) }

// goStringCopy converts a malloc'd C string into a Go string and frees it.
// A NULL input reports absence.
func goStringCopy(c *C.char) (string, bool) {
	if c == nil {
		return "", false
	}
	defer C.free(unsafe.Pointer(c))
	return C.GoString(c), true
}

func (framework) Available() bool { return true }

func (framework) DirectoryShared() Handle {
	return handleOf(C.syphon_server_directory_shared())
}

func (framework) DirectoryServerCount(dir Handle) int {
	if dir == 0 {
		return 0
	}
	return int(C.syphon_server_directory_servers_count(ref(dir)))
}

func (framework) DirectoryServerAt(dir Handle, index int) Handle {
	if dir == 0 || index < 0 {
		return 0
	}
	return handleOf(C.syphon_server_directory_server_at_index(ref(dir), C.size_t(index)))
}

func (framework) DescriptionUUID(desc Handle) (string, bool) {
	return goStringCopy(C.syphon_server_description_copy_uuid(ref(desc)))
}

func (framework) DescriptionName(desc Handle) (string, bool) {
	return goStringCopy(C.syphon_server_description_copy_name(ref(desc)))
}

func (framework) DescriptionAppName(desc Handle) (string, bool) {
	return goStringCopy(C.syphon_server_description_copy_app_name(ref(desc)))
}

func (framework) DescriptionRetain(desc Handle)  { C.syphon_server_description_retain(ref(desc)) }
func (framework) DescriptionRelease(desc Handle) { C.syphon_server_description_release(ref(desc)) }

func (framework) GLServerCreate(name string, context uintptr, options map[string]string) Handle {
	var cname *C.char
	if name != "" {
		cname = C.CString(name)
		defer C.free(unsafe.Pointer(cname))
	}
	return handleOf(C.syphon_opengl_server_create(cname, C.CGLContextObj(unsafe.Pointer(context)), nil))
}

func (framework) GLServerHasClients(server Handle) bool {
	return bool(C.syphon_opengl_server_has_clients(ref(server)))
}

func (framework) GLServerDescription(server Handle) Handle {
	return handleOf(C.syphon_opengl_server_server_description(ref(server)))
}

func (framework) GLServerPublish(server Handle, tex, target uint32, x, y, w, h, texW, texH float64, flipped bool) {
	C.syphon_opengl_server_publish_frame(ref(server), C.GLuint(tex), C.GLenum(target),
		C.double(x), C.double(y), C.double(w), C.double(h),
		C.double(texW), C.double(texH), C.bool(flipped))
}

func (framework) GLServerBindToDrawFrame(server Handle, w, h float64) bool {
	return bool(C.syphon_opengl_server_bind_to_draw_frame(ref(server), C.double(w), C.double(h)))
}

func (framework) GLServerUnbindAndPublish(server Handle) {
	C.syphon_opengl_server_unbind_and_publish(ref(server))
}

func (framework) GLServerStop(server Handle)    { C.syphon_opengl_server_stop(ref(server)) }
func (framework) GLServerRelease(server Handle) { C.syphon_opengl_server_release(ref(server)) }

func (framework) GLClientCreate(desc Handle, context uintptr, options map[string]string, onFrame func()) Handle {
	var userdata unsafe.Pointer
	if onFrame != nil {
		userdata = pointer.Save(onFrame)
	}
	client := handleOf(C.bridge_opengl_client_create(ref(desc), unsafe.Pointer(context), userdata))
	return pinHandler(client, userdata)
}

func (framework) GLClientIsValid(client Handle) bool {
	return bool(C.syphon_opengl_client_is_valid(ref(client)))
}

func (framework) GLClientHasNewFrame(client Handle) bool {
	return bool(C.syphon_opengl_client_has_new_frame(ref(client)))
}

func (framework) GLClientFrameImage(client Handle) Handle {
	return handleOf(C.syphon_opengl_client_new_frame_image(ref(client)))
}

func (framework) GLClientStop(client Handle) { C.syphon_opengl_client_stop(ref(client)) }

func (framework) GLClientRelease(client Handle) {
	C.syphon_opengl_client_release(ref(client))
	unpinHandler(client)
}

func (framework) GLImageTextureName(image Handle) uint32 {
	return uint32(C.syphon_opengl_image_texture_name(ref(image)))
}

func (framework) GLImageTextureSize(image Handle) (w, h float64) {
	var cw, ch C.double
	C.syphon_opengl_image_texture_size(ref(image), &cw, &ch)
	return float64(cw), float64(ch)
}

func (framework) GLImageRelease(image Handle) { C.syphon_opengl_image_release(ref(image)) }

func (framework) MetalServerCreate(name string, device uintptr, options map[string]string) Handle {
	var cname *C.char
	if name != "" {
		cname = C.CString(name)
		defer C.free(unsafe.Pointer(cname))
	}
	return handleOf(C.syphon_metal_server_create(cname, unsafe.Pointer(device), nil))
}

func (framework) MetalServerHasClients(server Handle) bool {
	return bool(C.syphon_metal_server_has_clients(ref(server)))
}

func (framework) MetalServerDescription(server Handle) Handle {
	return handleOf(C.syphon_metal_server_server_description(ref(server)))
}

func (framework) MetalServerPublish(server Handle, texture, commandBuffer uintptr, x, y, w, h float64, flipped bool) {
	C.syphon_metal_server_publish_frame(ref(server), unsafe.Pointer(texture), unsafe.Pointer(commandBuffer),
		C.double(x), C.double(y), C.double(w), C.double(h), C.bool(flipped))
}

func (framework) MetalServerFrameImage(server Handle) Handle {
	return handleOf(C.syphon_metal_server_new_frame_image(ref(server)))
}

func (framework) MetalServerStop(server Handle)    { C.syphon_metal_server_stop(ref(server)) }
func (framework) MetalServerRelease(server Handle) { C.syphon_metal_server_release(ref(server)) }

func (framework) MetalClientCreate(desc Handle, device uintptr, options map[string]string, onFrame func()) Handle {
	var userdata unsafe.Pointer
	if onFrame != nil {
		userdata = pointer.Save(onFrame)
	}
	client := handleOf(C.bridge_metal_client_create(ref(desc), unsafe.Pointer(device), userdata))
	return pinHandler(client, userdata)
}

func (framework) MetalClientIsValid(client Handle) bool {
	return bool(C.syphon_metal_client_is_valid(ref(client)))
}

func (framework) MetalClientHasNewFrame(client Handle) bool {
	return bool(C.syphon_metal_client_has_new_frame(ref(client)))
}

func (framework) MetalClientFrameImage(client Handle) Handle {
	return handleOf(C.syphon_metal_client_new_frame_image(ref(client)))
}

func (framework) MetalClientStop(client Handle) { C.syphon_metal_client_stop(ref(client)) }

func (framework) MetalClientRelease(client Handle) {
	C.syphon_metal_client_release(ref(client))
	unpinHandler(client)
}

func (framework) MetalTexturePointer(texture Handle) uintptr { return uintptr(texture) }

func (framework) MetalTextureRelease(texture Handle) { C.syphon_metal_texture_release(ref(texture)) }
