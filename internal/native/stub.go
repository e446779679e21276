// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

// Unavailable is the API used when the framework is absent: every operation
// reports the documented empty result and touches no native state. It is the
// Default binding off macOS (and on macOS without cgo), and doubles as a
// zero-call baseline in tests.
//
// Unavailable is compiled on every platform, so behaviour that the root
// package documents for unsupported systems is testable anywhere.
type Unavailable struct{}

var _ API = Unavailable{}

func (Unavailable) Available() bool { return false }

func (Unavailable) DirectoryShared() Handle              { return 0 }
func (Unavailable) DirectoryServerCount(Handle) int      { return 0 }
func (Unavailable) DirectoryServerAt(Handle, int) Handle { return 0 }

func (Unavailable) DescriptionUUID(Handle) (string, bool)    { return "", false }
func (Unavailable) DescriptionName(Handle) (string, bool)    { return "", false }
func (Unavailable) DescriptionAppName(Handle) (string, bool) { return "", false }
func (Unavailable) DescriptionRetain(Handle)                 {}
func (Unavailable) DescriptionRelease(Handle)                {}

func (Unavailable) GLServerCreate(string, uintptr, map[string]string) Handle { return 0 }
func (Unavailable) GLServerHasClients(Handle) bool                           { return false }
func (Unavailable) GLServerDescription(Handle) Handle                        { return 0 }
func (Unavailable) GLServerPublish(Handle, uint32, uint32, float64, float64, float64, float64, float64, float64, bool) {
}
func (Unavailable) GLServerBindToDrawFrame(Handle, float64, float64) bool { return false }
func (Unavailable) GLServerUnbindAndPublish(Handle)                       {}
func (Unavailable) GLServerStop(Handle)                                   {}
func (Unavailable) GLServerRelease(Handle)                                {}

func (Unavailable) GLClientCreate(Handle, uintptr, map[string]string, func()) Handle { return 0 }
func (Unavailable) GLClientIsValid(Handle) bool                                      { return false }
func (Unavailable) GLClientHasNewFrame(Handle) bool                                  { return false }
func (Unavailable) GLClientFrameImage(Handle) Handle                                 { return 0 }
func (Unavailable) GLClientStop(Handle)                                              {}
func (Unavailable) GLClientRelease(Handle)                                           {}

func (Unavailable) GLImageTextureName(Handle) uint32             { return 0 }
func (Unavailable) GLImageTextureSize(Handle) (float64, float64) { return 0, 0 }
func (Unavailable) GLImageRelease(Handle)                        {}

func (Unavailable) MetalServerCreate(string, uintptr, map[string]string) Handle { return 0 }
func (Unavailable) MetalServerHasClients(Handle) bool                           { return false }
func (Unavailable) MetalServerDescription(Handle) Handle                        { return 0 }
func (Unavailable) MetalServerPublish(Handle, uintptr, uintptr, float64, float64, float64, float64, bool) {
}
func (Unavailable) MetalServerFrameImage(Handle) Handle { return 0 }
func (Unavailable) MetalServerStop(Handle)              {}
func (Unavailable) MetalServerRelease(Handle)           {}

func (Unavailable) MetalClientCreate(Handle, uintptr, map[string]string, func()) Handle { return 0 }
func (Unavailable) MetalClientIsValid(Handle) bool                                      { return false }
func (Unavailable) MetalClientHasNewFrame(Handle) bool                                  { return false }
func (Unavailable) MetalClientFrameImage(Handle) Handle                                 { return 0 }
func (Unavailable) MetalClientStop(Handle)                                              {}
func (Unavailable) MetalClientRelease(Handle)                                           {}

func (Unavailable) MetalTexturePointer(Handle) uintptr { return 0 }
func (Unavailable) MetalTextureRelease(Handle)         {}
