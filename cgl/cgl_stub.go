// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !darwin || !cgo

package cgl

// Available reports whether CGL can be used in this build.
func Available() bool { return false }

// CreateHeadlessContext returns [ErrUnavailable] on this platform.
func CreateHeadlessContext() (Context, error) { return 0, ErrUnavailable }

// DestroyContext is a no-op on this platform.
func DestroyContext(ctx Context) {}

// MakeCurrent returns [ErrUnavailable] on this platform.
func MakeCurrent(ctx Context) error { return ErrUnavailable }

// CreateTextureRectangleRGBA8 returns [ErrUnavailable] on this platform.
func CreateTextureRectangleRGBA8(width, height int, rgba []byte) (uint32, error) {
	return 0, ErrUnavailable
}

// ReadTextureRectangleRGBA8 returns nil on this platform.
func ReadTextureRectangleRGBA8(tex uint32, width, height int) []byte { return nil }

// DeleteTexture is a no-op on this platform.
func DeleteTexture(tex uint32) {}
