//go:build !debug_rawptr

package ptr

const debugChecks = false
