//go:build !linux

// File: internal/affinity/affinity_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package affinity

// PinCurrentThread is a no-op outside Linux; this package has no portable
// affinity API to fall back to, and pinning is strictly best-effort.
func PinCurrentThread(cpu int) error { return nil }
