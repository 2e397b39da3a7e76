// File: internal/affinity/affinity.go
// Package affinity pins the calling OS thread to a CPU core.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-specific implementations live in affinity_linux.go and
// affinity_other.go. Pinning is a best-effort soft-real-time optimization
// for the registry's background reaper (see registry.StartReaper), never a
// correctness requirement — callers must tolerate a no-op on platforms
// without native affinity support.
package affinity
