//go:build !linux

package benchhash

// fadviseSequential is a no-op on non-Linux platforms.
// FADV_SEQUENTIAL is Linux-specific.
func fadviseSequential(fd int, offset, length int64) {}

func madviseSequential(data []byte) {}
