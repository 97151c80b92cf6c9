//go:build linux

package benchhash

import "golang.org/x/sys/unix"

// fadviseSequential hints to the kernel that the corpus file will be read
// sequentially. Best-effort: errors are silently ignored.
func fadviseSequential(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_SEQUENTIAL)
}

// madviseSequential asks the kernel for aggressive read-ahead on a mapping
// that is scanned front to back once.
func madviseSequential(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
}
