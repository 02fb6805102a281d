//go:build unix

package util

import (
	"golang.org/x/sys/unix"
)

// DiskUsage returns total, used, and free bytes for the filesystem at path.
func DiskUsage(path string) (total, used, free uint64, err error) {
	var st unix.Statfs_t
	if err = unix.Statfs(path, &st); err != nil {
		return
	}

	// Note: On some Linux systems Frsize is the "fundamental" block size.
	// unix.Statfs_t on Linux includes Frsize; on other UNIXes it doesn't.
	// To keep this file portable across UNIXes, we stick to Bsize here.
	bsize := uint64(st.Bsize)

	total = bsize * uint64(st.Blocks)
	free = bsize * uint64(st.Bavail) // space available to unprivileged user
	used = total - free
	return
}
