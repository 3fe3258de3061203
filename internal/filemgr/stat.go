package filemgr

import (
	"os"
	"syscall"
)

// osStat stats path via the OS, extracting (device, inode) from the
// platform-specific syscall.Stat_t the way the original's StatSysCallCache
// wraps ::stat. Returns ok=false for any stat failure (missing file,
// permission denied, etc.) without distinguishing the cause, matching
// the original's "treat any failure as ENOENT" policy.
func osStat(path string) (StatResult, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return StatResult{}, false
	}

	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return StatResult{
			Size:    info.Size(),
			Mode:    info.Mode(),
			ModTime: info.ModTime().Unix(),
		}, true
	}

	return StatResult{
		Device:  uint64(sys.Dev),
		Inode:   uint64(sys.Ino),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime().Unix(),
	}, true
}
