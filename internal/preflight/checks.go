package preflight

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"mkcdda/internal/cdda"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	fail := func(detail string) Result {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s)", path, detail), Kind: cdda.OutputWriteFailed}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fail("does not exist")
		}
		return fail(fmt.Sprintf("stat: %v", err))
	}
	if !info.IsDir() {
		return fail("is not a directory")
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fail(fmt.Sprintf("insufficient permissions: %v", err))
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies that the filesystem holding path has at least need
// bytes available to an unprivileged writer.
func CheckFreeSpace(name, path string, need int64) Result {
	available, err := availableBytes(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err), Kind: cdda.OutputWriteFailed}
	}
	if need < 0 {
		need = 0
	}
	if uint64(need) > available {
		return Result{
			Name:   name,
			Detail: fmt.Sprintf("need %s, only %s available", humanize.IBytes(uint64(need)), humanize.IBytes(available)),
			Kind:   cdda.ResourceExhausted,
		}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s available, %s needed", humanize.IBytes(available), humanize.IBytes(uint64(need))),
	}
}

func availableBytes(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return st.Bavail * uint64(st.Bsize), nil
}
