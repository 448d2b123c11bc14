//go:build !windows

package analysis

import "syscall"

// A path component that is a regular file means the path does not exist as a folder.
var notDirErr error = syscall.ENOTDIR
