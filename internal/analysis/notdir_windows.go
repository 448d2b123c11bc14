//go:build windows

package analysis

import "syscall"

var notDirErr error = syscall.ERROR_PATH_NOT_FOUND
