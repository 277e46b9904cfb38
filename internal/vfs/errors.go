package vfs

import "syscall"

// errIsDir aligns MemFS failures with the POSIX error OSFS would return.
var errIsDir = syscall.EISDIR
