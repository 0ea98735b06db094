//go:build !windows

// Package fileutil creates the invc home directory, database directory and
// log file with owner-only permissions. On Unix these are plain os calls;
// on Windows owner-only modes also get a DACL limited to the current user.
package fileutil

import "os"

// SecureMkdirAll creates path and any missing parents with perm.
func SecureMkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// SecureOpenFile opens path with flag, creating it with perm.
func SecureOpenFile(path string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}
