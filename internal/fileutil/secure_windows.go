//go:build windows

package fileutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
)

func ownerOnly(perm os.FileMode) bool {
	return perm&0077 == 0
}

// restrict replaces the DACL on path with one granting GENERIC_ALL to the
// current user only. Directories pass the ACE on to their children.
func restrict(path string) error {
	user, err := windows.GetCurrentProcessToken().GetTokenUser()
	if err != nil {
		return fmt.Errorf("current user SID for %s: %w", path, err)
	}

	inherit := uint32(windows.NO_INHERITANCE)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		inherit = windows.CONTAINER_INHERIT_ACE | windows.OBJECT_INHERIT_ACE
	}
	acl, err := windows.ACLFromEntries([]windows.EXPLICIT_ACCESS{{
		AccessPermissions: windows.GENERIC_ALL,
		AccessMode:        windows.SET_ACCESS,
		Inheritance:       inherit,
		Trustee: windows.TRUSTEE{
			TrusteeForm:  windows.TRUSTEE_IS_SID,
			TrusteeType:  windows.TRUSTEE_IS_USER,
			TrusteeValue: windows.TrusteeValueFromSID(user.User.Sid),
		},
	}}, nil)
	if err != nil {
		return fmt.Errorf("build ACL for %s: %w", path, err)
	}

	info := windows.DACL_SECURITY_INFORMATION | windows.PROTECTED_DACL_SECURITY_INFORMATION
	if err := windows.SetNamedSecurityInfo(path, windows.SE_FILE_OBJECT,
		windows.SECURITY_INFORMATION(info), nil, nil, acl, nil); err != nil {
		return fmt.Errorf("set DACL on %s: %w", path, err)
	}
	return nil
}

// restrictBestEffort logs DACL failures; the object already has perm.
func restrictBestEffort(path string) {
	if err := restrict(path); err != nil {
		slog.Warn("restrict permissions", "path", path, "error", err)
	}
}

// SecureMkdirAll creates path and any missing parents with perm. Owner-only
// modes restrict every directory it created.
func SecureMkdirAll(path string, perm os.FileMode) error {
	var created []string
	if ownerOnly(perm) {
		for p := filepath.Clean(path); p != "." && p != filepath.Dir(p); p = filepath.Dir(p) {
			if _, err := os.Stat(p); err == nil {
				break
			}
			created = append(created, p)
		}
	}
	if err := os.MkdirAll(path, perm); err != nil {
		return err
	}
	for _, dir := range created {
		restrictBestEffort(dir)
	}
	return nil
}

// SecureOpenFile opens path with flag, creating it with perm. Owner-only
// modes with O_CREATE restrict the file.
func SecureOpenFile(path string, flag int, perm os.FileMode) (*os.File, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}
	if ownerOnly(perm) && flag&os.O_CREATE != 0 {
		restrictBestEffort(path)
	}
	return f, nil
}
