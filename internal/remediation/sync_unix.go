//go:build unix

package remediation

import "golang.org/x/sys/unix"

func syncFilesystems() error {
	unix.Sync()
	return nil
}
