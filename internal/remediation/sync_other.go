//go:build !unix

package remediation

import "errors"

func syncFilesystems() error {
	return errors.ErrUnsupported
}
