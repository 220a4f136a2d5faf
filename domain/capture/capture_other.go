//go:build !windows

package capture

import "fmt"

func newGDIScreen() (Screen, error) {
	return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, BackendGDI)
}
