//go:build !linux

package notify

import "errors"

func dial() (transport, error) {
	return nil, errors.New("desktop notifications need a D-Bus session")
}
