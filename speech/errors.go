// SPDX-License-Identifier: EPL-2.0

package speech

import "errors"

var (
	// ErrInvalidArgument is wrapped by every argument validation failure.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedWindowType is returned for window types missing from the registry.
	ErrUnsupportedWindowType = errors.New("unsupported window type")
)
