// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package concept

import "errors"

// ErrMarkersUnavailable indicates the markers resource responded with a
// non-200 status. The session the map was built under may have expired, or
// the map was requested before the remote finished writing it. Callers should
// treat this as a failed run, not as "still processing".
var ErrMarkersUnavailable = errors.New("markers resource unavailable")

// ResourceError is the user-facing failure for resource resolution problems:
// a configured folder that does not exist on the remote service, or a project
// URL that can no longer be fetched. It is never retried internally.
type ResourceError struct {
	// Msg is a human-readable explanation of what could not be resolved.
	Msg string

	// Err is the underlying transport or decode failure, when there is one.
	Err error
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *ResourceError) Unwrap() error {
	return e.Err
}
