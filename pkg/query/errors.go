// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package query

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned by New when no API key is configured.
// The engine cannot be constructed without a credential, even though it may
// end up running in fallback mode.
var ErrMissingCredential = errors.New("query: API key is required")

// ErrNoData is returned when a question arrives before any dataset has
// been loaded.
var ErrNoData = errors.New("query: no data loaded, upload a file first")

// ErrUnresolved is returned if no fallback branch produces a result.
// The default-preview branch matches everything, so this is defensive and
// should never be observed.
var ErrUnresolved = errors.New("query: could not resolve question")

// LoadError wraps a spreadsheet parse failure.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading file: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
