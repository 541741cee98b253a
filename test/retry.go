// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package test holds helpers shared by tests.
package test

import (
	"time"

	"github.com/pkg/errors"
)

// Retry calls fn every interval until it returns nil. Once timeout has passed
// the last error of fn is returned.
func Retry(fn func() error, interval, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		err := fn()
		if err == nil {
			return nil
		}
		left := time.Until(deadline)
		if left <= 0 {
			return errors.WithMessagef(err, "still failing after %v", timeout)
		}
		time.Sleep(min(interval, left))
	}
}
