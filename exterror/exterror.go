/*

SPDX-Copyright: Copyright (c) project contributors
SPDX-License-Identifier: Apache-2.0

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and limitations under the License.

*/
package exterror

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// ExtError attaches the upstream HTTP status to an error so callers
// can decide whether the failure is worth retrying.
type ExtError struct {
	Status int
	Err    error
}

func (e ExtError) Error() string {
	return e.Err.Error()
}

func Create(status int, err error) ExtError {
	return ExtError{Status: status, Err: err}
}

// Append prefixes an error message while preserving the status of
// the original error.
func Append(prev error, head string) error {
	prevMsg := prev.Error()
	if len(prevMsg) == 0 {
		return errors.New(head)
	}
	newMsg := fmt.Errorf("%s. %s", head, prevMsg)
	if v, ok := prev.(ExtError); ok {
		return Create(v.Status, newMsg)
	}
	return newMsg
}

// Convert promotes an arbitrary error to an ExtError. Errors without
// a status are treated as internal failures.
func Convert(err error) ExtError {
	if v, ok := err.(ExtError); ok {
		return v
	}
	log.Debugf("Automatic promotion to 500 response for %s", err.Error())
	return ExtError{Status: http.StatusInternalServerError, Err: err}
}

// Retryable reports whether the error is transient. Rate limits and
// server-side failures qualify. Auth and not-found failures never do,
// a retry would fail the same way.
func Retryable(err error) bool {
	status := Convert(err).Status
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500
}
