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
package model

import "fmt"

// Perm is the repo-scoped permission triple reported by GitHub for a
// collaborator. The flags are independent on the wire even though in
// practice admin implies push implies pull.
type Perm struct {
	Admin bool `json:"admin"`
	Push  bool `json:"push"`
	Pull  bool `json:"pull"`
}

// Repository permission levels ordered from highest to lowest.
const (
	PermAdmin = "admin"
	PermPush  = "push"
	PermPull  = "pull"
)

func (p Perm) Equal(other Perm) bool {
	return p.Admin == other.Admin && p.Push == other.Push && p.Pull == other.Pull
}

// Highest returns the highest-ranked flag that is set, or the empty
// string when no flag is set.
func (p Perm) Highest() string {
	switch {
	case p.Admin:
		return PermAdmin
	case p.Push:
		return PermPush
	case p.Pull:
		return PermPull
	}
	return ""
}

// DefaultPerms maps an organization default_repository_permission to
// the permission triple granted to every member. The API contract
// guarantees exactly these four values; anything else is a
// configuration error and must never be guessed at.
// https://developer.github.com/v3/orgs/#input
func DefaultPerms(level string) (Perm, error) {
	switch level {
	case "admin":
		return Perm{Admin: true, Push: true, Pull: true}, nil
	case "write":
		return Perm{Admin: false, Push: true, Pull: true}, nil
	case "read":
		return Perm{Admin: false, Push: false, Pull: true}, nil
	case "none":
		return Perm{Admin: false, Push: false, Pull: false}, nil
	}
	return Perm{}, fmt.Errorf("Unsupported organization default permission '%s'", level)
}

// PermRank orders repository permission levels for display. Lower is
// stronger.
func PermRank(permission string) (int, error) {
	switch permission {
	case PermAdmin:
		return 0, nil
	case PermPush:
		return 1, nil
	case PermPull:
		return 2, nil
	}
	return 0, fmt.Errorf("Unsupported repository permission '%s'", permission)
}
