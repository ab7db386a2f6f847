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

// Organization member roles.
// https://developer.github.com/v3/orgs/members/#add-or-update-organization-membership
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type Membership struct {
	Login string `json:"login"`
	Role  string `json:"role"`
}
