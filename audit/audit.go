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

// Package audit decides which access grants deviate from the expected
// baseline. A grant is expected when it belongs to an allow-listed
// admin holding real admin rights, or to an org member whose
// permissions exactly match the organization default. Everything else
// is surfaced for review.
package audit

import (
	"github.com/promptworks/github-org-repo-access-report/model"
	"github.com/promptworks/github-org-repo-access-report/set"
)

type Auditor struct {
	snapshot *model.Snapshot
	admins   set.Set
	members  set.Set
}

// New builds an auditor over a snapshot. The allow-list names the
// logins accepted as legitimate admins; when it is empty the list is
// derived from the membership records carrying the admin role.
func New(snapshot *model.Snapshot, allowList set.Set) *Auditor {
	admins := allowList
	if len(admins) == 0 {
		admins = snapshot.AdminLogins()
	}
	return &Auditor{
		snapshot: snapshot,
		admins:   admins,
		members:  snapshot.MemberLogins(),
	}
}

// AdminAllowList returns the allow-list the auditor settled on.
func (a *Auditor) AdminAllowList() set.Set {
	return a.admins
}

// IsLegitimateAdmin accepts a collaborator that is allow-listed and
// actually holds the admin flag. An allow-listed login with lesser
// access is not legitimate, somebody downgraded it.
func (a *Auditor) IsLegitimateAdmin(c *model.Collaborator) bool {
	return a.admins.Contains(c.Login) && c.Perm.Admin
}

// IsOrgMemberWithDefaultPermissions accepts an org member whose
// permission triple is exactly the organization default. Elevated and
// reduced grants both fail the check.
func (a *Auditor) IsOrgMemberWithDefaultPermissions(c *model.Collaborator) bool {
	return a.members.Contains(c.Login) && c.Perm.Equal(a.snapshot.DefaultPerm)
}

// Unexpected returns, per repo slug, the collaborators explained by
// neither rule, in API response order. Every audited repo is keyed,
// an empty list means the repo is clean, not unaudited.
func (a *Auditor) Unexpected() map[string][]*model.Collaborator {
	res := make(map[string][]*model.Collaborator, len(a.snapshot.Repos))
	for _, repo := range a.snapshot.Repos {
		flagged := []*model.Collaborator{}
		for _, c := range a.snapshot.Collaborators[repo.Slug] {
			if a.IsLegitimateAdmin(c) || a.IsOrgMemberWithDefaultPermissions(c) {
				continue
			}
			flagged = append(flagged, c)
		}
		res[repo.Slug] = flagged
	}
	return res
}
