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

import "github.com/promptworks/github-org-repo-access-report/set"

// Snapshot is the complete, immutable set of fetched entities for one
// audit run. It is built once by the fetch pipeline and only read
// afterwards.
type Snapshot struct {
	Org         *Org
	DefaultPerm Perm

	// Repos in API response order.
	Repos []*Repo

	// Member logins in API response order.
	Members []string

	// Memberships keyed by member login.
	Memberships map[string]*Membership

	// Teams of the organization (top-level only).
	Teams []*Team

	// Collaborators keyed by repo slug, API response order. Every
	// audited repo has an entry even when the list is empty.
	Collaborators map[string][]*Collaborator

	// RepoTeams keyed by repo slug, sorted ascending by permission
	// rank.
	RepoTeams map[string][]*Team

	// TeamsPerLogin keyed by member login.
	TeamsPerLogin map[string][]*Team

	// People keyed by login, one profile per distinct login.
	People map[string]*Person
}

// MemberLogins returns the set of organization member logins.
func (s *Snapshot) MemberLogins() set.Set {
	logins := set.Empty()
	for _, login := range s.Members {
		logins.Add(login)
	}
	return logins
}

// AdminLogins returns the logins whose membership record carries the
// admin role.
func (s *Snapshot) AdminLogins() set.Set {
	admins := set.Empty()
	for login, m := range s.Memberships {
		if m.Role == RoleAdmin {
			admins.Add(login)
		}
	}
	return admins
}

// TeamsForRepo returns the teams with access to a repo, sorted
// ascending by permission rank.
func (s *Snapshot) TeamsForRepo(slug string) []*Team {
	return s.RepoTeams[slug]
}

// TeamsForPersonOnRepo returns the repo's teams that the given login
// belongs to, in repo-team order.
func (s *Snapshot) TeamsForPersonOnRepo(login string, slug string) []*Team {
	mine := make(map[int64]bool)
	for _, t := range s.TeamsPerLogin[login] {
		mine[t.ID] = true
	}
	var res []*Team
	for _, t := range s.RepoTeams[slug] {
		if mine[t.ID] {
			res = append(res, t)
		}
	}
	return res
}
