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
package remote

import (
	"context"

	"github.com/promptworks/github-org-repo-access-report/model"
)

// Remote is the closed set of read-only upstream operations the audit
// consumes. List operations paginate to completion.
type Remote interface {
	// GetOrg gets the organization record.
	GetOrg(c context.Context, orgID string) (*model.Org, error)

	// GetOrgMembers gets the logins of all organization members.
	GetOrgMembers(c context.Context, orgID string) ([]string, error)

	// GetMembership gets the organization membership record of one
	// member, carrying the admin/member role.
	GetMembership(c context.Context, orgID string, login string) (*model.Membership, error)

	// GetOrgTeams gets the organization's top-level teams.
	GetOrgTeams(c context.Context, orgID string) ([]*model.Team, error)

	// GetOrgRepos gets the organization's private repositories.
	GetOrgRepos(c context.Context, orgID string) ([]*model.Repo, error)

	// GetCollaborators gets a repository's collaborators with their
	// permission sets.
	GetCollaborators(c context.Context, owner string, name string) ([]*model.Collaborator, error)

	// GetRepoTeams gets the teams associated with a repository, each
	// with its per-repo permission level.
	GetRepoTeams(c context.Context, owner string, name string) ([]*model.Team, error)

	// GetTeamMembers gets the member logins of a team, addressed by
	// organization and team slug.
	GetTeamMembers(c context.Context, orgID string, slug string) ([]string, error)

	// GetPerson gets a user profile by login.
	GetPerson(c context.Context, login string) (*model.Person, error)
}
