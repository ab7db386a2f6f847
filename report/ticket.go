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
package report

import (
	"fmt"

	"github.com/promptworks/github-org-repo-access-report/model"
)

// Ticket is remediation text ready to paste into an issue tracker.
// Drafting a ticket mutates nothing, the audit stays read-only.
type Ticket struct {
	Title string
	Body  string
}

func displayName(p *model.Person) string {
	if p.Name != "" {
		return fmt.Sprintf("%s (%s)", p.Name, p.Login)
	}
	return p.Login
}

// RemoveMemberTicket proposes removing a stale member from the
// organization.
func RemoveMemberTicket(org *model.Org, person *model.Person) Ticket {
	return Ticket{
		Title: fmt.Sprintf("Remove %s from the %s organization", person.Login, org.Login),
		Body: fmt.Sprintf(
			"%s no longer appears to need access to the %s organization. "+
				"Please confirm with the team leads, then remove the account at "+
				"https://github.com/orgs/%s/people.",
			displayName(person), org.Login, org.Login),
	}
}

// ArchiveRepoTicket proposes archiving a repository that no longer
// needs active collaborators.
func ArchiveRepoTicket(repo *model.Repo) Ticket {
	return Ticket{
		Title: fmt.Sprintf("Archive the %s repository", repo.Slug),
		Body: fmt.Sprintf(
			"%s looks unused and still grants access to collaborators. "+
				"If no active work remains, archive it under %s/settings "+
				"so its access list stops needing review.",
			repo.Slug, repo.Link),
	}
}

// ConfirmAccessTicket asks an owner to confirm a delegated grant that
// the audit cannot explain on its own.
func ConfirmAccessTicket(person *model.Person, repo *model.Repo) Ticket {
	return Ticket{
		Title: fmt.Sprintf("Confirm %s's access to %s", person.Login, repo.Slug),
		Body: fmt.Sprintf(
			"%s holds direct access to %s that is not explained by "+
				"organization defaults or team membership. If this grant is "+
				"intentional, please note why; otherwise remove it at %s/settings/collaboration.",
			displayName(person), repo.Slug, repo.Link),
	}
}
