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

// Package report formats the audit result. It performs no business
// logic, every decision was made by the audit package.
package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/promptworks/github-org-repo-access-report/model"
	"github.com/promptworks/github-org-repo-access-report/set"
)

// PermissionDetail carries the display metadata of one repository
// permission level.
type PermissionDetail struct {
	Label string
	Order int
	Emoji string
}

// PermissionDetails maps a permission level to its display metadata.
func PermissionDetails(permission string) (PermissionDetail, error) {
	switch permission {
	case model.PermAdmin:
		return PermissionDetail{Label: "label-danger", Order: 0, Emoji: "🔴"}, nil
	case model.PermPush:
		return PermissionDetail{Label: "label-warning", Order: 1, Emoji: "🟠"}, nil
	case model.PermPull:
		return PermissionDetail{Label: "label-info", Order: 2, Emoji: "🔵"}, nil
	case "none":
		return PermissionDetail{Label: "label-default", Order: 3, Emoji: "⚪"}, nil
	}
	return PermissionDetail{}, fmt.Errorf("Unsupported repository permission '%s'", permission)
}

type Report struct {
	Snapshot    *model.Snapshot
	Unexpected  map[string][]*model.Collaborator
	Admins      set.Set
	GeneratedAt time.Time
}

func New(snapshot *model.Snapshot, unexpected map[string][]*model.Collaborator, admins set.Set) *Report {
	return &Report{
		Snapshot:    snapshot,
		Unexpected:  unexpected,
		Admins:      admins,
		GeneratedAt: time.Now(),
	}
}

func (r *Report) OrgPeopleURL() string {
	return fmt.Sprintf("https://github.com/orgs/%s/people", r.Snapshot.Org.Login)
}

func (r *Report) OrgMemberSettingsURL() string {
	return fmt.Sprintf("https://github.com/organizations/%s/settings/member_privileges", r.Snapshot.Org.Login)
}

func (r *Report) RepoCollaborationURL(repo *model.Repo) string {
	return repo.Link + "/settings/collaboration"
}

func (r *Report) TeamURL(team *model.Team) string {
	return fmt.Sprintf("https://github.com/orgs/%s/teams/%s", r.Snapshot.Org.Login, team.Slug)
}

type teamDoc struct {
	Slug       string `xml:"slug,attr" json:"slug"`
	Name       string `xml:"name,attr" json:"name"`
	Permission string `xml:"permission,attr" json:"permission"`
}

type collabDoc struct {
	Login      string    `xml:"login,attr" json:"login"`
	Name       string    `xml:"name,attr,omitempty" json:"name,omitempty"`
	Link       string    `xml:"link,attr,omitempty" json:"link,omitempty"`
	Permission string    `xml:"permission,attr" json:"permission"`
	Label      string    `xml:"label,attr" json:"label"`
	Emoji      string    `xml:"-" json:"emoji"`
	Teams      []teamDoc `xml:"team" json:"teams,omitempty"`
}

type repoDoc struct {
	Slug        string      `xml:"slug,attr" json:"slug"`
	Link        string      `xml:"link,attr" json:"link"`
	SettingsURL string      `xml:"settings,attr" json:"settings_url"`
	Teams       []teamDoc   `xml:"teams>team" json:"teams"`
	Unexpected  []collabDoc `xml:"unexpected>collaborator" json:"unexpected"`
}

type document struct {
	XMLName           xml.Name  `xml:"audit" json:"-"`
	Org               string    `xml:"org,attr" json:"org"`
	DefaultPermission string    `xml:"default_permission,attr" json:"default_permission"`
	GeneratedAt       string    `xml:"generated_at,attr" json:"generated_at"`
	AdminAllowList    []string  `xml:"admins>login" json:"admin_allow_list"`
	Repos             []repoDoc `xml:"repo" json:"repos"`
}

// document flattens the snapshot plus audit result into a renderable
// tree. Unknown permission values were rejected while the snapshot was
// built, so display lookups cannot fail here.
func (r *Report) document() document {
	doc := document{
		Org:               r.Snapshot.Org.Login,
		DefaultPermission: r.Snapshot.Org.DefaultRepoPermission,
		GeneratedAt:       r.GeneratedAt.Format(time.RFC3339),
		AdminAllowList:    r.Admins.KeysSorted(),
	}
	for _, repo := range r.Snapshot.Repos {
		rd := repoDoc{
			Slug:        repo.Slug,
			Link:        repo.Link,
			SettingsURL: r.RepoCollaborationURL(repo),
			Teams:       []teamDoc{},
			Unexpected:  []collabDoc{},
		}
		for _, team := range r.Snapshot.TeamsForRepo(repo.Slug) {
			rd.Teams = append(rd.Teams, teamDoc{
				Slug:       team.Slug,
				Name:       team.Name,
				Permission: team.Permission,
			})
		}
		for _, c := range r.Unexpected[repo.Slug] {
			rd.Unexpected = append(rd.Unexpected, r.collabDoc(c, repo))
		}
		doc.Repos = append(doc.Repos, rd)
	}
	return doc
}

func (r *Report) collabDoc(c *model.Collaborator, repo *model.Repo) collabDoc {
	perm := c.Perm.Highest()
	if perm == "" {
		// an all-false triple still deserves a visible marker
		perm = "none"
	}
	cd := collabDoc{
		Login:      c.Login,
		Permission: perm,
	}
	if person := r.Snapshot.People[c.Login]; person != nil {
		cd.Name = person.Name
		cd.Link = person.Link
	}
	if detail, err := PermissionDetails(cd.Permission); err == nil {
		cd.Label = detail.Label
		cd.Emoji = detail.Emoji
	}
	for _, team := range r.Snapshot.TeamsForPersonOnRepo(c.Login, repo.Slug) {
		cd.Teams = append(cd.Teams, teamDoc{
			Slug:       team.Slug,
			Name:       team.Name,
			Permission: team.Permission,
		})
	}
	return cd
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.document())
}

func (r *Report) WriteXML(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(r.document()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
