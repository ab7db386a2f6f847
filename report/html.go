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
	"html/template"
	"io"
)

var htmlTemplate = template.Must(template.New("audit").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Repository access audit: {{.Doc.Org}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h2 { margin-top: 1.5em; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; }
.label { padding: 0.1em 0.5em; border-radius: 3px; color: #fff; }
.label-danger { background: #d9534f; }
.label-warning { background: #f0ad4e; }
.label-info { background: #5bc0de; }
.label-default { background: #999; }
.clean { color: #777; }
</style>
</head>
<body>
<h1>Repository access audit: {{.Doc.Org}}</h1>
<p>
Generated {{.Doc.GeneratedAt}}.
Organization default permission: <strong>{{.Doc.DefaultPermission}}</strong>
(<a href="{{.MemberSettingsURL}}">member privileges</a>,
<a href="{{.PeopleURL}}">people</a>).
</p>
{{if .Doc.AdminAllowList}}<p>Accepted admins: {{range .Doc.AdminAllowList}}<code>{{.}}</code> {{end}}</p>{{end}}
{{range .Doc.Repos}}
<h2><a href="{{.Link}}">{{.Slug}}</a></h2>
<p>
{{range .Teams}}<span class="label {{if eq .Permission "admin"}}label-danger{{else if eq .Permission "push"}}label-warning{{else}}label-info{{end}}">{{.Slug}}: {{.Permission}}</span> {{end}}
<a href="{{.SettingsURL}}">collaboration settings</a>
</p>
{{if .Unexpected}}
<table>
<tr><th>Login</th><th>Name</th><th>Permission</th><th>Teams on this repo</th></tr>
{{range .Unexpected}}
<tr>
<td>{{.Emoji}} <a href="{{.Link}}">{{.Login}}</a></td>
<td>{{.Name}}</td>
<td><span class="label {{.Label}}">{{.Permission}}</span></td>
<td>{{range .Teams}}{{.Slug}} ({{.Permission}}) {{end}}</td>
</tr>
{{end}}
</table>
{{else}}
<p class="clean">No unexpected collaborators.</p>
{{end}}
{{end}}
</body>
</html>
`))

func (r *Report) WriteHTML(w io.Writer) error {
	data := struct {
		Doc               document
		PeopleURL         string
		MemberSettingsURL string
	}{
		Doc:               r.document(),
		PeopleURL:         r.OrgPeopleURL(),
		MemberSettingsURL: r.OrgMemberSettingsURL(),
	}
	return htmlTemplate.Execute(w, data)
}
