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
package envvars

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func restore(saved EnvValues) {
	Env = saved
}

func TestValidateMissingRequired(t *testing.T) {
	defer restore(Env)
	Env = EnvValues{}
	Env.Github.Url = "https://github.com"
	Env.Monitor.LogLevel = "info"
	Env.Output.Format = "html"
	Env.Fetch.Concurrency = 4
	Env.Fetch.Retries = 3

	err := Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB__PERSONAL_TOKEN")
	assert.Contains(t, err.Error(), "GITHUB__ORG_ID")
}

func TestValidateRejectsBadEnums(t *testing.T) {
	defer restore(Env)
	Env.Github.Token = "token"
	Env.Github.OrgID = "promptworks"
	Env.Github.Url = "https://github.com"
	Env.Monitor.LogLevel = "chatty"
	Env.Output.Format = "pdf"
	Env.Fetch.Concurrency = 4
	Env.Fetch.Retries = 3

	err := Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "OUTPUT_FORMAT")
}

func TestValidateAccepts(t *testing.T) {
	defer restore(Env)
	Env.Github.Token = "token"
	Env.Github.OrgID = "promptworks"
	Env.Github.Url = "https://github.com"
	Env.Monitor.LogLevel = "debug"
	Env.Output.Format = "json"
	Env.Fetch.Concurrency = 1
	Env.Fetch.Retries = 1

	assert.NoError(t, Validate())
}

func TestAdminAllowList(t *testing.T) {
	defer restore(Env)
	Env.Github.AdminLogins = "alice, bob"
	Env.Github.OrgOwnerLogins = "carol"

	allow := AdminAllowList()
	assert.Equal(t, "alice,bob,carol", strings.Join(allow.KeysSorted(), ","))

	Env.Github.AdminLogins = ""
	Env.Github.OrgOwnerLogins = ""
	assert.Equal(t, 0, len(AdminAllowList()))
}
