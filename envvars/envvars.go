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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/promptworks/github-org-repo-access-report/set"

	"github.com/ianschenck/envflag"
	"github.com/mspiegel/go-multierror"
)

type EnvValues struct {
	// Github integration
	Github struct {
		LoginName      string
		Token          string
		OrgID          string
		Url            string
		AdminLogins    string
		OrgOwnerLogins string
		RequestsHz     int
	}
	// Response cache config
	Cache struct {
		Path    string
		Disable bool
	}
	// Report output config
	Output struct {
		Path   string
		Format string
	}
	// Logging config
	Monitor struct {
		LogLevel string
	}
	// Fetch pipeline config
	Fetch struct {
		Timeout     time.Duration
		Retries     int
		Concurrency int
	}
}

var Env EnvValues

var logLevels = set.New("debug", "info", "warn", "error", "fatal", "panic")

var outputFormats = set.New("html", "xml", "json")

func init() {
	configure()
}

func configure() {
	envflag.StringVar(&Env.Github.LoginName, "GITHUB__LOGIN_NAME", "", "GitHub login of the auditing account")
	envflag.StringVar(&Env.Github.Token, "GITHUB__PERSONAL_TOKEN", "", "GitHub personal access token. Required")
	envflag.StringVar(&Env.Github.OrgID, "GITHUB__ORG_ID", "", "GitHub organization to audit. Required")
	envflag.StringVar(&Env.Github.Url, "GITHUB_URL", "https://github.com", "Github url")
	envflag.StringVar(&Env.Github.AdminLogins, "GITHUB__ADMIN_LOGINS", "", "Comma-separated logins accepted as legitimate admins")
	envflag.StringVar(&Env.Github.OrgOwnerLogins, "GITHUB__ORG_OWNER_LOGINS", "", "Comma-separated org owner logins, merged into the admin allow-list")
	envflag.IntVar(&Env.Github.RequestsHz, "GITHUB_BATCH_PER_SECOND", 10, "GitHub batch access rate limiter")

	envflag.StringVar(&Env.Cache.Path, "CACHE_PATH", "github-audit-cache.db", "Path of the durable response cache")
	envflag.BoolVar(&Env.Cache.Disable, "CACHE_DISABLE", false, "Skip the durable response cache")

	envflag.StringVar(&Env.Output.Path, "OUTPUT_PATH", "", "Report destination. Empty writes to stdout")
	envflag.StringVar(&Env.Output.Format, "OUTPUT_FORMAT", "html", "One of html|xml|json")

	envflag.StringVar(&Env.Monitor.LogLevel, "LOG_LEVEL", "info", "One of debug|info|warn|error|fatal|panic")

	envflag.DurationVar(&Env.Fetch.Timeout, "FETCH_TIMEOUT", time.Second*30, "Timeout of a single API call")
	envflag.IntVar(&Env.Fetch.Retries, "FETCH_RETRIES", 3, "Attempts per API call on transient failures")
	envflag.IntVar(&Env.Fetch.Concurrency, "FETCH_CONCURRENCY", 4, "Concurrent requests during fan-out stages")

	envflag.Parse()

	Env.Monitor.LogLevel = strings.ToLower(Env.Monitor.LogLevel)
	Env.Output.Format = strings.ToLower(Env.Output.Format)
	Env.Github.Url = strings.TrimRight(Env.Github.Url, "/")
}

func Usage() {
	envflag.EnvironmentFlags.PrintDefaults()
}

// AdminAllowList merges the configured admin and org owner logins into
// one allow-list. Empty when neither variable is set.
func AdminAllowList() set.Set {
	allow := set.NewFromList(Env.Github.AdminLogins, ",")
	allow.AddAll(set.NewFromList(Env.Github.OrgOwnerLogins, ","))
	return allow
}

func Validate() error {
	var errs error
	if Env.Github.Token == "" {
		err := errors.New("Missing required environment variable GITHUB__PERSONAL_TOKEN")
		errs = multierror.Append(errs, err)
	}
	if Env.Github.OrgID == "" {
		err := errors.New("Missing required environment variable GITHUB__ORG_ID")
		errs = multierror.Append(errs, err)
	}
	if Env.Github.Url == "" {
		err := errors.New("Environment variable GITHUB_URL is empty")
		errs = multierror.Append(errs, err)
	}
	if !strings.HasPrefix(Env.Github.Url, "https://") {
		err := errors.New("GITHUB_URL must have prefix 'https://'")
		errs = multierror.Append(errs, err)
	}
	if !logLevels.Contains(Env.Monitor.LogLevel) {
		err := fmt.Errorf("Environment variable LOG_LEVEL '%s' must be one of: %s",
			Env.Monitor.LogLevel,
			"'debug', 'info', 'warn', 'error', 'fatal', 'panic'")
		errs = multierror.Append(errs, err)
	}
	if !outputFormats.Contains(Env.Output.Format) {
		err := fmt.Errorf("Environment variable OUTPUT_FORMAT '%s' must be one of: %s",
			Env.Output.Format,
			"'html', 'xml', 'json'")
		errs = multierror.Append(errs, err)
	}
	if Env.Fetch.Concurrency < 1 {
		err := errors.New("FETCH_CONCURRENCY must be at least 1")
		errs = multierror.Append(errs, err)
	}
	if Env.Fetch.Retries < 1 {
		err := errors.New("FETCH_RETRIES must be at least 1")
		errs = multierror.Append(errs, err)
	}
	return errs
}
