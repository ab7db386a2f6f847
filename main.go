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
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/promptworks/github-org-repo-access-report/audit"
	"github.com/promptworks/github-org-repo-access-report/cache"
	"github.com/promptworks/github-org-repo-access-report/envvars"
	"github.com/promptworks/github-org-repo-access-report/remote"
	"github.com/promptworks/github-org-repo-access-report/remote/github"
	"github.com/promptworks/github-org-repo-access-report/report"
	"github.com/promptworks/github-org-repo-access-report/snapshot"
	"github.com/promptworks/github-org-repo-access-report/usage"
	"github.com/promptworks/github-org-repo-access-report/version"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func setLogLevel(level string) {
	switch level {
	case "panic":
		logrus.SetLevel(logrus.PanicLevel)
	case "fatal":
		logrus.SetLevel(logrus.FatalLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	default:
		logrus.Fatal("Unrecognized log level ", level)
	}
}

func openCache() (cache.Cache, io.Closer) {
	if envvars.Env.Cache.Disable {
		return cache.NewMemory(), nil
	}
	bolt, err := cache.NewBolt(envvars.Env.Cache.Path)
	if err != nil {
		logrus.Fatalf("Opening response cache at %s. %s", envvars.Env.Cache.Path, err)
	}
	return cache.Layered(cache.NewMemory(), bolt), bolt
}

func openOutput() (io.Writer, io.Closer) {
	if envvars.Env.Output.Path == "" {
		return os.Stdout, nil
	}
	f, err := os.Create(envvars.Env.Output.Path)
	if err != nil {
		logrus.Fatalf("Creating report output at %s. %s", envvars.Env.Output.Path, err)
	}
	return f, f
}

func writeReport(rep *report.Report, w io.Writer) error {
	switch envvars.Env.Output.Format {
	case "html":
		return rep.WriteHTML(w)
	case "xml":
		return rep.WriteXML(w)
	case "json":
		return rep.WriteJSON(w)
	}
	return fmt.Errorf("Unsupported output format '%s'", envvars.Env.Output.Format)
}

func runAudit() {

	err := envvars.Validate()
	if err != nil {
		logrus.Fatal(err)
	}

	setLogLevel(envvars.Env.Monitor.LogLevel)

	store, storeCloser := openCache()
	if storeCloser != nil {
		defer storeCloser.Close()
	}

	r := remote.Cached(github.Get(), store)

	ctx := context.Background()
	snap, err := snapshot.Build(ctx, r, envvars.Env.Github.OrgID, envvars.Env.Fetch.Concurrency)
	if err != nil {
		logrus.Fatal(err)
	}

	auditor := audit.New(snap, envvars.AdminAllowList())
	unexpected := auditor.Unexpected()

	out, outCloser := openOutput()
	rep := report.New(snap, unexpected, auditor.AdminAllowList())
	err = writeReport(rep, out)
	if outCloser != nil {
		outCloser.Close()
	}
	if err != nil {
		logrus.Fatalf("Writing report. %s", err)
	}

	usage.WriteLog()
}

func main() {
	ver := flag.Bool("version", false, "print version")
	env := flag.Bool("env", false, "print environment variables")
	help := flag.Bool("help", false, "print help information")
	flag.Parse()
	if *help {
		flag.PrintDefaults()
	} else if *ver {
		fmt.Println(version.Version)
	} else if *env {
		envvars.Usage()
	} else {
		runAudit()
	}
}
