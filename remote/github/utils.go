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
package github

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/go-github/v30/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// throttleTransport blocks each request on the shared rate limiter so
// batch fan-out stays under the configured requests-per-second limit.
type throttleTransport struct {
	limiter *rate.Limiter
	// Transport is the underlying HTTP transport to use when making
	// requests. It will default to http.DefaultTransport if nil.
	Transport http.RoundTripper
}

// RoundTrip implements the RoundTripper interface.
func (t *throttleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport().RoundTrip(req)
}

func (t *throttleTransport) transport() http.RoundTripper {
	if t.Transport != nil {
		return t.Transport
	}
	return http.DefaultTransport
}

func createClient(rawurl, accessToken string, limiter *rate.Limiter) *github.Client {
	token := oauth2.Token{AccessToken: accessToken}
	source := oauth2.StaticTokenSource(&token)
	client := oauth2.NewClient(context.Background(), source)
	client.Transport = &throttleTransport{
		limiter:   limiter,
		Transport: client.Transport}
	g := github.NewClient(client)
	g.BaseURL, _ = url.Parse(rawurl)
	return g
}
