// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package apphost runs an uber/fx web application inside the test process and
hands out HTTP clients that talk to it without a network.

An application exposes an entry point: any value that implements
HostConfigurer, has a Module() fx.Option method, is itself an fx.Option, or is
a func(*HostBuilder).  A Factory resolves that entry point into a HostBuilder,
applies its environment, content root and configuration callbacks, builds and
starts the fx.App, and serves the application's http.Handler in-process:

	f := apphost.New(myapp.Startup{})
	defer f.Close()

	client, err := f.CreateClient()
	if err != nil {
	  // the host could not be built
	}

	response, err := client.Get("/")

Factories may be specialized with WithConfiguration, which returns a derived
Factory with its own server.  Closing a Factory closes every client and every
derived Factory it produced.

Package apphosttest binds factories to the lifetime of a test.
*/
package apphost
