// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package apphosthttp supplies the in-process side of an apphost: servers that
dispatch requests to an application's http.Handler without touching the
network, and clients bound to those servers.

A Server is created from a ServerFactory.  The default factory, ServerConfig{},
uses in-memory pipes.  Setting ServerConfig.Loopback binds a real listener on
the loopback interface instead, for code under test that inspects connections.

Clients are built with NewClient.  Each Client embeds an *http.Client, resolves
relative URLs against its base address, and routes every request to its server
no matter which host the request names.
*/
package apphosthttp
