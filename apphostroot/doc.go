// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package apphostroot locates the content root of an application under test.

Resolution tries, in order: registered Metadata, an environment variable
(APPHOST_CONTENTROOT by default), and finally a search relative to the
enclosing Go module.  Test packages usually register metadata from an init
function or TestMain:

	func init() {
	  apphostroot.Register(apphostroot.Metadata{
	    Key:  "github.com/example/app",
	    Path: "../app",
	  })
	}
*/
package apphostroot
