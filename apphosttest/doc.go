// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package apphosttest binds apphost factories to tests.

New creates a Factory that logs to the test and is closed when the test ends:

	func TestMyApp(t *testing.T) {
	  f := apphosttest.New(t, myapp.Startup{})
	  response, err := apphosttest.Client(t, f).Get("/")
	  // ...
	}

Suite is an embeddable testify suite with a per-test viper environment.
*/
package apphosttest
