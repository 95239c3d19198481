// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphostreflect

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SafeSuite struct {
	suite.Suite
}

func (suite *SafeSuite) TestSimple() {
	suite.Equal(123, Safe(123, 456))
}

func (suite *SafeSuite) TestNilPointer() {
	var (
		candidate *int
		def       = 123
	)

	suite.Equal(&def, Safe(candidate, &def))
}

func (suite *SafeSuite) TestNonNilPointer() {
	var (
		candidate = 123
		def       = 456
	)

	suite.Equal(&candidate, Safe(&candidate, &def))
}

func (suite *SafeSuite) TestUninitializedFunc() {
	var candidate http.HandlerFunc
	actual := Safe[http.Handler](candidate, http.DefaultServeMux)
	suite.Same(http.DefaultServeMux, actual)
}

func (suite *SafeSuite) TestNilInterface() {
	var candidate http.Handler
	actual := Safe(candidate, http.Handler(http.DefaultServeMux))
	suite.Same(http.DefaultServeMux, actual)
}

func TestSafe(t *testing.T) {
	suite.Run(t, new(SafeSuite))
}

type PackagePathSuite struct {
	suite.Suite
}

func (suite *PackagePathSuite) TestNamedType() {
	suite.Equal("net/url", PackagePath(url.URL{}))
	suite.Equal("net/url", PackagePath(new(url.URL)))
}

func (suite *PackagePathSuite) TestUnnamedType() {
	suite.Empty(PackagePath(func() {}))
	suite.Empty(PackagePath(nil))
}

func (suite *PackagePathSuite) TestTypeName() {
	suite.Equal("*url.URL", TypeName(new(url.URL)))
	suite.Equal("<nil>", TypeName(nil))
}

func TestPackagePath(t *testing.T) {
	suite.Run(t, new(PackagePathSuite))
}
