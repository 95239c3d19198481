// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphosttest

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/apphost"
	"github.com/xmidt-org/apphost/apphosthttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// Suite is an embeddable type that makes viper-related and factory-related
// tests simpler.  Embed this type in testify/suite-style test types.
type Suite struct {
	suite.Suite

	// viper is the viper instance for each test
	viper *viper.Viper

	// factories are closed at the end of each test
	factories []*apphost.Factory
}

var (
	_ suite.SetupTestSuite    = (*Suite)(nil)
	_ suite.TearDownTestSuite = (*Suite)(nil)
)

// SetupTest initializes a new viper instance for each test
func (suite *Suite) SetupTest() {
	suite.viper = viper.New()
	suite.factories = nil
}

// TearDownTest closes every factory created with Factory during the test.
func (suite *Suite) TearDownTest() {
	for _, f := range suite.factories {
		suite.NoError(f.Close())
	}

	suite.factories = nil
}

// Viper returns the viper instance for the current test.
func (suite *Suite) Viper() *viper.Viper {
	return suite.viper
}

// YAML is a shorthand for bootstrapping the current test's viper environment
// with a given YAML configuration
func (suite *Suite) YAML(v string) {
	suite.viper.SetConfigType("yaml")
	suite.Require().NoError(
		suite.viper.ReadConfig(strings.NewReader(v)),
	)
}

// JSON is a shorthand for bootstrapping the current test's viper environment
// with a given JSON configuration
func (suite *Suite) JSON(v string) {
	suite.viper.SetConfigType("json")
	suite.Require().NoError(
		suite.viper.ReadConfig(strings.NewReader(v)),
	)
}

// Unmarshaler returns an Unmarshaler over the current test's viper environment
// with the same decode hooks a host uses.
func (suite *Suite) Unmarshaler() apphost.Unmarshaler {
	return apphost.ViperUnmarshaler{
		Viper:   suite.viper,
		Options: []viper.DecoderConfigOption{apphost.DefaultDecodeHooks},
		Printer: apphost.NewModulePrinter(apphost.Module, apphost.TestLogger(suite.T())),
	}
}

// ClientConfig reads a client configuration from a key in the current test's
// viper environment.  Anything not set there has the value from
// apphosthttp.DefaultClientConfig.
func (suite *Suite) ClientConfig(key string) apphosthttp.ClientConfig {
	cfg := apphosthttp.DefaultClientConfig()
	suite.Require().NoError(
		suite.Unmarshaler().UnmarshalKey(key, &cfg),
	)

	return cfg
}

// Settings is a HostOption that copies the current test's viper environment
// into a host's settings.  Keys set this way override the host's settings files.
func (suite *Suite) Settings() apphost.HostOption {
	settings := suite.viper.AllSettings()
	return apphost.AsHostOption(func(b *apphost.HostBuilder) {
		for k, v := range settings {
			b.UseSetting(k, v)
		}
	})
}

// Factory creates a Factory that logs to the current test and is closed
// when the current test finishes.
func (suite *Suite) Factory(entrypoint any, opts ...apphost.FactoryOption) *apphost.Factory {
	f := apphost.New(
		entrypoint,
		append(
			[]apphost.FactoryOption{apphost.WithPrinter(apphost.TestLogger(suite.T()))},
			opts...,
		)...,
	)

	suite.factories = append(suite.factories, f)
	return f
}

// Client creates a client from a Factory, halting the current test if that fails.
func (suite *Suite) Client(f *apphost.Factory) *apphosthttp.Client {
	return Client(suite, f)
}

// Fxtest is a convenience for doing fxtest.New(...) with the current
// viper environment and the additional fx.Options.  Use this to test
// an application's components without hosting them.
func (suite *Suite) Fxtest(more ...fx.Option) *fxtest.App {
	return fxtest.New(
		suite.T(),
		append(
			[]fx.Option{
				fx.Supply(apphost.HostEnvironment{Name: apphost.Development}),
				apphost.ForViper(suite.viper),
			},
			more...,
		)...,
	)
}
