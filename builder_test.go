// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

type HostBuilderSuite struct {
	suite.Suite
}

func (suite *HostBuilderSuite) build(b *HostBuilder) *Host {
	host, err := b.Build(context.Background())
	suite.Require().NoError(err)
	suite.Require().NotNil(host)
	suite.T().Cleanup(func() {
		suite.NoError(host.Close(context.Background()))
	})

	return host
}

func (suite *HostBuilderSuite) serve(h http.Handler, target string) *httptest.ResponseRecorder {
	response := httptest.NewRecorder()
	h.ServeHTTP(response, httptest.NewRequest("GET", target, nil))
	return response
}

func (suite *HostBuilderSuite) writeFile(dir, name, contents string) {
	suite.Require().NoError(
		os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644),
	)
}

func (suite *HostBuilderSuite) TestDefaults() {
	b := NewHostBuilder()
	suite.Equal(
		HostEnvironment{Name: Development},
		b.Environment(),
	)

	suite.NotNil(b.Viper())
}

func (suite *HostBuilderSuite) TestZeroValue() {
	var (
		b      = new(HostBuilder)
		config TestConfig
	)

	suite.Equal(Development, b.Environment().Name)
	suite.NotNil(b.Viper())
	suite.Same(b.Viper(), b.Viper())

	b.UseSetting("name", "zero").Options(
		provideHandler("handler"),
		fx.Invoke(func(u Unmarshaler) error {
			return u.Unmarshal(&config)
		}),
	)

	host := suite.build(b)
	suite.Equal("zero", config.Name)
	suite.Equal("handler", suite.serve(host.Handler(), "/").Body.String())
}

func (suite *HostBuilderSuite) TestEnvironment() {
	b := NewHostBuilder().
		UseEnvironment(Staging).
		UseEnvironment("").
		UseApplicationName("test").
		UseContentRoot("/content")

	suite.Equal(
		HostEnvironment{Name: Staging, ApplicationName: "test", ContentRoot: "/content"},
		b.Environment(),
	)
}

func (suite *HostBuilderSuite) TestHandler() {
	var env HostEnvironment
	host := suite.build(
		NewHostBuilder().
			UseApplicationName("test").
			Options(
				provideHandler("handler"),
				fx.Invoke(func(he HostEnvironment) {
					env = he
				}),
			),
	)

	suite.Equal(HostEnvironment{Name: Development, ApplicationName: "test"}, env)
	suite.Equal(env, host.Environment())

	response := suite.serve(host.Handler(), "/")
	suite.Equal(http.StatusOK, response.Code)
	suite.Equal("handler", response.Body.String())
}

func (suite *HostBuilderSuite) TestRouter() {
	host := suite.build(
		NewHostBuilder().Options(
			fx.Provide(func() *mux.Router {
				r := mux.NewRouter()
				r.Handle("/router", okHandler("router"))
				return r
			}),
		),
	)

	suite.Equal("router", suite.serve(host.Handler(), "/router").Body.String())
	suite.Equal(http.StatusNotFound, suite.serve(host.Handler(), "/nosuch").Code)
}

func (suite *HostBuilderSuite) TestHandlerPreferredOverRouter() {
	host := suite.build(
		NewHostBuilder().Options(
			provideHandler("handler"),
			fx.Provide(func() *mux.Router {
				return mux.NewRouter()
			}),
		),
	)

	suite.Equal("handler", suite.serve(host.Handler(), "/").Body.String())
}

func (suite *HostBuilderSuite) TestNoHandler() {
	host, err := NewHostBuilder().Build(context.Background())
	suite.ErrorIs(err, ErrNoHandler)
	suite.Nil(host)
}

func (suite *HostBuilderSuite) TestAppError() {
	expected := errors.New("expected")
	host, err := NewHostBuilder().
		Options(provideHandler("handler"), fx.Error(expected)).
		Build(context.Background())

	suite.ErrorIs(err, expected)
	suite.Nil(host)
}

func (suite *HostBuilderSuite) TestStartError() {
	var (
		expected = errors.New("expected")
		stopped  bool
	)

	host, err := NewHostBuilder().
		Options(
			provideHandler("handler"),
			fx.Invoke(func(l fx.Lifecycle) {
				l.Append(fx.Hook{
					OnStop: func(context.Context) error {
						stopped = true
						return nil
					},
				})

				l.Append(fx.Hook{
					OnStart: func(context.Context) error {
						return expected
					},
				})
			}),
		).
		Build(context.Background())

	suite.ErrorIs(err, expected)
	suite.Nil(host)
	suite.True(stopped)
}

func (suite *HostBuilderSuite) TestMiddleware() {
	header := func(value string) alice.Constructor {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
				response.Header().Add("Order", value)
				next.ServeHTTP(response, request)
			})
		}
	}

	host := suite.build(
		NewHostBuilder().
			Options(provideHandler("handler")).
			Middleware(header("1"), header("2")).
			Middleware(header("3")),
	)

	response := suite.serve(host.Handler(), "/")
	suite.Equal([]string{"1", "2", "3"}, response.Header().Values("Order"))
}

func (suite *HostBuilderSuite) TestSettings() {
	root := suite.T().TempDir()
	suite.writeFile(root, "appsettings.yaml", "name: base\nage: 1\ninterval: 5s\n")
	suite.writeFile(root, "appsettings.Staging.json", `{"age": 2}`)
	suite.writeFile(root, "appsettings.Production.yaml", "age: 3\n")

	var (
		config TestConfig
		output bytes.Buffer
	)

	suite.build(
		NewHostBuilder().
			UseEnvironment(Staging).
			UseContentRoot(root).
			UsePrinter(NewPrinterWriter(&output)).
			UseSetting("name", "explicit").
			Options(
				provideHandler("handler"),
				fx.Invoke(func(u Unmarshaler) error {
					return u.Unmarshal(&config)
				}),
			),
	)

	suite.Equal("explicit", config.Name)
	suite.Equal(2, config.Age)
	suite.Equal("5s", config.Interval.String())
	suite.Contains(output.String(), "appsettings.yaml")
	suite.Contains(output.String(), "appsettings.Staging.json")
}

func (suite *HostBuilderSuite) TestMalformedSettings() {
	root := suite.T().TempDir()
	suite.writeFile(root, "appsettings.json", "{this is not json")

	host, err := NewHostBuilder().
		UseContentRoot(root).
		Options(provideHandler("handler")).
		Build(context.Background())

	suite.Error(err)
	suite.Nil(host)
}

func (suite *HostBuilderSuite) TestDecoders() {
	var unmarshalErr error
	suite.build(
		NewHostBuilder().
			UseSetting("name", "test").
			UseSetting("unused", true).
			Decoders(Exact).
			Options(
				provideHandler("handler"),
				fx.Invoke(func(u Unmarshaler) {
					var config TestConfig
					unmarshalErr = u.Unmarshal(&config)
				}),
			),
	)

	suite.Error(unmarshalErr)
}

func (suite *HostBuilderSuite) TestHostOptions() {
	b := NewHostBuilder()
	suite.Require().NoError(
		Options[HostBuilder]{
			UseEnvironment(Production),
			UseContentRoot("/content"),
			UseSetting("key", "value"),
			UseOptions(provideHandler("handler")),
			UseMiddleware(func(next http.Handler) http.Handler { return next }),
		}.Apply(b),
	)

	suite.True(b.Environment().IsProduction())
	suite.Equal("/content", b.Environment().ContentRoot)
	suite.Equal("value", b.Viper().GetString("key"))
	suite.Len(b.options, 1)
	suite.Len(b.middleware, 1)
}

func (suite *HostBuilderSuite) TestHostClose() {
	var stops int
	host, err := NewHostBuilder().
		Options(
			provideHandler("handler"),
			fx.Invoke(func(l fx.Lifecycle) {
				l.Append(fx.Hook{
					OnStop: func(context.Context) error {
						stops++
						return nil
					},
				})
			}),
		).
		Build(context.Background())

	suite.Require().NoError(err)
	suite.Positive(host.StopTimeout())
	suite.NoError(host.Close(context.Background()))
	suite.NoError(host.Close(context.Background()))
	suite.Equal(1, stops)
}

func TestHostBuilder(t *testing.T) {
	suite.Run(t, new(HostBuilderSuite))
}
