// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

const (
	// SettingsName is the base name of the settings files a host loads
	// from its content root.
	SettingsName = "appsettings"
)

// settingsExtensions are tried in order for each settings file.  The first
// one found wins.
var settingsExtensions = []string{"yaml", "yml", "json", "toml"}

// HostOption is a configuration callback for a HostBuilder.  Factories
// accumulate these and apply them in order.
type HostOption = Option[HostBuilder]

// AsHostOption converts a closure into a HostOption.
func AsHostOption[F OptionClosure[HostBuilder]](f F) HostOption {
	return AsOption[HostBuilder](f)
}

// UseEnvironment is a HostOption that sets the environment name.
func UseEnvironment(name string) HostOption {
	return AsHostOption(func(b *HostBuilder) {
		b.UseEnvironment(name)
	})
}

// UseContentRoot is a HostOption that sets the content root.
func UseContentRoot(dir string) HostOption {
	return AsHostOption(func(b *HostBuilder) {
		b.UseContentRoot(dir)
	})
}

// UseSetting is a HostOption that sets a single configuration value.
// Settings given this way override any settings files.
func UseSetting(key string, value any) HostOption {
	return AsHostOption(func(b *HostBuilder) {
		b.UseSetting(key, value)
	})
}

// UseOptions is a HostOption that appends fx options, e.g. fx.Replace or
// fx.Decorate to substitute test doubles.
func UseOptions(o ...fx.Option) HostOption {
	return AsHostOption(func(b *HostBuilder) {
		b.Options(o...)
	})
}

// UseMiddleware is a HostOption that appends server-side middleware.
func UseMiddleware(m ...alice.Constructor) HostOption {
	return AsHostOption(func(b *HostBuilder) {
		b.Middleware(m...)
	})
}

// HostBuilder describes how to construct an application host.  Entry points
// produce one through a Resolver, and factories layer configuration on top.
type HostBuilder struct {
	environment     string
	applicationName string
	contentRoot     string

	v              *viper.Viper
	decoderOptions []viper.DecoderConfigOption
	options        []fx.Option
	middleware     []alice.Constructor

	printer fx.Printer
	logger  fxevent.Logger
}

// NewHostBuilder creates an empty HostBuilder in the Development environment.
func NewHostBuilder() *HostBuilder {
	return &HostBuilder{
		environment: Development,
		v:           viper.New(),
	}
}

// UseEnvironment sets the environment name.  An empty name is ignored.
func (b *HostBuilder) UseEnvironment(name string) *HostBuilder {
	if len(name) > 0 {
		b.environment = name
	}

	return b
}

// UseApplicationName sets the application name.
func (b *HostBuilder) UseApplicationName(name string) *HostBuilder {
	b.applicationName = name
	return b
}

// UseContentRoot sets the directory settings files and static content are read from.
func (b *HostBuilder) UseContentRoot(dir string) *HostBuilder {
	b.contentRoot = dir
	return b
}

// UseSetting sets a configuration value.  Explicit settings take precedence
// over settings files and defaults.
func (b *HostBuilder) UseSetting(key string, value any) *HostBuilder {
	b.settings().Set(key, value)
	return b
}

// UsePrinter sets the fx.Printer supplied to the application.  The host's
// Unmarshaler logs through it.
func (b *HostBuilder) UsePrinter(p fx.Printer) *HostBuilder {
	b.printer = p
	return b
}

// UseLogger sets the logger for fx container events.  A nil logger, which
// is the default, silences those events.
func (b *HostBuilder) UseLogger(l fxevent.Logger) *HostBuilder {
	b.logger = l
	return b
}

// Decoders appends options used by the host's Unmarshaler.
func (b *HostBuilder) Decoders(o ...viper.DecoderConfigOption) *HostBuilder {
	b.decoderOptions = append(b.decoderOptions, o...)
	return b
}

// Options appends fx options to the application.
func (b *HostBuilder) Options(o ...fx.Option) *HostBuilder {
	b.options = append(b.options, o...)
	return b
}

// Middleware appends server-side middleware.  The first constructor is the
// outermost, as with alice.New.
func (b *HostBuilder) Middleware(m ...alice.Constructor) *HostBuilder {
	b.middleware = append(b.middleware, m...)
	return b
}

// Viper returns the settings this builder will supply to the application.
func (b *HostBuilder) Viper() *viper.Viper {
	return b.settings()
}

// settings lazily creates the viper instance, so that a zero value
// HostBuilder is usable.
func (b *HostBuilder) settings() *viper.Viper {
	if b.v == nil {
		b.v = viper.New()
	}

	return b.v
}

// environmentName returns the environment, defaulting to Development.
func (b *HostBuilder) environmentName() string {
	if len(b.environment) == 0 {
		return Development
	}

	return b.environment
}

// Environment returns the HostEnvironment as currently configured.
func (b *HostBuilder) Environment() HostEnvironment {
	return HostEnvironment{
		Name:            b.environmentName(),
		ApplicationName: b.applicationName,
		ContentRoot:     b.contentRoot,
	}
}

// findSettings returns the first settings file with the given base name
// in the content root, or the empty string if there is none.
func (b *HostBuilder) findSettings(name string) string {
	for _, ext := range settingsExtensions {
		path := filepath.Join(b.contentRoot, name+"."+ext)
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}

	return ""
}

// loadSettings merges the base settings file followed by the
// environment's settings file, when either exists.
func (b *HostBuilder) loadSettings() error {
	if len(b.contentRoot) == 0 {
		return nil
	}

	for _, name := range []string{SettingsName, SettingsName + "." + b.environmentName()} {
		path := b.findSettings(name)
		if len(path) == 0 {
			continue
		}

		fv := viper.New()
		fv.SetConfigFile(path)
		if err := fv.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read settings file [%s]: %w", path, err)
		}

		if err := b.settings().MergeConfigMap(fv.AllSettings()); err != nil {
			return fmt.Errorf("unable to merge settings file [%s]: %w", path, err)
		}

		if b.printer != nil {
			b.printer.Printf("SETTINGS\t%s", path)
		}
	}

	return nil
}

// HandlerIn is the set of components a host looks for to serve requests.
// An http.Handler takes precedence over a *mux.Router.
type HandlerIn struct {
	fx.In

	Handler http.Handler `optional:"true"`
	Router  *mux.Router  `optional:"true"`
}

func (hi HandlerIn) handler() http.Handler {
	switch {
	case hi.Handler != nil:
		return hi.Handler

	case hi.Router != nil:
		return hi.Router

	default:
		return nil
	}
}

// Build loads settings, creates and starts the fx application.  If the
// application cannot be created or started, no Host is returned and any
// partially started components have been stopped.
func (b *HostBuilder) Build(ctx context.Context) (*Host, error) {
	if err := b.loadSettings(); err != nil {
		return nil, err
	}

	var (
		env     = b.Environment()
		handler http.Handler
		logger  = b.logger
	)

	if logger == nil {
		logger = fxevent.NopLogger
	}

	options := []fx.Option{
		fx.WithLogger(func() fxevent.Logger { return logger }),
		ForViper(b.settings(), b.decoderOptions...),
		fx.Supply(env),
	}

	if b.printer != nil {
		p := b.printer
		options = append(options, fx.Provide(func() fx.Printer { return p }))
	}

	options = append(options, b.options...)
	options = append(options,
		fx.Invoke(func(in HandlerIn) {
			handler = in.handler()
		}),
	)

	app := fx.New(options...)
	if err := app.Err(); err != nil {
		return nil, err
	}

	if handler == nil {
		return nil, ErrNoHandler
	}

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()

	// fx stops any hooks that did start when Start fails
	if err := app.Start(startCtx); err != nil {
		return nil, err
	}

	return &Host{
		app:         app,
		handler:     alice.New(b.middleware...).Then(handler),
		environment: env,
	}, nil
}
