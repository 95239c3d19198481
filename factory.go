// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/xmidt-org/apphost/apphosthttp"
	"github.com/xmidt-org/apphost/apphostroot"
	"github.com/xmidt-org/apphost/internal/apphostreflect"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// FactoryOption customizes a Factory when it is created.
type FactoryOption func(*Factory)

// WithResolver sets the strategy that turns the entry point into a HostBuilder.
// A nil Resolver means DefaultResolver.
func WithResolver(r Resolver) FactoryOption {
	return func(f *Factory) {
		f.resolver = r
	}
}

// WithContentRootResolver sets the strategy for locating the content root.
// A nil resolver means an apphostroot.Resolver rooted at the base directory.
func WithContentRootResolver(crr ContentRootResolver) FactoryOption {
	return func(f *Factory) {
		f.contentRoots = crr
	}
}

// WithServerFactory sets the strategy used to serve the host's handler.
// A nil ServerFactory means an in-memory apphosthttp.ServerConfig.
func WithServerFactory(sf apphosthttp.ServerFactory) FactoryOption {
	return func(f *Factory) {
		f.serverFactory = sf
	}
}

// WithClientConfig sets the configuration used by CreateClient.
func WithClientConfig(cfg apphosthttp.ClientConfig) FactoryOption {
	return func(f *Factory) {
		f.clientConfig = cfg
	}
}

// WithClientOptions adds options applied to every client's *http.Client.
// Each value is converted with apphosthttp.AsClientOption.
func WithClientOptions(opts ...any) FactoryOption {
	return func(f *Factory) {
		f.clientOptions.Add(opts...)
	}
}

// WithEnvironment sets the environment name for the host.
func WithEnvironment(name string) FactoryOption {
	return func(f *Factory) {
		f.environment = name
	}
}

// WithBaseDir sets the directory that support files and module-relative
// content roots are resolved against.  The default is the working directory.
func WithBaseDir(dir string) FactoryOption {
	return func(f *Factory) {
		f.baseDir = dir
	}
}

// WithSupportFiles adds files that must exist, relative to the base directory,
// before a host is built.
func WithSupportFiles(names ...string) FactoryOption {
	return func(f *Factory) {
		f.supportFiles = append(f.supportFiles, names...)
	}
}

// WithPrinter sets the fx.Printer for the factory's informational output.
// Unless WithEventLogger or WithZap is used, fx events go here too.
func WithPrinter(p fx.Printer) FactoryOption {
	return func(f *Factory) {
		f.printer = p
	}
}

// WithEventLogger sets the logger for the host's fx events.  Use
// fxevent.NopLogger to silence them.
func WithEventLogger(l fxevent.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = l
	}
}

// WithZap routes all of the factory's output, including fx events, through a zap logger.
func WithZap(l *zap.Logger) FactoryOption {
	return func(f *Factory) {
		if l != nil {
			f.printer = PrinterFunc(l.Sugar().Infof)
			f.logger = &fxevent.ZapLogger{Logger: l}
		}
	}
}

// WithHostOptions adds configuration callbacks applied to every host this
// factory builds, before any added with WithConfiguration.
func WithHostOptions(opts ...HostOption) FactoryOption {
	return func(f *Factory) {
		f.configure = append(f.configure, opts...)
	}
}

// Factory builds an application host on demand and creates clients bound to it.
// The host and its server are built once, the first time a client is requested.
//
// A Factory owns everything it creates.  Closing it closes all of its clients,
// all of its derived factories, its server and its host.
type Factory struct {
	id         uuid.UUID
	entrypoint any
	name       string

	resolver      Resolver
	contentRoots  ContentRootResolver
	serverFactory apphosthttp.ServerFactory
	clientConfig  apphosthttp.ClientConfig
	clientOptions apphosthttp.ClientOptions
	environment   string
	baseDir       string
	supportFiles  []string
	printer       fx.Printer
	logger        fxevent.Logger
	configure     []HostOption

	lock    sync.Mutex
	closed  bool
	host    *Host
	server  apphosthttp.Server
	clients []*apphosthttp.Client
	derived []*Factory
}

// New creates a Factory for an entry point.  Nothing is built until a client
// is requested.
func New(entrypoint any, opts ...FactoryOption) *Factory {
	f := &Factory{
		id:           uuid.New(),
		entrypoint:   entrypoint,
		name:         EntrypointName(entrypoint),
		clientConfig: apphosthttp.DefaultClientConfig(),
	}

	for _, o := range opts {
		o(f)
	}

	if len(f.baseDir) == 0 {
		f.baseDir, _ = os.Getwd()
	}

	f.resolver = apphostreflect.Safe[Resolver](f.resolver, DefaultResolver{})
	f.contentRoots = apphostreflect.Safe[ContentRootResolver](
		f.contentRoots,
		apphostroot.Resolver{BaseDir: f.baseDir},
	)

	f.serverFactory = apphostreflect.Safe[apphosthttp.ServerFactory](f.serverFactory, apphosthttp.ServerConfig{})
	f.printer = apphostreflect.Safe[fx.Printer](f.printer, DefaultPrinter())
	return f
}

// ID uniquely identifies this factory in log output.
func (f *Factory) ID() uuid.UUID {
	return f.id
}

// ClientConfig is the configuration used by CreateClient.
func (f *Factory) ClientConfig() apphosthttp.ClientConfig {
	return f.clientConfig
}

func (f *Factory) printf(template string, args ...interface{}) {
	f.printer.Printf(Prepend(Module, "[%s] "+template), append([]interface{}{f.id}, args...)...)
}

// Server returns the in-process server, or nil if it has not been built.
func (f *Factory) Server() apphosthttp.Server {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.server
}

// Host returns the running host, or nil if it has not been built.
func (f *Factory) Host() *Host {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.host
}

// Factories returns the factories derived from this one that are still owned by it.
// A derived factory that was closed on its own is no longer owned.
func (f *Factory) Factories() []*Factory {
	f.lock.Lock()
	defer f.lock.Unlock()

	// a child never takes its parent's lock, so parent then child is safe
	open := f.derived[:0]
	for _, d := range f.derived {
		if !d.isClosed() {
			open = append(open, d)
		}
	}

	clear(f.derived[len(open):])
	f.derived = open
	return append([]*Factory(nil), open...)
}

func (f *Factory) isClosed() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.closed
}

// configureHost resolves the entry point and applies this factory's
// configuration to the resulting builder.
func (f *Factory) configureHost() (*HostBuilder, error) {
	b, err := f.resolver.Resolve(f.entrypoint)
	if err != nil {
		return nil, err
	} else if b == nil {
		return nil, errNilBuilder
	}

	b.UseEnvironment(f.environment)
	if len(b.Environment().ContentRoot) == 0 {
		root, err := f.contentRoots.Resolve(f.name)
		if err != nil {
			return nil, err
		}

		b.UseContentRoot(root)
	}

	logger := f.logger
	if logger == nil {
		logger = NewEventLogger(f.printer)
	}

	b.UsePrinter(f.printer).UseLogger(logger)
	if err := Options[HostBuilder](f.configure).Apply(b); err != nil {
		return nil, err
	}

	return b, nil
}

// ensureServer builds the host and server if necessary.  The lock must be held.
// A failed build stores nothing, so a later call tries again.
func (f *Factory) ensureServer() (apphosthttp.Server, error) {
	switch {
	case f.closed:
		return nil, ErrClosed

	case f.server != nil:
		return f.server, nil
	}

	if err := checkSupportFiles(f.baseDir, f.supportFiles); err != nil {
		return nil, err
	}

	b, err := f.configureHost()
	if err != nil {
		return nil, f.configurationError(err)
	}

	host, err := b.Build(context.Background())
	if err != nil {
		return nil, f.configurationError(err)
	}

	server, err := f.serverFactory.NewServer(host.Handler())
	if err != nil {
		f.closeHost(host)
		return nil, f.configurationError(err)
	}

	env := host.Environment()
	f.printf("STARTED\t%s [environment=%s, contentRoot=%s, url=%s]", env.ApplicationName, env.Name, env.ContentRoot, server.URL())
	f.host, f.server = host, server
	return server, nil
}

func (f *Factory) configurationError(err error) error {
	ce := &ConfigurationError{
		Entrypoint: f.name,
		Err:        err,
	}

	f.printf("ERROR\t%s", ce.RootCause())
	return ce
}

func (f *Factory) closeHost(host *Host) error {
	ctx, cancel := context.WithTimeout(context.Background(), host.StopTimeout())
	defer cancel()
	return host.Close(ctx)
}

func (f *Factory) newClient(cfg apphosthttp.ClientConfig, chain apphosthttp.RoundTripperChain) (*apphosthttp.Client, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	server, err := f.ensureServer()
	if err != nil {
		return nil, err
	}

	c, err := apphosthttp.NewClient(server, cfg, chain, f.clientOptions...)
	if err != nil {
		return nil, err
	}

	f.clients = append(f.clients, c)
	return c, nil
}

// CreateClient creates a client using this factory's ClientConfig, building
// the host and server first if necessary.
func (f *Factory) CreateClient() (*apphosthttp.Client, error) {
	return f.newClient(f.clientConfig, apphosthttp.RoundTripperChain{})
}

// CreateClientWith creates a client with an explicit configuration.
func (f *Factory) CreateClientWith(cfg apphosthttp.ClientConfig) (*apphosthttp.Client, error) {
	return f.newClient(cfg, apphosthttp.RoundTripperChain{})
}

// CreateDefaultClient creates a client with apphosthttp.DefaultClientConfig whose
// requests pass through the given handlers.  The first handler sees each request
// first, and the last one delegates to the server.
func (f *Factory) CreateDefaultClient(handlers ...apphosthttp.RoundTripperConstructor) (*apphosthttp.Client, error) {
	return f.newClient(apphosthttp.DefaultClientConfig(), apphosthttp.NewRoundTripperChain(handlers...))
}

// CreateDefaultClientAt is CreateDefaultClient with a different base address.
func (f *Factory) CreateDefaultClientAt(base string, handlers ...apphosthttp.RoundTripperConstructor) (*apphosthttp.Client, error) {
	cfg := apphosthttp.DefaultClientConfig()
	cfg.BaseAddress = base
	return f.newClient(cfg, apphosthttp.NewRoundTripperChain(handlers...))
}

// WithConfiguration creates a factory for the same entry point whose host is
// configured by this factory's callbacks followed by opts.  The new factory
// builds its own server and is closed when this factory is closed.
//
// Deriving from a closed factory produces a closed factory.
func (f *Factory) WithConfiguration(opts ...HostOption) *Factory {
	f.lock.Lock()
	defer f.lock.Unlock()

	child := &Factory{
		id:            uuid.New(),
		entrypoint:    f.entrypoint,
		name:          f.name,
		resolver:      f.resolver,
		contentRoots:  f.contentRoots,
		serverFactory: f.serverFactory,
		clientConfig:  f.clientConfig,
		clientOptions: append(apphosthttp.ClientOptions(nil), f.clientOptions...),
		environment:   f.environment,
		baseDir:       f.baseDir,
		supportFiles:  append([]string(nil), f.supportFiles...),
		printer:       f.printer,
		logger:        f.logger,
		closed:        f.closed,
	}

	child.clientConfig.Header = f.clientConfig.Header.Clone()
	child.configure = make([]HostOption, 0, len(f.configure)+len(opts))
	child.configure = append(child.configure, f.configure...)
	child.configure = append(child.configure, opts...)

	if !f.closed {
		f.derived = append(f.derived, child)
		f.printf("DERIVED\t%s", child.id)
	}

	return child
}

// Close releases, in order, every client, every derived factory, the server
// and the host.  Each failure is logged and the remaining resources are still
// released.  Only the first call has any effect.
func (f *Factory) Close() (err error) {
	f.lock.Lock()
	if f.closed {
		f.lock.Unlock()
		return nil
	}

	f.closed = true
	clients, derived, server, host := f.clients, f.derived, f.server, f.host
	f.clients, f.derived, f.server, f.host = nil, nil, nil, nil
	f.lock.Unlock()

	for _, c := range clients {
		if cerr := c.Close(); cerr != nil {
			f.printf("ERROR\tclosing client: %s", cerr)
			err = multierr.Append(err, cerr)
		}
	}

	for _, d := range derived {
		if derr := d.Close(); derr != nil {
			f.printf("ERROR\tclosing factory %s: %s", d.id, derr)
			err = multierr.Append(err, derr)
		}
	}

	if server != nil {
		if serr := server.Close(); serr != nil {
			f.printf("ERROR\tclosing server: %s", serr)
			err = multierr.Append(err, serr)
		}
	}

	if host != nil {
		if herr := f.closeHost(host); herr != nil {
			f.printf("ERROR\tstopping host: %s", herr)
			err = multierr.Append(err, herr)
		}
	}

	f.printf("CLOSED")
	return
}
