package tadow

import (
	"log"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/advdv/tadow"

// App is the request pipeline. It is a [Router] for the endpoints it serves and holds the codec registry, the
// middleware and the exception handlers. Everything must be registered before the first call to
// [App.Serve], after that the app is read-only and may serve requests concurrently.
type App struct {
	*Router

	cfg         Config
	codecs      *Codecs
	dispatcher  Dispatcher
	middlewares chain
	exceptions  *Exceptions
	logs        Logger
	tracer      trace.Tracer
}

// Option configures an [App].
type Option func(*appOptions)

type appOptions struct {
	cfg         Config
	prefix      string
	dispatcher  Dispatcher
	logs        Logger
	tracerProv  trace.TracerProvider
	middlewares []Middleware
}

// WithConfig sets the configuration, [DefaultConfig] is used otherwise.
func WithConfig(cfg Config) Option {
	return func(o *appOptions) { o.cfg = cfg }
}

// WithPrefix sets the mount prefix of the app's own endpoints.
func WithPrefix(prefix string) Option {
	return func(o *appOptions) { o.prefix = prefix }
}

// WithDispatcher replaces the [RegexDispatcher].
func WithDispatcher(d Dispatcher) Option {
	return func(o *appOptions) { o.dispatcher = d }
}

// WithLogger sets the logger, by default the standard library's default logger is used.
func WithLogger(l Logger) Option {
	return func(o *appOptions) { o.logs = l }
}

// WithTracerProvider traces every pipeline run as a span, by default nothing is traced.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *appOptions) { o.tracerProv = tp }
}

// WithMiddleware registers middleware, like [App.Use].
func WithMiddleware(mw ...Middleware) Option {
	return func(o *appOptions) { o.middlewares = append(o.middlewares, mw...) }
}

// New creates an app.
func New(opts ...Option) (*App, error) {
	o := appOptions{
		cfg:        DefaultConfig(),
		dispatcher: NewRegexDispatcher(),
		logs:       NewStdLogger(log.Default()),
		tracerProv: noop.NewTracerProvider(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.cfg.withDefaults()
	codecs, err := NewCodecs(cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Router:      NewRouter(o.prefix),
		cfg:         cfg,
		codecs:      codecs,
		dispatcher:  o.dispatcher,
		middlewares: o.middlewares,
		exceptions:  NewExceptions(),
		logs:        o.logs,
		tracer:      o.tracerProv.Tracer(tracerName),
	}, nil
}

// Config returns the configuration the app was created with.
func (a *App) Config() Config { return a.cfg }

// Codecs returns the codec registry.
func (a *App) Codecs() *Codecs { return a.codecs }

func (a *App) freeze() {
	a.Router.freeze()
	a.codecs.freeze()
}

// Use allows providing of middleware.
func (a *App) Use(mw ...Middleware) {
	a.ensureNotFrozen()
	a.middlewares = append(a.middlewares, mw...)
}

// RegisterCodec binds a codec to a content type, replacing any earlier binding.
func (a *App) RegisterCodec(contentType string, c Codec) {
	a.ensureNotFrozen()
	a.codecs.Register(contentType, c)
}

// ExceptionHandler registers the handler for errors of the category. Replacing an existing handler,
// including the default one for [CategoryValidation], requires override.
func (a *App) ExceptionHandler(cat Category, h ExceptionHandler, override bool) error {
	a.ensureNotFrozen()
	return a.exceptions.Register(cat, h, override)
}
