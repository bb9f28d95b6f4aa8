package filecms

import (
	"github.com/goliatone/go-filecms/internal/credentials"
	"github.com/goliatone/go-filecms/internal/documents"
	"github.com/goliatone/go-filecms/internal/logging"
	"github.com/goliatone/go-filecms/internal/logging/gologger"
	"github.com/goliatone/go-filecms/internal/markdown"
	"github.com/goliatone/go-filecms/internal/sessions"
	"github.com/goliatone/go-filecms/pkg/interfaces"
)

// DocumentService exports the document store contract for consumers of the
// filecms package.
type DocumentService = documents.Service

// CredentialService exports the credential service contract.
type CredentialService = credentials.Service

// SessionStore exports the session store contract.
type SessionStore = sessions.Store

// Option overrides a collaborator during module construction.
type Option func(*Module)

// WithLoggerProvider injects a logger provider; the default is built from
// Config.Logging via go-logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.loggers = provider
		}
	}
}

// WithMarkdownParser overrides the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(m *Module) {
		if parser != nil {
			m.parser = parser
		}
	}
}

// WithSessionStore swaps the in-memory session store for a custom one.
func WithSessionStore(store sessions.Store) Option {
	return func(m *Module) {
		if store != nil {
			m.sessions = store
		}
	}
}

// Module is the top level filecms runtime façade wiring the document store,
// credential service, session store, and renderer together.
type Module struct {
	cfg Config

	loggers  interfaces.LoggerProvider
	parser   interfaces.MarkdownParser
	sessions sessions.Store

	documents   documents.Service
	credentials credentials.Service
	store       *credentials.Store
	renderer    *markdown.Renderer
}

// New constructs a filecms module from the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.loggers == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		m.loggers = provider
	}

	docs, err := documents.NewService(cfg.Documents.Root)
	if err != nil {
		return nil, err
	}
	m.documents = docs

	store, err := credentials.NewStore(cfg.Credentials.Path)
	if err != nil {
		return nil, err
	}
	m.store = store

	var credOpts []credentials.ServiceOption
	if cfg.Credentials.BcryptCost > 0 {
		credOpts = append(credOpts, credentials.WithBcryptCost(cfg.Credentials.BcryptCost))
	}
	creds, err := credentials.NewService(store, credOpts...)
	if err != nil {
		return nil, err
	}
	m.credentials = creds

	if m.sessions == nil {
		m.sessions = sessions.NewMemoryStore(sessions.WithTTL(cfg.Sessions.TTL))
	}

	if m.parser == nil {
		m.parser = markdown.NewGoldmarkParser(cfg.Markdown.Parser)
	}
	m.renderer = markdown.NewRenderer(m.parser)

	return m, nil
}

// Config returns the validated configuration the module was built from.
func (m *Module) Config() Config {
	return m.cfg
}

// Documents returns the configured document store.
func (m *Module) Documents() DocumentService {
	return m.documents
}

// Credentials returns the configured credential service.
func (m *Module) Credentials() CredentialService {
	return m.credentials
}

// CredentialStore returns the file-level credential store, exposed so hosts
// can seed the backing file on first run.
func (m *Module) CredentialStore() *credentials.Store {
	return m.store
}

// Sessions returns the configured session store.
func (m *Module) Sessions() SessionStore {
	return m.sessions
}

// Renderer returns the document renderer.
func (m *Module) Renderer() *markdown.Renderer {
	return m.renderer
}

// Logger returns a module-scoped logger from the configured provider.
func (m *Module) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(m.loggers, module)
}

// LoggerProvider exposes the configured provider for integrators.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.loggers
}
