package web

import (
	"context"
	"embed"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	filecms "github.com/goliatone/go-filecms"
	documentscmd "github.com/goliatone/go-filecms/internal/commands/documents"
	"github.com/goliatone/go-filecms/internal/credentials"
	"github.com/goliatone/go-filecms/internal/documents"
	"github.com/goliatone/go-filecms/internal/logging"
	"github.com/goliatone/go-filecms/internal/markdown"
	"github.com/goliatone/go-filecms/internal/sessions"
	"github.com/goliatone/go-filecms/pkg/interfaces"
)

//go:embed views/*.html views/layouts/*.html
var viewsFS embed.FS

const pruneInterval = 10 * time.Minute

// ServerOption overrides server construction defaults.
type ServerOption func(*Server)

// WithPruneInterval tunes how often the session janitor runs.
func WithPruneInterval(interval time.Duration) ServerOption {
	return func(s *Server) {
		if interval > 0 {
			s.prune = interval
		}
	}
}

// Server hosts the HTML surface: document listing, viewing, editing, and the
// signup/login/logout flows, all backed by the filecms module services.
type Server struct {
	app    *fiber.App
	logger interfaces.Logger

	docs     documents.Service
	creds    credentials.Service
	store    sessions.Store
	renderer *markdown.Renderer

	cookie string
	prune  time.Duration
	quit   chan struct{}

	create   *documentscmd.CreateDocumentHandler
	save     *documentscmd.SaveDocumentHandler
	remove   *documentscmd.DeleteDocumentHandler
	register *documentscmd.RegisterAccountHandler
}

// NewServer wires the HTTP surface on top of a constructed filecms module.
func NewServer(module *filecms.Module, opts ...ServerOption) (*Server, error) {
	cfg := module.Config()

	engine := html.NewFileSystem(http.FS(viewsFS), ".html")

	logger := module.Logger(logging.WebModule)

	s := &Server{
		logger:   logger,
		docs:     module.Documents(),
		creds:    module.Credentials(),
		store:    module.Sessions(),
		renderer: module.Renderer(),
		cookie:   cfg.Sessions.CookieName,
		prune:    pruneInterval,
		quit:     make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	cmdLogger := module.Logger(logging.CommandsModule)
	s.create = documentscmd.NewCreateDocumentHandler(s.docs, cmdLogger)
	s.save = documentscmd.NewSaveDocumentHandler(s.docs, cmdLogger)
	s.remove = documentscmd.NewDeleteDocumentHandler(s.docs, cmdLogger)
	s.register = documentscmd.NewRegisterAccountHandler(s.creds, cmdLogger)

	s.app = fiber.New(fiber.Config{
		AppName:               cfg.Server.AppName,
		Views:                 engine,
		ViewsLayout:           "views/layouts/main",
		PassLocalsToViews:     true,
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	s.app.Use(s.sessionMiddleware())
	s.routes()

	return s, nil
}

// App exposes the fiber application, primarily for tests driving app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) routes() {
	s.app.Get("/", s.handleIndex)
	s.app.Get("/login", s.handleLoginForm)
	s.app.Post("/login", s.handleLoginForm)
	s.app.Get("/signup", s.handleSignupForm)
	s.app.Post("/signup", s.handleSignupForm)
	s.app.Post("/create-user", s.handleCreateUser)
	s.app.Post("/verify", s.handleVerify)
	s.app.Post("/logout", s.handleLogout)
	s.app.Get("/new", s.requireUser, s.handleNewForm)
	s.app.Post("/new/create", s.requireUser, s.handleCreateDocument)
	s.app.Post("/", s.requireUser, s.handleSaveEdit)
	s.app.Get("/:file", s.handleViewDocument)
	s.app.Get("/:file/edit", s.requireUser, s.handleBeginEdit)
	s.app.Post("/:file/delete", s.requireUser, s.handleDeleteDocument)
}

// Serve blocks listening on addr until Shutdown is called. A janitor
// goroutine prunes expired sessions while the listener runs.
func (s *Server) Serve(addr string) error {
	if pruner, ok := s.store.(sessions.Pruner); ok {
		go s.janitor(pruner)
	}

	s.logger.Info("server.listen", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the listener and the session janitor.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.quit)
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) janitor(pruner sessions.Pruner) {
	ticker := time.NewTicker(s.prune)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := pruner.PruneExpired(); removed > 0 {
				s.logger.Debug("sessions.pruned", "count", removed)
			}
		case <-s.quit:
			return
		}
	}
}

// errorHandler is the last resort: store corruption and filesystem failures
// are the only errors allowed to surface as a raw response.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if fiberErr, ok := err.(*fiber.Error); ok {
		return c.Status(fiberErr.Code).SendString(fiberErr.Message)
	}

	s.logger.Error("request.failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
}
