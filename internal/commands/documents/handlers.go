package documentscmd

import (
	"context"

	"github.com/goliatone/go-filecms/internal/commands"
	"github.com/goliatone/go-filecms/internal/credentials"
	"github.com/goliatone/go-filecms/internal/documents"
	"github.com/goliatone/go-filecms/internal/logging"
	"github.com/goliatone/go-filecms/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	createOperation   = "documents.create"
	saveOperation     = "documents.save"
	deleteOperation   = "documents.delete"
	registerOperation = "accounts.register"
)

var (
	_ command.Commander[CreateDocumentCommand]  = (*CreateDocumentHandler)(nil)
	_ command.Commander[SaveDocumentCommand]    = (*SaveDocumentHandler)(nil)
	_ command.Commander[DeleteDocumentCommand]  = (*DeleteDocumentHandler)(nil)
	_ command.Commander[RegisterAccountCommand] = (*RegisterAccountHandler)(nil)
)

// CreateDocumentHandler creates empty documents via the shared command foundation.
type CreateDocumentHandler struct {
	inner *commands.Handler[CreateDocumentCommand]
}

// NewCreateDocumentHandler creates a handler bound to the supplied document store.
func NewCreateDocumentHandler(service documents.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateDocumentCommand]) *CreateDocumentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CreateDocumentCommand) error {
		if err := service.Create(ctx, msg.Name); err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"document": msg.Name,
		}).Info("documents.command.create.completed")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[CreateDocumentCommand]{
		commands.WithLogger[CreateDocumentCommand](baseLogger),
		commands.WithOperation[CreateDocumentCommand](createOperation),
	}, opts...)

	return &CreateDocumentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *CreateDocumentHandler) Execute(ctx context.Context, msg CreateDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SaveDocumentHandler persists edited document content.
type SaveDocumentHandler struct {
	inner *commands.Handler[SaveDocumentCommand]
}

// NewSaveDocumentHandler creates a handler bound to the supplied document store.
func NewSaveDocumentHandler(service documents.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SaveDocumentCommand]) *SaveDocumentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SaveDocumentCommand) error {
		if err := service.Put(ctx, msg.Name, []byte(msg.Content)); err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"document": msg.Name,
			"bytes":    len(msg.Content),
		}).Info("documents.command.save.completed")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[SaveDocumentCommand]{
		commands.WithLogger[SaveDocumentCommand](baseLogger),
		commands.WithOperation[SaveDocumentCommand](saveOperation),
	}, opts...)

	return &SaveDocumentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *SaveDocumentHandler) Execute(ctx context.Context, msg SaveDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteDocumentHandler removes documents from the store.
type DeleteDocumentHandler struct {
	inner *commands.Handler[DeleteDocumentCommand]
}

// NewDeleteDocumentHandler creates a handler bound to the supplied document store.
func NewDeleteDocumentHandler(service documents.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteDocumentCommand]) *DeleteDocumentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeleteDocumentCommand) error {
		if err := service.Delete(ctx, msg.Name); err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"document": msg.Name,
		}).Info("documents.command.delete.completed")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[DeleteDocumentCommand]{
		commands.WithLogger[DeleteDocumentCommand](baseLogger),
		commands.WithOperation[DeleteDocumentCommand](deleteOperation),
	}, opts...)

	return &DeleteDocumentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *DeleteDocumentHandler) Execute(ctx context.Context, msg DeleteDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RegisterAccountHandler creates credential entries.
type RegisterAccountHandler struct {
	inner *commands.Handler[RegisterAccountCommand]
}

// NewRegisterAccountHandler creates a handler bound to the credential service.
func NewRegisterAccountHandler(service credentials.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RegisterAccountCommand]) *RegisterAccountHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RegisterAccountCommand) error {
		if err := service.Register(ctx, msg.Username, msg.Password); err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"username": msg.Username,
		}).Info("accounts.command.register.completed")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[RegisterAccountCommand]{
		commands.WithLogger[RegisterAccountCommand](baseLogger),
		commands.WithOperation[RegisterAccountCommand](registerOperation),
	}, opts...)

	return &RegisterAccountHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *RegisterAccountHandler) Execute(ctx context.Context, msg RegisterAccountCommand) error {
	return h.inner.Execute(ctx, msg)
}
