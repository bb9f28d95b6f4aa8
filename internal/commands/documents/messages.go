package documentscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	createDocumentMessageType  = "filecms.documents.create"
	saveDocumentMessageType    = "filecms.documents.save"
	deleteDocumentMessageType  = "filecms.documents.delete"
	registerAccountMessageType = "filecms.accounts.register"
)

// CreateDocumentCommand creates an empty document under the store root.
// Name-level policy (empty name, missing extension) is deliberately left to
// the document store so the router can translate those failures into form
// flashes; validation here only rejects messages no caller should produce.
type CreateDocumentCommand struct {
	// Name is the filename including extension, e.g. "notes.md".
	Name string `json:"name"`
}

// Type implements command.Message.
func (CreateDocumentCommand) Type() string { return createDocumentMessageType }

// SaveDocumentCommand overwrites a document with the submitted content.
type SaveDocumentCommand struct {
	// Name is the target document, resolved by the router before dispatch.
	Name string `json:"name"`
	// Content replaces the document body in full.
	Content string `json:"content"`
}

// Type implements command.Message.
func (SaveDocumentCommand) Type() string { return saveDocumentMessageType }

// Validate ensures the save target was resolved before handlers execute.
func (cmd SaveDocumentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Name, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("filecms.documents.save.name_required", "target document is required")
			}
			return nil
		})),
	)
}

// DeleteDocumentCommand removes a document from the store.
type DeleteDocumentCommand struct {
	// Name is the filename including extension.
	Name string `json:"name"`
}

// Type implements command.Message.
func (DeleteDocumentCommand) Type() string { return deleteDocumentMessageType }

// Validate ensures a target name is present before handlers execute.
func (cmd DeleteDocumentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Name, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("filecms.documents.delete.name_required", "target document is required")
			}
			return nil
		})),
	)
}

// RegisterAccountCommand creates (or overwrites) a credential entry.
type RegisterAccountCommand struct {
	// Username keys the credential entry.
	Username string `json:"username"`
	// Password is hashed before persistence and never stored in clear.
	Password string `json:"-"`
}

// Type implements command.Message.
func (RegisterAccountCommand) Type() string { return registerAccountMessageType }

// Validate rejects blank usernames and passwords before handlers execute.
func (cmd RegisterAccountCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Username, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("filecms.accounts.register.username_required", "username is required")
			}
			return nil
		})),
		validation.Field(&cmd.Password, validation.Required),
	)
}
