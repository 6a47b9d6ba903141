// Package api defines the JSON bodies exchanged between chat front-ends and
// the tutor HTTP API.
package api

// Paths served by the backend.
const (
	PathAsk      = "/ask"
	PathSaveUser = "/save_user"
	PathContact  = "/contact"
	PathHealth   = "/healthz"
)

// AskRequest is the body of POST /ask. Every field is a string.
type AskRequest struct {
	Level    string `json:"level"    validate:"required"`
	Week     string `json:"week"     validate:"required"`
	Question string `json:"question" validate:"required"`
	Gender   string `json:"gender"   validate:"required"`
	Language string `json:"language" validate:"required"`
}

// AskResponse is the success body of POST /ask. Answer is a pointer so a
// body without the field can be told apart from an empty answer.
type AskResponse struct {
	Answer *string `json:"answer"`
}

// SaveUserRequest is the body of POST /save_user.
type SaveUserRequest struct {
	Name     string `json:"name,omitempty"`
	Level    string `json:"level"    validate:"required"`
	Week     string `json:"week"     validate:"required"`
	Gender   string `json:"gender"   validate:"required"`
	Language string `json:"language" validate:"required"`
}

// SaveUserResponse echoes the received learner data.
type SaveUserResponse struct {
	Message string          `json:"message"`
	Data    SaveUserRequest `json:"data"`
}

// ContactRequest is the body of POST /contact.
type ContactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ContactResponse carries the id of the stored contact message.
type ContactResponse struct {
	ID string `json:"id"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
