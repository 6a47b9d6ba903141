package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/edgard/arabictutor/internal/api"
	"github.com/edgard/arabictutor/internal/database"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.ErrorContext(r.Context(), "Health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req api.AskRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	answer, err := s.answerer.Answer(r.Context(), req)
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to answer question", "level", req.Level, "week", req.Week, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to answer question")
		return
	}

	writeJSON(w, http.StatusOK, api.AskResponse{Answer: &answer})
}

func (s *Server) handleSaveUser(w http.ResponseWriter, r *http.Request) {
	var req api.SaveUserRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	learner := &database.Learner{
		Name:     req.Name,
		Level:    req.Level,
		Week:     req.Week,
		Gender:   req.Gender,
		Language: req.Language,
	}
	if err := s.store.SaveLearner(r.Context(), learner); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to save learner", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save user data")
		return
	}

	writeJSON(w, http.StatusOK, api.SaveUserResponse{Message: "User data received!", Data: req})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req api.ContactRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg := &database.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := s.store.SaveContactMessage(r.Context(), msg); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to save contact message", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save contact message")
		return
	}

	s.log.InfoContext(r.Context(), "Contact message stored", "id", msg.ID, "email", msg.Email)
	writeJSON(w, http.StatusCreated, api.ContactResponse{ID: msg.ID})
}

// decode reads a JSON body into dst and validates its struct tags.
func (s *Server) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return fmt.Errorf("missing required fields: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}
