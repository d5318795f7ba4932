package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/udukunda1/usersvc/internal/handler/dto"
	"github.com/udukunda1/usersvc/internal/middleware"
	"github.com/udukunda1/usersvc/internal/service"
	"github.com/udukunda1/usersvc/internal/validation"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeObject(r.Body, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, errPayloadTooBig, msgPayloadTooBig)
			return
		}
		writeError(w, http.StatusBadRequest, errInvalidJSON, msgInvalidJSON)
		return
	}

	user, err := h.svc.CreateUser(r.Context(), service.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.handleServiceError(w, r, err, "An error occurred while creating the user")
		return
	}

	h.logger.Info("user_created",
		"user_id", user.ID,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing user ID", "User ID is required")
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err, "An error occurred while retrieving the user")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "An error occurred while retrieving users")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// handleServiceError maps service errors to HTTP responses.
// internalMessage is returned for anything unexpected; err itself is only logged.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, internalMessage string) {
	switch {
	case errors.Is(err, validation.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Missing required fields", "Both name and email are required")
	case errors.Is(err, validation.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "Invalid name", "Name must be a non-empty string")
	case errors.Is(err, validation.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "Invalid email", "Please provide a valid email address")
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusConflict, "Email already exists", "A user with this email already exists")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found", "No user found with the provided ID")
	default:
		h.logger.Error("internal_error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, errInternal, internalMessage)
	}
}

// errNotObject is returned for a body that is valid JSON but not a single object.
var errNotObject = errors.New("request body is not a JSON object")

// decodeObject decodes exactly one JSON object from body into dst.
// An empty body leaves dst untouched.
func decodeObject(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errNotObject
		}
		return err
	}

	return json.Unmarshal(raw, dst)
}
