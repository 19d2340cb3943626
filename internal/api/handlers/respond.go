package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse тело ответа с сообщением (например, после удаления)
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrEmptyBody возвращается DecodeJSON для запроса без тела
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	return err
}

// RespondJSON пишет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // соединение могло быть закрыто клиентом
		json.NewEncoder(w).Encode(v)
	}
}

// RespondError пишет ошибку вида {"error": "..."}
func RespondError(w http.ResponseWriter, status int, errText string) {
	RespondJSON(w, status, ErrorResponse{Error: errText})
}

// RespondErrorMessage пишет ошибку вида {"error": "...", "message": "..."}
func RespondErrorMessage(w http.ResponseWriter, status int, errText, message string) {
	RespondJSON(w, status, ErrorResponse{Error: errText, Message: message})
}

// RespondMessage пишет {"message": "..."}
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, MessageResponse{Message: message})
}

func RespondBadRequest(w http.ResponseWriter, errText string) {
	RespondError(w, http.StatusBadRequest, errText)
}

func RespondNotFound(w http.ResponseWriter, errText string) {
	RespondError(w, http.StatusNotFound, errText)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondErrorMessage(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
}
