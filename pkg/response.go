package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
}{
	JSON: "application/json",
	Text: "text/plain",
}

func WriteResponse(w http.ResponseWriter, contentType, message string, statusCode int) {
	WriteResponseBytes(w, contentType, []byte(message), statusCode)
}

func WriteTextResponseOK(w http.ResponseWriter, message string) {
	WriteResponseBytesOK(w, ContentType.Text, []byte(message))
}

func WriteJSONResponseOK(w http.ResponseWriter, message string) {
	WriteResponseBytesOK(w, ContentType.JSON, []byte(message))
}

func WriteResponseBytesOK(w http.ResponseWriter, contentType string, message []byte) {
	WriteResponseBytes(w, contentType, message, http.StatusOK)
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Add("Content-Type", contentType)
	}

	w.WriteHeader(statusCode)

	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%s]: %s", message, err)
	}
}

// SendJsonResponse marshals the given payload and writes it with the given status code.
func SendJsonResponse(w http.ResponseWriter, statusCode int, payload any) {
	respJson, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("failed to marshal response [%v]: %s", payload, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respJson, statusCode)
}

// SendJsonMessage writes a {"message": ...} body, the shape used by all
// API error and confirmation responses.
func SendJsonMessage(w http.ResponseWriter, statusCode int, message string) {
	SendJsonResponse(w, statusCode, struct {
		Message string `json:"message"`
	}{Message: message})
}
