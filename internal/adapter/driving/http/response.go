package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/leadbot/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it with the given status code. If
// marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// EventRequest is the JSON body for the inbound event endpoint. Exactly one
// of Command or Action must be set.
type EventRequest struct {
	Identity string `json:"identity"`
	Command  string `json:"command,omitempty"`
	Args     string `json:"args,omitempty"`
	Action   string `json:"action,omitempty"`
}

// ScreenResponse is the JSON representation of a rendered screen.
type ScreenResponse struct {
	Text    string             `json:"text"`
	Buttons [][]ButtonResponse `json:"buttons"`
}

// ButtonResponse is a single button within a screen.
type ButtonResponse struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// HealthResponse is the JSON representation of the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// toScreenResponse converts a domain screen to its JSON representation.
// Buttons is always a non-nil array for transport convenience.
func toScreenResponse(s model.Screen) ScreenResponse {
	rows := make([][]ButtonResponse, 0, len(s.Buttons))
	for _, row := range s.Buttons {
		buttons := make([]ButtonResponse, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, ButtonResponse{Label: b.Label, Action: b.Action})
		}
		rows = append(rows, buttons)
	}
	return ScreenResponse{Text: s.Text, Buttons: rows}
}
