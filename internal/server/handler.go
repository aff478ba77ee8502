package server

import (
	"encoding/json"
	"net/http"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s Server) writeJsonResponse(w http.ResponseWriter, response any, statusCode int) {
	if resp, err := json.Marshal(response); err != nil {
		s.Logger.Errorf("Error encoding response: %+v, err: %v", response, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	} else {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(statusCode)
		if _, err = w.Write(resp); err != nil {
			s.Logger.Errorf("Error writing JSON response: %s, err: %v", resp, err)
		}
	}
}

func (s Server) writeMessage(w http.ResponseWriter, message string, statusCode int) {
	s.writeJsonResponse(w, messageResponse{Message: message}, statusCode)
}

// writeUpstreamError passes the upstream error message through to the caller.
// The source system leaked store and gateway messages this way; kept for
// compatibility and flagged in DESIGN.md.
func (s Server) writeUpstreamError(w http.ResponseWriter, err error) {
	s.writeMessage(w, err.Error(), http.StatusInternalServerError)
}
