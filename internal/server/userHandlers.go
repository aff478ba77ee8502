package server

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"bazario/internal/database"
)

// userUpsert is the login touch. It is deliberately unauthenticated: the
// frontend calls it right after the identity provider signs a user in, before
// any token round-trip.
func (s Server) userUpsert() http.HandlerFunc {
	type request struct {
		Email string `json:"email"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("userUpsert: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if _, err := mail.ParseAddress(req.Email); err != nil {
			s.Logger.Debugf("userUpsert: Invalid email: %q, err: %v", req.Email, err)
			http.Error(w, "Invalid email", http.StatusBadRequest)
			return
		}

		res, err := s.DB.UserUpsertByEmail(r.Context(), req.Email)
		if err != nil {
			s.Logger.Errorf("userUpsert: Error upserting User with email: %s, err: %v", req.Email, err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, res, http.StatusOK)
	}
}

func (s Server) userRoleGet() http.HandlerFunc {
	type response struct {
		Role string `json:"role"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		email := mux.Vars(r)["email"]
		u, err := s.DB.UserFindByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				s.Logger.Debugf("userRoleGet: No User found with email: %s", email)
				s.writeMessage(w, "user not found", http.StatusNotFound)
				return
			}
			s.Logger.Errorf("userRoleGet: Error finding User with email: %s, err: %v", email, err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, response{Role: u.Role}, http.StatusOK)
	}
}

func (s Server) userRoleUpdate() http.HandlerFunc {
	type request struct {
		Role string `json:"role"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		email := mux.Vars(r)["email"]

		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("userRoleUpdate: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.Role == "" {
			s.Logger.Debugf("userRoleUpdate: Empty role for User with email: %s", email)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		res, err := s.DB.UserRoleUpdate(r.Context(), email, req.Role)
		if err != nil {
			s.Logger.Errorf("userRoleUpdate: Error updating role of User with email: %s, err: %v", email, err)
			s.writeUpstreamError(w, err)
			return
		}
		if res.MatchedCount == 0 {
			s.Logger.Debugf("userRoleUpdate: No User found with email: %s", email)
			s.writeMessage(w, "user not found", http.StatusNotFound)
			return
		}
		s.writeJsonResponse(w, res, http.StatusOK)
	}
}

func (s Server) userGetAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		us, err := s.DB.UsersFindAll(r.Context())
		if err != nil {
			s.Logger.Errorf("userGetAll: Error finding Users, err: %v", err)
			s.writeUpstreamError(w, err)
			return
		}
		if us == nil {
			us = []database.User{}
		}
		s.writeJsonResponse(w, us, http.StatusOK)
	}
}
