package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wanderlands/backend/internal/model"
	"github.com/wanderlands/backend/pkg/errorx"
)

func (s *srv) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.authDomain.Register(s.ctx, &req)
	writeResponse(w, resp, err)
}

func (s *srv) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.authDomain.Login(s.ctx, &req)
	writeResponse(w, resp, err)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}

	return true
}

func writeResponse(w http.ResponseWriter, data any, err error) {
	w.Header().Set("Content-Type", "application/json")

	if err != nil {
		var xerr errorx.Error
		if !errors.As(err, &xerr) {
			xerr = errorx.Unknown
		}

		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": xerr})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}
