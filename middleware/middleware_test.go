// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/ballot-workflow/auth"
	"github.com/danielhkuo/ballot-workflow/models"
)

func TestWithLogging(t *testing.T) {
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"proposal_id":0}`))
	}

	req := httptest.NewRequest("POST", "/proposals", nil)
	req.Header.Set(HeaderPrincipal, "0xvoter1")
	w := httptest.NewRecorder()

	WithLogging(testHandler)(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called")
	}
	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if w.Body.String() != `{"proposal_id":0}` {
		t.Errorf("Expected body to pass through, got '%s'", w.Body.String())
	}
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		message       string
		expectedError string
	}{
		{"bad request", http.StatusBadRequest, "description is required", "Bad Request"},
		{"forbidden", http.StatusForbidden, "caller is not the administrator", "Forbidden"},
		{"not found", http.StatusNotFound, "invalid proposal", "Not Found"},
		{"conflict", http.StatusConflict, "voter has already voted", "Conflict"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			ErrorResponse(w, tc.statusCode, tc.message)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Header().Get("Content-Type") != "application/json" {
				t.Error("Expected Content-Type 'application/json'")
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tc.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectedError, resp.Error)
			}
			if resp.Message != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, resp.Message)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"principals":["0xa","0xb"]}`))

		var parsed models.RegisterVotersRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(parsed.Principals) != 2 || parsed.Principals[1] != "0xb" {
			t.Errorf("Unexpected principals %v", parsed.Principals)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{invalid json}`))

		var parsed models.RegisterVotersRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.VoteRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for empty body")
		}
	})

	t.Run("missing proposal id stays nil", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))

		var parsed models.VoteRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.ProposalID != nil {
			t.Errorf("Expected nil proposal_id, got %d", *parsed.ProposalID)
		}
	})
}

func TestCallerFromRequest(t *testing.T) {
	salt := "test-salt"

	testCases := []struct {
		name      string
		principal string
		signature string
		wantErr   error
	}{
		{"valid", "0xvoter1", auth.SignPrincipal("0xvoter1", salt), nil},
		{"missing principal", "", auth.SignPrincipal("0xvoter1", salt), auth.ErrMissingPrincipal},
		{"missing signature", "0xvoter1", "", auth.ErrInvalidSignature},
		{"signature for someone else", "0xvoter1", auth.SignPrincipal("0xadmin", salt), auth.ErrInvalidSignature},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/votes", nil)
			if tc.principal != "" {
				req.Header.Set(HeaderPrincipal, tc.principal)
			}
			if tc.signature != "" {
				req.Header.Set(HeaderSignature, tc.signature)
			}

			caller, err := CallerFromRequest(req, salt)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Expected error %v, got %v", tc.wantErr, err)
			}
			if err == nil && string(caller) != tc.principal {
				t.Errorf("Expected caller %q, got %q", tc.principal, caller)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})
	corsHandler := CORS(nextHandler)

	t.Run("preflight OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/votes", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Body.String() != "" {
			t.Errorf("Expected empty body for preflight, got '%s'", w.Body.String())
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
			t.Error("Expected Access-Control-Allow-Origin to match request origin")
		}

		allowed := w.Header().Get("Access-Control-Allow-Headers")
		for _, h := range []string{"Content-Type", HeaderPrincipal, HeaderSignature} {
			if !strings.Contains(allowed, h) {
				t.Errorf("Expected %s in allowed headers", h)
			}
		}
	})

	t.Run("request without origin defaults to wildcard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/status", nil)
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Body.String() != "handled" {
			t.Error("Expected next handler to be called")
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected Access-Control-Allow-Origin to default to '*'")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{"X-Forwarded-For chain", map[string]string{"X-Forwarded-For": "192.168.1.100, 10.0.0.1"}, "127.0.0.1:12345", "192.168.1.100"},
		{"X-Real-IP", map[string]string{"X-Real-IP": "203.0.113.50"}, "10.0.0.1:12345", "203.0.113.50"},
		{"RemoteAddr with port", map[string]string{}, "192.168.1.50:54321", "192.168.1.50"},
		{"RemoteAddr without port", map[string]string{}, "192.168.1.50", "192.168.1.50"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, got)
			}
		})
	}
}
