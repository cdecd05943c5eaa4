// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/classrep/auth"
	"github.com/danielhkuo/classrep/models"
	"github.com/danielhkuo/classrep/testutil"
)

func TestRegister(t *testing.T) {
	cfg := testutil.GetTestConfig()
	svc := testutil.NewTestServices(t, cfg)
	handler := NewRegistrationHandler(svc.Registrar, cfg)

	tests := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{
			name:           "valid registration",
			body:           models.RegisterRequest{Email: "alice@x.edu", FullName: "Alice", ClassLabel: "10A"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate email differs only in case",
			body:           models.RegisterRequest{Email: "ALICE@x.edu", FullName: "Alice", ClassLabel: "10A"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing name",
			body:           models.RegisterRequest{Email: "bob@x.edu", ClassLabel: "10A"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email",
			body:           models.RegisterRequest{Email: "not-an-email", FullName: "Bob", ClassLabel: "10A"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           "{",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if s, ok := tt.body.(string); ok {
				req = httptest.NewRequest("POST", "/register", strings.NewReader(s))
			} else {
				req = testutil.MakeRequest("POST", "/register", tt.body, nil)
			}
			w := httptest.NewRecorder()

			handler.Register(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.RegisterResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.CandidateID != auth.AnonymizeEmail("alice@x.edu", "") {
					t.Errorf("Expected candidate id to be the anonymized email, got %q", resp.CandidateID)
				}
			}
		})
	}
}

func TestRequestRegistrationLink(t *testing.T) {
	cfg := testutil.GetTestConfig()
	svc := testutil.NewTestServices(t, cfg)
	handler := NewRegistrationHandler(svc.Registrar, cfg)

	testutil.RegisterTestVoter(t, svc, "taken@x.edu", "Taken", "10A")

	t.Run("link uses request origin", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/registration-links",
			models.LinkRequest{Email: "new@x.edu"},
			map[string]string{"Origin": "https://vote.example.edu"})
		w := httptest.NewRecorder()

		handler.RequestLink(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.LinkResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.Link != "https://vote.example.edu?regToken="+resp.Token {
			t.Errorf("Unexpected link %q", resp.Link)
		}
		if !resp.EmailSent {
			t.Error("Expected email_sent to be true")
		}
		if !resp.ExpiresAt.Equal(svc.Clock.Now().Add(time.Hour)) {
			t.Errorf("Unexpected expiry %v", resp.ExpiresAt)
		}

		sent := svc.Notifier.Sent()
		if len(sent) != 1 || sent[0].To != "new@x.edu" {
			t.Fatalf("Expected one email to new@x.edu, got %+v", sent)
		}
		if !strings.Contains(sent[0].HTML, resp.Link) {
			t.Error("Email body does not contain the link")
		}
	})

	t.Run("falls back to public URL", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/registration-links", models.LinkRequest{Email: "other@x.edu"}, nil)
		w := httptest.NewRecorder()

		handler.RequestLink(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.LinkResponse
		testutil.AssertJSON(t, w, &resp)
		if !strings.HasPrefix(resp.Link, testutil.TestPublicURL+"?regToken=") {
			t.Errorf("Unexpected link %q", resp.Link)
		}
	})

	t.Run("already registered", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/registration-links", models.LinkRequest{Email: "taken@x.edu"}, nil)
		w := httptest.NewRecorder()

		handler.RequestLink(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("email failure still returns link", func(t *testing.T) {
		svc.Notifier.Err = errors.New("smtp down")
		defer func() { svc.Notifier.Err = nil }()

		req := testutil.MakeRequest("POST", "/registration-links", models.LinkRequest{Email: "late@x.edu"}, nil)
		w := httptest.NewRecorder()

		handler.RequestLink(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.LinkResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.EmailSent {
			t.Error("Expected email_sent to be false")
		}
		if resp.Token == "" || resp.Link == "" {
			t.Error("Expected link and token despite email failure")
		}
	})
}

func TestRegistrationTokenLifecycle(t *testing.T) {
	cfg := testutil.GetTestConfig()
	svc := testutil.NewTestServices(t, cfg)
	handler := NewRegistrationHandler(svc.Registrar, cfg)

	token := requestRegistrationToken(t, handler, "carol@x.edu")

	// Verify shows the raw email
	req := httptest.NewRequest("GET", "/registration-links/"+token, nil)
	req.SetPathValue("token", token)
	w := httptest.NewRecorder()
	handler.VerifyToken(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var ticket models.RegistrationTokenResponse
	testutil.AssertJSON(t, w, &ticket)
	if ticket.Email != "carol@x.edu" {
		t.Errorf("Expected email carol@x.edu, got %q", ticket.Email)
	}

	// Complete
	req = testutil.MakeRequest("POST", "/registration-links/"+token+"/complete",
		models.CompleteRegistrationRequest{FullName: "Carol", ClassLabel: "11B"}, nil)
	req.SetPathValue("token", token)
	w = httptest.NewRecorder()
	handler.Complete(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	// Token is single use
	req = testutil.MakeRequest("POST", "/registration-links/"+token+"/complete",
		models.CompleteRegistrationRequest{FullName: "Carol", ClassLabel: "11B"}, nil)
	req.SetPathValue("token", token)
	w = httptest.NewRecorder()
	handler.Complete(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestRegistrationTokenExpiry(t *testing.T) {
	cfg := testutil.GetTestConfig()
	svc := testutil.NewTestServices(t, cfg)
	handler := NewRegistrationHandler(svc.Registrar, cfg)

	token := requestRegistrationToken(t, handler, "dave@x.edu")
	svc.Clock.Advance(time.Hour + time.Second)

	verify := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/registration-links/"+token, nil)
		req.SetPathValue("token", token)
		w := httptest.NewRecorder()
		handler.VerifyToken(w, req)
		return w
	}

	// First detection reports expiry and deletes the token
	testutil.AssertStatus(t, verify(), http.StatusGone)
	testutil.AssertStatus(t, verify(), http.StatusNotFound)
}

func TestCompleteRegistrationInvalidToken(t *testing.T) {
	cfg := testutil.GetTestConfig()
	svc := testutil.NewTestServices(t, cfg)
	handler := NewRegistrationHandler(svc.Registrar, cfg)

	tests := []struct {
		name  string
		token string
	}{
		{"unknown hex token", strings.Repeat("ab", 16)},
		{"not hex", "../../voter:abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/registration-links/x/complete",
				models.CompleteRegistrationRequest{FullName: "Eve", ClassLabel: "10A"}, nil)
			req.SetPathValue("token", tt.token)
			w := httptest.NewRecorder()

			handler.Complete(w, req)

			testutil.AssertStatus(t, w, http.StatusNotFound)
		})
	}
}

func requestRegistrationToken(t *testing.T, handler *RegistrationHandler, email string) string {
	t.Helper()

	req := testutil.MakeRequest("POST", "/registration-links", models.LinkRequest{Email: email}, nil)
	w := httptest.NewRecorder()
	handler.RequestLink(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to request registration link: %d - %s", w.Code, w.Body.String())
	}

	var resp models.LinkResponse
	testutil.AssertJSON(t, w, &resp)
	return resp.Token
}
