// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/classrep/auth"
	"github.com/danielhkuo/classrep/cliparse"
	"github.com/danielhkuo/classrep/election"
	"github.com/danielhkuo/classrep/kvstore"
	"github.com/danielhkuo/classrep/notify"
	"github.com/danielhkuo/classrep/tokens"
)

// TestPublicURL is the link origin used when a request carries none
const TestPublicURL = "http://localhost:3001"

// SetupTestStore opens a migrated sqlite store in a temp dir
func SetupTestStore(t *testing.T) kvstore.Store {
	t.Helper()

	store, err := kvstore.Open(context.Background(), kvstore.Options{
		Type:        kvstore.TypeSQLite,
		DatabaseURL: "file:" + filepath.Join(t.TempDir(), "classrep.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseType:    kvstore.TypeSQLite,
		AdminKeySalt:    "test-admin-salt",
		PublicURL:       TestPublicURL,
		RegistrationTTL: time.Hour,
		VotingTTL:       30 * time.Minute,
		LogLevel:        "info",
	}
}

// AdminKey returns the results admin key for cfg
func AdminKey(cfg cliparse.Config) string {
	return auth.GenerateAdminKey(auth.AdminScopeResults, cfg.AdminKeySalt)
}

// Clock is a settable time source
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

func NewClock() *Clock {
	return &Clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Notifier records messages instead of sending them. Setting Err makes
// every Send fail.
type Notifier struct {
	mu   sync.Mutex
	msgs []notify.Message
	Err  error
}

func (n *Notifier) Send(ctx context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.msgs = append(n.msgs, msg)
	return nil
}

func (n *Notifier) Sent() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.msgs...)
}

// Services bundles a service with the fakes behind it
type Services struct {
	*election.Service
	Store    kvstore.Store
	Clock    *Clock
	Notifier *Notifier
}

// NewTestServices wires an election service over a fresh sqlite store
func NewTestServices(t *testing.T, cfg cliparse.Config) *Services {
	t.Helper()

	store := SetupTestStore(t)
	clock := NewClock()
	n := &Notifier{}

	svc := election.New(election.Deps{
		Store:     store,
		Tokens:    tokens.New(store, clock.Now),
		Hasher:    auth.NewHasher(cfg.IdentitySalt),
		Notifier:  n,
		PublicURL: cfg.PublicURL,
	}, election.Config{
		RegistrationTTL: cfg.RegistrationTTL,
		VotingTTL:       cfg.VotingTTL,
		ForbidSelfVote:  cfg.ForbidSelfVote,
	})

	return &Services{Service: svc, Store: store, Clock: clock, Notifier: n}
}

// RegisterTestVoter registers a voter and returns their candidate id
func RegisterTestVoter(t *testing.T, s *Services, email, name, class string) string {
	t.Helper()

	id, err := s.Registrar.Register(context.Background(), email, name, class)
	if err != nil {
		t.Fatalf("Failed to register test voter: %v", err)
	}
	return id
}

// IssueTestVotingToken requests a voting link for email and returns the token
func IssueTestVotingToken(t *testing.T, s *Services, email string) string {
	t.Helper()

	link, err := s.Issuer.RequestVotingLink(context.Background(), email, "")
	if err != nil {
		t.Fatalf("Failed to issue voting token: %v", err)
	}
	return link.Token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
