// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/classrep/auth"
	"github.com/danielhkuo/classrep/kvstore"
	"github.com/danielhkuo/classrep/models"
	"github.com/danielhkuo/classrep/notify"
	"github.com/danielhkuo/classrep/tokens"
)

const testPublicURL = "http://localhost:3001"

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
	err  error
}

func (n *recordingNotifier) Send(ctx context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.msgs = append(n.msgs, msg)
	return nil
}

func (n *recordingNotifier) sent() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.msgs...)
}

// faultyStore fails Set for keys starting with failSet
type faultyStore struct {
	kvstore.Store
	mu      sync.Mutex
	failSet string
}

func (f *faultyStore) setFailure(prefix string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSet = prefix
}

func (f *faultyStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	prefix := f.failSet
	f.mu.Unlock()
	if prefix != "" && strings.HasPrefix(key, prefix) {
		return errors.New("injected write failure")
	}
	return f.Store.Set(ctx, key, value)
}

type fixture struct {
	svc      *Service
	kv       *kvstore.Memory
	store    kvstore.Store
	clock    *testClock
	notifier *recordingNotifier
	hasher   auth.Hasher
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	mem := kvstore.NewMemory()
	return newFixtureWithStore(t, mem, mem, cfg)
}

func newFixtureWithStore(t *testing.T, mem *kvstore.Memory, store kvstore.Store, cfg Config) *fixture {
	t.Helper()
	clock := &testClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	n := &recordingNotifier{}
	hasher := auth.NewHasher("")

	svc := New(Deps{
		Store:     store,
		Tokens:    tokens.New(store, clock.Now),
		Hasher:    hasher,
		Notifier:  n,
		PublicURL: testPublicURL,
	}, cfg)

	return &fixture{svc: svc, kv: mem, store: store, clock: clock, notifier: n, hasher: hasher}
}

func (f *fixture) register(t *testing.T, email, name, class string) string {
	t.Helper()
	id, err := f.svc.Registrar.Register(context.Background(), email, name, class)
	require.NoError(t, err)
	return id
}

func (f *fixture) votingToken(t *testing.T, email string) string {
	t.Helper()
	link, err := f.svc.Issuer.RequestVotingLink(context.Background(), email, "")
	require.NoError(t, err)
	return link.Token
}

func (f *fixture) voteCount(t *testing.T) int {
	t.Helper()
	values, err := f.kv.ScanPrefix(context.Background(), prefixVote)
	require.NoError(t, err)
	return len(values)
}

func ballot(token, first, second string) models.SubmitVoteRequest {
	return models.SubmitVoteRequest{
		Token:        token,
		FirstChoice:  first,
		FirstReason:  models.ReasonLeadership,
		SecondChoice: second,
		SecondReason: models.ReasonReliability,
	}
}
