package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/mail"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/testutil"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

type recordedEvent struct {
	Topic, Key string
	Event      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

type recordingMailer struct {
	sent []mail.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

type recordingIndex struct {
	docs []search.Document
}

func (i *recordingIndex) IndexProduct(_ context.Context, doc search.Document) error {
	i.docs = append(i.docs, doc)
	return nil
}

func (i *recordingIndex) Search(context.Context, string, int, int) (int64, []search.Document, error) {
	return int64(len(i.docs)), i.docs, nil
}

type env struct {
	Repo *repo.GormRepo
	F    *testutil.Fixture
	Pub  *recordingPublisher
	Mail *recordingMailer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	pw, err := hash.HashPassword("123456")
	require.NoError(t, err)

	db := testutil.NewDB(t)
	return &env{
		Repo: &repo.GormRepo{DB: db},
		F:    testutil.Seed(t, db, pw),
		Pub:  &recordingPublisher{},
		Mail: &recordingMailer{},
	}
}

func principalOf(c models.Client) *tokens.Principal {
	return &tokens.Principal{ClientID: c.ID, Email: c.Email, Roles: c.RoleList()}
}
