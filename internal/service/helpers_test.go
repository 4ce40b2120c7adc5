// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-newsroom/internal/config"
	"github.com/MKhiriev/go-newsroom/internal/mock"
	"github.com/MKhiriev/go-newsroom/internal/store"
	"github.com/MKhiriev/go-newsroom/models"
	"go.uber.org/mock/gomock"
)

var t0 = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "go-newsroom-test",
			TokenDuration: time.Hour,
			HashKey:       "test-hash-key",
			Version:       "1.0.0",
		},
		Auth: config.Auth{
			LockThreshold:      3,
			LockDuration:       15 * time.Minute,
			ResetTokenDuration: time.Hour,
			ResetLinkBase:      "http://localhost:5173/reset-password",
		},
	}
}

// testClock is a manually advanced clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: t0}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingQueue is a MailQueue that keeps what it accepts.
type recordingQueue struct {
	mu       sync.Mutex
	messages []models.MailMessage
	full     bool
}

func (q *recordingQueue) Enqueue(message models.MailMessage) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.full {
		return false
	}
	q.messages = append(q.messages, message)
	return true
}

func (q *recordingQueue) Messages() []models.MailMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.MailMessage(nil), q.messages...)
}

// memoryAccounts backs a MockAccountRepository with a map and the same
// mutation contract as the SQL repository: mutate runs under a lock, the
// account is stored only if it changed, and the mutation error is returned
// afterwards.
type memoryAccounts struct {
	mu     sync.Mutex
	byID   map[int64]models.Account
	nextID int64
}

func newMemoryRepository(t *testing.T, ctrl *gomock.Controller, accounts ...models.Account) (*mock.MockAccountRepository, *memoryAccounts) {
	t.Helper()

	mem := &memoryAccounts{byID: make(map[int64]models.Account), nextID: 1}
	for _, a := range accounts {
		mem.byID[a.AccountID] = a
		if a.AccountID >= mem.nextID {
			mem.nextID = a.AccountID + 1
		}
	}

	repo := mock.NewMockAccountRepository(ctrl)
	repo.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, account models.Account) (models.Account, error) {
			return mem.create(account)
		}).AnyTimes()
	repo.EXPECT().FindAccountByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, accountID int64) (models.Account, error) {
			return mem.find(func(a models.Account) bool { return a.AccountID == accountID })
		}).AnyTimes()
	repo.EXPECT().FindAccountByEmail(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, email string) (models.Account, error) {
			return mem.find(byEmail(email))
		}).AnyTimes()
	repo.EXPECT().FindAccountByResetToken(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tokenHash string) (models.Account, error) {
			return mem.find(byResetToken(tokenHash))
		}).AnyTimes()
	repo.EXPECT().UpdateAccountByID(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, accountID int64, mutate store.AccountMutation) (models.Account, error) {
			return mem.update(func(a models.Account) bool { return a.AccountID == accountID }, mutate)
		}).AnyTimes()
	repo.EXPECT().UpdateAccountByEmail(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, email string, mutate store.AccountMutation) (models.Account, error) {
			return mem.update(byEmail(email), mutate)
		}).AnyTimes()
	repo.EXPECT().UpdateAccountByResetToken(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tokenHash string, mutate store.AccountMutation) (models.Account, error) {
			return mem.update(byResetToken(tokenHash), mutate)
		}).AnyTimes()

	return repo, mem
}

func byEmail(email string) func(models.Account) bool {
	return func(a models.Account) bool { return a.Email == email }
}

func byResetToken(tokenHash string) func(models.Account) bool {
	return func(a models.Account) bool { return tokenHash != "" && a.ResetTokenHash == tokenHash }
}

func (m *memoryAccounts) create(account models.Account) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.byID {
		if a.Email == account.Email {
			return models.Account{}, store.ErrEmailAlreadyExists
		}
	}
	account.AccountID = m.nextID
	account.CreatedAt = t0
	m.nextID++
	m.byID[account.AccountID] = account
	return account, nil
}

func (m *memoryAccounts) find(match func(models.Account) bool) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.byID {
		if match(a) {
			return a, nil
		}
	}
	return models.Account{}, store.ErrAccountNotFound
}

func (m *memoryAccounts) update(match func(models.Account) bool, mutate store.AccountMutation) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, a := range m.byID {
		if !match(a) {
			continue
		}
		before := a
		mutationErr := mutate(&a)
		a.AccountID = before.AccountID
		a.CreatedAt = before.CreatedAt
		if a != before {
			for otherID, other := range m.byID {
				if otherID != id && other.Email == a.Email {
					return models.Account{}, store.ErrEmailAlreadyExists
				}
			}
			m.byID[id] = a
		}
		return a, mutationErr
	}
	return models.Account{}, store.ErrAccountNotFound
}

// get returns the stored account without going through the mock.
func (m *memoryAccounts) get(accountID int64) models.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[accountID]
}

func (m *memoryAccounts) put(account models.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[account.AccountID] = account
}
