package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/realtyhub/backend/internal/auth/service"
	"github.com/realtyhub/backend/internal/common/clock"
	"github.com/realtyhub/backend/internal/common/logger"
	"github.com/realtyhub/backend/internal/user/domain"
	userrepo "github.com/realtyhub/backend/internal/user/repository"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type testDeps struct {
	repo   *mockUserRepo
	txm    *mockTxManager
	hasher *mockHasher
	ids    *mockIDGenerator
	clock  *clock.MockClock
}

func newTestService(t *testing.T, deps *testDeps) *service.AuthService {
	t.Helper()
	if deps.repo == nil {
		deps.repo = &mockUserRepo{}
	}
	if deps.txm == nil {
		deps.txm = &mockTxManager{tx: &mockTx{}}
	}
	if deps.hasher == nil {
		deps.hasher = &mockHasher{}
	}
	if deps.ids == nil {
		deps.ids = &mockIDGenerator{}
	}
	if deps.clock == nil {
		deps.clock = clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	}
	return service.NewAuthService(service.AuthServiceDeps{
		Repo:        deps.repo,
		TxManager:   deps.txm,
		Hasher:      deps.hasher,
		IDGenerator: deps.ids,
		Issuer:      service.NewTokenIssuer(testSecret, 24*time.Hour, deps.clock),
		Log:         testLogger(t),
	})
}

type mockUserRepo struct {
	findByEmailFunc func(ctx context.Context, email string) (domain.User, error)
	findByIDFunc    func(ctx context.Context, id domain.ID) (domain.User, error)
	listFunc        func(ctx context.Context) ([]domain.Summary, error)
	updateFunc      func(ctx context.Context, id domain.ID, upd domain.Update) (domain.Summary, error)
	deleteFunc      func(ctx context.Context, id domain.ID) error
	txm             userrepo.TxManager
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return domain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.Summary, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, id domain.ID, upd domain.Update) (domain.Summary, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, upd)
	}
	return domain.Summary{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) Delete(ctx context.Context, id domain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepo) TxManager() userrepo.TxManager {
	return m.txm
}

type mockTx struct {
	emailExistsFunc    func(ctx context.Context, email string) (bool, error)
	existingEmailsFunc func(ctx context.Context, emails []string) ([]string, error)
	insertFunc         func(ctx context.Context, user domain.NewUser) (domain.Summary, error)

	inserted []domain.NewUser
}

func (t *mockTx) EmailExists(ctx context.Context, email string) (bool, error) {
	if t.emailExistsFunc != nil {
		return t.emailExistsFunc(ctx, email)
	}
	return false, nil
}

func (t *mockTx) ExistingEmails(ctx context.Context, emails []string) ([]string, error) {
	if t.existingEmailsFunc != nil {
		return t.existingEmailsFunc(ctx, emails)
	}
	return nil, nil
}

func (t *mockTx) Insert(ctx context.Context, user domain.NewUser) (domain.Summary, error) {
	t.inserted = append(t.inserted, user)
	if t.insertFunc != nil {
		return t.insertFunc(ctx, user)
	}
	return domain.Summary{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Address:  user.Address,
	}, nil
}

// mockTxManager mirrors the real manager's contract: commit only when fn
// returns nil, rollback otherwise.
type mockTxManager struct {
	tx        *mockTx
	beginErr  error
	commits   int
	rollbacks int
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(context.Context, userrepo.Tx) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	err := fn(ctx, m.tx)
	if err != nil {
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
	next      int
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	m.next++
	return fmt.Sprintf("id-%d", m.next), nil
}
