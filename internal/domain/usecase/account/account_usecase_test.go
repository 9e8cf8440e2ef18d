package account

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/memory"
	timeadapter "github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, event notification.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// prefixHasher stores "hashed:" + password so tests can tell stored from submitted
type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (prefixHasher) Verify(stored, password string) bool { return stored == "hashed:"+password }

type fixture struct {
	gateway  *memory.Gateway
	notifier *mockNotifier
	useCase  *UseCase
}

func newFixture(t *testing.T, options Options) *fixture {
	t.Helper()

	clock := timeadapter.NewFixedTimeProvider(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	gateway := memory.NewGateway(clock)
	notifier := &mockNotifier{}
	t.Cleanup(func() { notifier.AssertExpectations(t) })

	return &fixture{
		gateway:  gateway,
		notifier: notifier,
		useCase:  NewUseCase(gateway, prefixHasher{}, notifier, clock, logger.NewNoopLogger(), options),
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("First login registers the account", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
			_, hasPassword := e.Fields[notification.FieldPassword]
			return e.Action == notification.ActionLogin &&
				e.Fields[notification.FieldUsername] == "alice" &&
				!hasPassword
		})).Return(nil).Once()

		result, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})

		require.NoError(t, err)
		assert.True(t, result.Registered)
		assert.Equal(t, 1, result.LoginCount)
		assert.True(t, strings.HasPrefix(result.User.UID, entity.UIDPrefix))
		assert.Equal(t, int64(0), result.User.Balance())
		assert.False(t, result.User.BonusClaimed)
		assert.Equal(t, "hashed:pw", result.User.Password)
	})

	t.Run("Second login reuses the account", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

		first, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})
		require.NoError(t, err)

		second, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "anything"})
		require.NoError(t, err)

		assert.False(t, second.Registered)
		assert.Equal(t, first.User.ID, second.User.ID)
		assert.Equal(t, first.User.UID, second.User.UID)
		assert.Equal(t, 2, second.LoginCount)
		assert.Equal(t, 1, f.gateway.UserCount())
	})

	t.Run("Password verification rejects a wrong password", func(t *testing.T) {
		f := newFixture(t, Options{VerifyPassword: true})
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})
		require.NoError(t, err)

		_, err = f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

		result, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})
		require.NoError(t, err)
		assert.False(t, result.Registered)
	})

	t.Run("Credential relay includes the password", func(t *testing.T) {
		f := newFixture(t, Options{RelayCredentials: true})
		f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
			return e.Fields[notification.FieldPassword] == "pw"
		})).Return(nil).Once()

		_, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})
		require.NoError(t, err)
	})

	t.Run("Notifier failure does not fail the login", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("chat down")).Once()

		result, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})
		require.NoError(t, err)
		assert.True(t, result.Registered)
	})

	t.Run("Empty fields are rejected before any write", func(t *testing.T) {
		f := newFixture(t, Options{})

		_, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "  ", Password: "pw"})
		assert.True(t, errs.IsValidationError(err))

		_, err = f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: ""})
		assert.True(t, errs.IsValidationError(err))

		assert.Equal(t, 0, f.gateway.UserCount())
	})

	t.Run("Store outage surfaces as unavailable", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.gateway.Fail(errors.New("connection refused"))

		_, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})
		assert.True(t, errs.IsStoreUnavailableError(err))
	})

	t.Run("Colliding uid is retried", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Twice()

		uids := []string{"UIDAAAAAAAAA", "UIDAAAAAAAAA", "UIDBBBBBBBBB"}
		f.useCase.generateUID = func() string {
			uid := uids[0]
			uids = uids[1:]
			return uid
		}

		_, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})
		require.NoError(t, err)

		result, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "bob", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "UIDBBBBBBBBB", result.User.UID)
	})

	t.Run("Uid collisions give up after three attempts", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()
		f.useCase.generateUID = func() string { return "UIDAAAAAAAAA" }

		_, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})
		require.NoError(t, err)

		_, err = f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "bob", Password: "pw"})
		assert.True(t, errs.IsConstraintViolationOn(err, "uid"))
	})

	t.Run("Concurrent first logins create one account", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

		const workers = 8
		ids := make([]uint64, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				result, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})
				if assert.NoError(t, err) {
					ids[i] = result.User.ID
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, f.gateway.UserCount())
		for _, id := range ids {
			assert.Equal(t, ids[0], id)
		}
	})
}

func TestClaimBonus(t *testing.T) {
	ctx := context.Background()

	t.Run("First claim credits ten, second fails", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
			return e.Action == notification.ActionLogin
		})).Return(nil).Once()
		f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
			return e.Action == notification.ActionBonus && e.Fields[notification.FieldAmount] == "10"
		})).Return(nil).Once()

		login, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})
		require.NoError(t, err)

		user, err := f.useCase.ClaimBonus(ctx, login.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "10.00", user.GetBalance())
		assert.True(t, user.BonusClaimed)

		_, err = f.useCase.ClaimBonus(ctx, login.User.ID)
		assert.ErrorIs(t, err, errs.ErrBonusAlreadyClaimed)

		stored, err := f.useCase.GetUser(ctx, login.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "10.00", stored.GetBalance())
	})

	t.Run("Concurrent claims credit once", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

		login, err := f.useCase.Login(ctx, usecase.LoginInput{InstagramUsername: "alice", Password: "pw"})
		require.NoError(t, err)

		var wg sync.WaitGroup
		var mu sync.Mutex
		successes := 0
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := f.useCase.ClaimBonus(ctx, login.User.ID); err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		stored, err := f.useCase.GetUser(ctx, login.User.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), stored.Balance())
	})

	t.Run("Unknown user", func(t *testing.T) {
		f := newFixture(t, Options{})

		_, err := f.useCase.ClaimBonus(ctx, 42)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}
