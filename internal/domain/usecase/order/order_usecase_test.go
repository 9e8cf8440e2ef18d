package order

import (
	"context"
	"errors"
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
	return m.Called(ctx, event).Error(0)
}

type fixture struct {
	clock    *timeadapter.FixedTimeProvider
	gateway  *memory.Gateway
	notifier *mockNotifier
	useCase  *UseCase
	user     *entity.User
}

func newFixture(t *testing.T, balanceCents int64) *fixture {
	t.Helper()

	clock := timeadapter.NewFixedTimeProvider(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	gateway := memory.NewGateway(clock)
	notifier := &mockNotifier{}
	t.Cleanup(func() { notifier.AssertExpectations(t) })

	user, err := entity.NewUser("UID000000001", "alice", "pw", clock.Now())
	require.NoError(t, err)
	require.NoError(t, gateway.CreateUser(context.Background(), user))
	require.NoError(t, gateway.SetUserBalance(context.Background(), user.ID, balanceCents))

	return &fixture{
		clock:    clock,
		gateway:  gateway,
		notifier: notifier,
		useCase:  NewUseCase(gateway, notifier, clock, logger.NewNoopLogger()),
		user:     user,
	}
}

func likesOrder(priceCents int64) usecase.OrderInput {
	return usecase.OrderInput{
		ServiceName:       "Instagram Likes - Indian",
		InstagramUsername: "alice.shop",
		Quantity:          100,
		PriceCents:        priceCents,
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Order within balance debits exactly the price", func(t *testing.T) {
		f := newFixture(t, 1000)
		f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
			return e.Action == notification.ActionOrder &&
				e.UID == "UID000000001" &&
				e.Fields[notification.FieldQuantity] == "100" &&
				e.Fields[notification.FieldPrice] == "2" &&
				e.Fields[notification.FieldTarget] == "alice.shop"
		})).Return(nil).Once()

		order, user, err := f.useCase.CreateOrder(ctx, f.user.ID, likesOrder(200))

		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusProcessing, order.Status)
		assert.Contains(t, order.OrderID, entity.OrderIDPrefix)
		assert.Equal(t, "8.00", user.GetBalance())
		assert.Equal(t, 1, f.gateway.OrderCount())
	})

	t.Run("Order above balance writes nothing", func(t *testing.T) {
		f := newFixture(t, 100)

		_, _, err := f.useCase.CreateOrder(ctx, f.user.ID, likesOrder(200))

		assert.True(t, errs.IsInsufficientBalanceError(err))
		assert.Equal(t, 0, f.gateway.OrderCount())
		stored, err := f.gateway.GetUserByID(ctx, f.user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), stored.Balance())
	})

	t.Run("Order equal to balance empties the wallet", func(t *testing.T) {
		f := newFixture(t, 200)
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

		_, user, err := f.useCase.CreateOrder(ctx, f.user.ID, likesOrder(200))
		require.NoError(t, err)
		assert.Equal(t, int64(0), user.Balance())
	})

	t.Run("Invalid input is rejected before any write", func(t *testing.T) {
		f := newFixture(t, 1000)

		testCases := []usecase.OrderInput{
			{ServiceName: "", InstagramUsername: "x", Quantity: 1, PriceCents: 100},
			{ServiceName: "s", InstagramUsername: " ", Quantity: 1, PriceCents: 100},
			{ServiceName: "s", InstagramUsername: "x", Quantity: 0, PriceCents: 100},
			{ServiceName: "s", InstagramUsername: "x", Quantity: 1, PriceCents: 0},
		}
		for _, input := range testCases {
			_, _, err := f.useCase.CreateOrder(ctx, f.user.ID, input)
			assert.True(t, errs.IsValidationError(err), "input %+v", input)
		}
		assert.Equal(t, 0, f.gateway.OrderCount())
	})

	t.Run("Unknown user", func(t *testing.T) {
		f := newFixture(t, 1000)

		_, _, err := f.useCase.CreateOrder(ctx, 999, likesOrder(200))
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Colliding order id is retried", func(t *testing.T) {
		f := newFixture(t, 1000)
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Twice()

		ids := []string{"ORDER1A", "ORDER1A", "ORDER1B"}
		f.useCase.generateOrderID = func(time.Time) string {
			id := ids[0]
			ids = ids[1:]
			return id
		}

		_, _, err := f.useCase.CreateOrder(ctx, f.user.ID, likesOrder(100))
		require.NoError(t, err)

		order, user, err := f.useCase.CreateOrder(ctx, f.user.ID, likesOrder(100))
		require.NoError(t, err)
		assert.Equal(t, "ORDER1B", order.OrderID)
		assert.Equal(t, "8.00", user.GetBalance())
	})

	t.Run("Concurrent orders never overdraw", func(t *testing.T) {
		f := newFixture(t, 1000)
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, _ = f.useCase.CreateOrder(ctx, f.user.ID, likesOrder(300))
			}()
		}
		wg.Wait()

		stored, err := f.gateway.GetUserByID(ctx, f.user.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, f.gateway.OrderCount())
		assert.Equal(t, int64(100), stored.Balance())
	})

	t.Run("Notifier failure does not fail the order", func(t *testing.T) {
		f := newFixture(t, 1000)
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("chat down")).Once()

		_, _, err := f.useCase.CreateOrder(ctx, f.user.ID, likesOrder(200))
		require.NoError(t, err)
	})
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1000)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	first, _, err := f.useCase.CreateOrder(ctx, f.user.ID, likesOrder(100))
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	second, _, err := f.useCase.CreateOrder(ctx, f.user.ID, likesOrder(200))
	require.NoError(t, err)

	orders, err := f.useCase.ListOrders(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first.OrderID, orders[0].OrderID)
	assert.Equal(t, second.OrderID, orders[1].OrderID)

	_, err = f.useCase.ListOrders(ctx, 0)
	assert.ErrorIs(t, err, errs.ErrInvalidUserID)
}
