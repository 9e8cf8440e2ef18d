package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	timeadapter "github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, g *Gateway, uid, username string) *entity.User {
	t.Helper()
	user, err := entity.NewUser(uid, username, "pw", time.Time{})
	require.NoError(t, err)
	require.NoError(t, g.CreateUser(context.Background(), user))
	return user
}

func TestGatewayIsolatesStoredCopies(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(timeadapter.NewFixedTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	user := newUser(t, g, "UID000000001", "alice")
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), user.CreatedAt)

	user.SetBalance(999)
	stored, err := g.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.Balance())

	stored.BonusClaimed = true
	again, err := g.GetUserByInstagramUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, again.BonusClaimed)
}

func TestGatewayConstraints(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(timeadapter.NewRealTimeProvider())
	alice := newUser(t, g, "UID000000001", "alice")

	dup, err := entity.NewUser("UID000000001", "bob", "pw", time.Now())
	require.NoError(t, err)
	assert.True(t, errs.IsConstraintViolationOn(g.CreateUser(ctx, dup), "uid"))

	dup, err = entity.NewUser("UID000000002", "alice", "pw", time.Now())
	require.NoError(t, err)
	assert.True(t, errs.IsConstraintViolationOn(g.CreateUser(ctx, dup), "instagram_username"))

	order, err := entity.NewOrder("ORDER1", alice.ID, "Likes", "alice", 1, 100, time.Now())
	require.NoError(t, err)
	require.NoError(t, g.CreateOrder(ctx, order))
	assert.True(t, errs.IsConstraintViolationOn(g.CreateOrder(ctx, order), "order_id"))

	orphan, err := entity.NewOrder("ORDER2", 42, "Likes", "alice", 1, 100, time.Now())
	require.NoError(t, err)
	assert.True(t, errs.IsConstraintViolationOn(g.CreateOrder(ctx, orphan), "user_id"))

	_, err = g.AppendLoginLog(ctx, 42, "ghost")
	assert.True(t, errs.IsConstraintViolationError(err))
}

func TestGatewayFailure(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(timeadapter.NewRealTimeProvider())

	g.Fail(errors.New("connection refused"))
	assert.True(t, errs.IsStoreUnavailableError(g.Ping(ctx)))
	_, err := g.ListActiveServices(ctx)
	assert.True(t, errs.IsStoreUnavailableError(err))

	g.Fail(nil)
	assert.NoError(t, g.Ping(ctx))
}

func TestGatewaySettlePayment(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(timeadapter.NewRealTimeProvider())
	alice := newUser(t, g, "UID000000001", "alice")

	payment, err := entity.NewPayment(alice.ID, 50000, "UTR123", "UPI", time.Now())
	require.NoError(t, err)
	require.NoError(t, g.CreatePayment(ctx, payment))

	_, _, err = g.SettlePayment(ctx, payment.ID, entity.PaymentStatusPending)
	assert.ErrorIs(t, err, errs.ErrInvalidStatus)

	settled, owner, err := g.SettlePayment(ctx, payment.ID, entity.PaymentStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusApproved, settled.Status)
	assert.Equal(t, "500.00", owner.GetBalance())

	_, _, err = g.SettlePayment(ctx, payment.ID, entity.PaymentStatusApproved)
	assert.ErrorIs(t, err, errs.ErrPaymentAlreadySettled)

	require.NoError(t, g.SetPaymentStatus(ctx, payment.ID, entity.PaymentStatusPending))
	stored, err := g.GetPaymentByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, stored.Status)

	_, err = g.GetPaymentByID(ctx, 404)
	assert.ErrorIs(t, err, errs.ErrPaymentNotFound)
}
