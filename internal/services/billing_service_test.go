package services

import (
	"encoding/json"
	"errors"
	"testing"

	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/testutil"
	"nautikos_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

func checkoutEvent(t *testing.T, session map[string]interface{}) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(session)
	require.NoError(t, err)
	return stripe.Event{
		ID:   "evt_1",
		Type: stripe.EventTypeCheckoutSessionCompleted,
		Data: &stripe.EventData{Raw: raw},
	}
}

func completedSession(userID string) map[string]interface{} {
	return map[string]interface{}{
		"id":                  "cs_test_1",
		"object":              "checkout.session",
		"client_reference_id": userID,
		"customer":            "cus_123",
		"metadata":            map[string]string{"priceId": "price_456"},
	}
}

func TestHandleEvent(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateJobSeekerUser(t, f.db)

	t.Run("other event types are ignored", func(t *testing.T) {
		event := checkoutEvent(t, completedSession(user.ID))
		event.Type = stripe.EventTypeInvoicePaid
		applied, err := f.svc.BillingService.HandleEvent(f.ctx, f.db, event)
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("missing user reference", func(t *testing.T) {
		applied, err := f.svc.BillingService.HandleEvent(f.ctx, f.db, checkoutEvent(t, completedSession("")))
		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
		assert.False(t, applied)
	})

	t.Run("missing data", func(t *testing.T) {
		_, err := f.svc.BillingService.HandleEvent(f.ctx, f.db, stripe.Event{Type: stripe.EventTypeCheckoutSessionCompleted})
		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.BillingService.HandleEvent(f.ctx, f.db, checkoutEvent(t, completedSession(models.NewID())))
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("checkout grants access", func(t *testing.T) {
		applied, err := f.svc.BillingService.HandleEvent(f.ctx, f.db, checkoutEvent(t, completedSession(user.ID)))
		require.NoError(t, err)
		assert.True(t, applied)

		reloaded, err := repositories.NewUserRepository().FindByID(f.db, user.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.HasAccess)
		require.NotNil(t, reloaded.StripeCustomerID)
		assert.Equal(t, "cus_123", *reloaded.StripeCustomerID)
		require.NotNil(t, reloaded.StripePriceID)
		assert.Equal(t, "price_456", *reloaded.StripePriceID)

		status, err := f.svc.OnboardingService.GetStatus(f.ctx, f.db, actorOf(reloaded))
		require.NoError(t, err)
		assert.True(t, status.HasAccess)
	})

	t.Run("metadata user id fallback", func(t *testing.T) {
		other := testutil.CreateJobSeekerUser(t, f.db)
		session := completedSession("")
		session["metadata"] = map[string]string{"userId": other.ID}
		applied, err := f.svc.BillingService.HandleEvent(f.ctx, f.db, checkoutEvent(t, session))
		require.NoError(t, err)
		assert.True(t, applied)
	})
}

type fakeSessions struct {
	params []*stripe.CheckoutSessionParams
	err    error
}

func (f *fakeSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.params = append(f.params, params)
	return &stripe.CheckoutSession{ID: "cs_test_42", URL: "https://checkout.stripe.test/cs_test_42"}, nil
}

func TestCreateCheckout(t *testing.T) {
	f := newFixture(t)
	sessions := &fakeSessions{}
	svc := NewBillingService(repositories.NewUserRepository(), sessions, "price_456", "https://app.nautikos.test/")
	user := testutil.CreateJobSeekerUser(t, f.db)

	resp, err := svc.CreateCheckout(f.ctx, f.db, actorOf(user))
	require.NoError(t, err)
	assert.Equal(t, "cs_test_42", resp.SessionID)
	assert.Equal(t, "https://checkout.stripe.test/cs_test_42", resp.URL)

	require.Len(t, sessions.params, 1)
	params := sessions.params[0]
	assert.Equal(t, string(stripe.CheckoutSessionModePayment), *params.Mode)
	assert.Equal(t, "https://app.nautikos.test/onboarding/review", *params.SuccessURL)
	assert.Equal(t, "https://app.nautikos.test/onboarding/payment", *params.CancelURL)
	assert.Equal(t, user.Email, *params.CustomerEmail)
	assert.Equal(t, user.ID, *params.ClientReferenceID)
	assert.Equal(t, user.ID, params.Metadata["userId"])
	require.Len(t, params.LineItems, 1)
	assert.Equal(t, "price_456", *params.LineItems[0].Price)
	assert.Equal(t, int64(1), *params.LineItems[0].Quantity)

	t.Run("already paid", func(t *testing.T) {
		paid := testutil.CreateUser(t, f.db, &models.User{Role: models.UserRoleJobSeeker, IsVerified: true, HasAccess: true})
		_, err := svc.CreateCheckout(f.ctx, f.db, actorOf(paid))
		assert.ErrorIs(t, err, apperrors.ErrAccessAlreadyGranted)
	})

	t.Run("other roles", func(t *testing.T) {
		moderator := testutil.CreateModerator(t, f.db)
		_, err := svc.CreateCheckout(f.ctx, f.db, actorOf(moderator))
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	})

	t.Run("provider failure", func(t *testing.T) {
		failing := NewBillingService(repositories.NewUserRepository(), &fakeSessions{err: errors.New("card_declined")}, "price_456", "https://app.nautikos.test")
		_, err := failing.CreateCheckout(f.ctx, f.db, actorOf(user))
		assert.True(t, apperrors.HasCode(err, apperrors.CodeExternalServiceError))
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := f.svc.BillingService.CreateCheckout(f.ctx, f.db, actorOf(user))
		assert.ErrorIs(t, err, apperrors.ErrPaymentsNotConfigured)
	})
}
