package service

import (
	"context"
	"errors"
	"time"

	userserrors "github.com/Andrics/Beyond-Earth/internal/users/errors"
	"github.com/Andrics/Beyond-Earth/internal/users/repository"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	apperrors "github.com/Andrics/Beyond-Earth/pkg/errors"
	"github.com/Andrics/Beyond-Earth/pkg/events"
	"github.com/Andrics/Beyond-Earth/pkg/kafka"
	"github.com/Andrics/Beyond-Earth/pkg/model"
	"github.com/Andrics/Beyond-Earth/pkg/payment"
)

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// CheckoutSession is what the API returns for a new checkout. The caller is
// expected to redirect the customer to URL and come back with SessionID.
type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type SubscriptionService interface {
	Checkout(ctx context.Context, userID string, plan string) (*CheckoutSession, error)
	Activate(ctx context.Context, userID string, sessionID string) (*model.Subscription, error)
	Subscribe(ctx context.Context, userID string, plan string) (*model.Subscription, error)
	Status(ctx context.Context, userID string) (*model.Subscription, error)
	Cancel(ctx context.Context, userID string) error
}

type subscriptionService struct {
	users     repository.UserRepository
	cfg       *config.Config
	publisher EventPublisher
}

func NewSubscriptionService(users repository.UserRepository, cfg *config.Config, publisher EventPublisher) SubscriptionService {
	return &subscriptionService{
		users:     users,
		cfg:       cfg,
		publisher: publisher,
	}
}

func (s *subscriptionService) Checkout(ctx context.Context, userID string, plan string) (*CheckoutSession, error) {
	priceCents, ok := s.cfg.PlanPriceCents(plan)
	if !ok {
		return nil, apperrors.InvalidInput("Unknown subscription plan: " + plan)
	}

	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	session, err := s.cfg.Payment.CreateCheckoutSession(payment.CheckoutInput{
		AmountCents: priceCents,
		Currency:    "usd",
		Description: "Beyond Earth " + plan + " subscription",
		SuccessURL:  s.cfg.FrontendURL + "/subscription/success",
		CancelURL:   s.cfg.FrontendURL + "/subscription/cancel",
		Metadata: map[string]string{
			"user_id": userID,
			"plan":    plan,
		},
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create checkout session", "user_id", userID, "plan", plan, "error", err)
		return nil, apperrors.Internal("Failed to create checkout session", err)
	}

	s.cfg.Log.Info("Checkout session created", "user_id", userID, "plan", plan, "session_id", session.ID)
	return &CheckoutSession{SessionID: session.ID, URL: session.URL}, nil
}

func (s *subscriptionService) Activate(ctx context.Context, userID string, sessionID string) (*model.Subscription, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("Session ID cannot be empty")
	}

	session, err := s.cfg.Payment.GetSession(sessionID)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch checkout session", "session_id", sessionID, "error", err)
		return nil, apperrors.Internal("Failed to verify payment session", err)
	}

	if session.Metadata["user_id"] != userID {
		return nil, apperrors.Forbidden("Session does not belong to this user")
	}
	if !session.Paid() {
		return nil, apperrors.InvalidInput("Payment has not been completed")
	}

	plan := session.Metadata["plan"]
	if _, ok := s.cfg.PlanPriceCents(plan); !ok {
		return nil, apperrors.InvalidInput("Session carries an unknown plan: " + plan)
	}

	sub, err := s.activatePlan(ctx, userID, plan, sessionID)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Subscription activated via checkout", "user_id", userID, "plan", plan, "session_id", sessionID)
	return sub, nil
}

// Subscribe activates a plan without a payment session. The checkout flow is
// the paid path; this one backs internal tooling and promotional grants.
func (s *subscriptionService) Subscribe(ctx context.Context, userID string, plan string) (*model.Subscription, error) {
	if _, ok := s.cfg.PlanPriceCents(plan); !ok {
		return nil, apperrors.InvalidInput("Unknown subscription plan: " + plan)
	}

	sub, err := s.activatePlan(ctx, userID, plan, "")
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Subscription activated directly", "user_id", userID, "plan", plan)
	return sub, nil
}

func (s *subscriptionService) Status(ctx context.Context, userID string) (*model.Subscription, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	evaluated, changed := Evaluate(user.Subscription, time.Now().UTC())
	if changed {
		if err := s.users.UpdateSubscription(ctx, userID, &evaluated); err != nil {
			s.cfg.Log.Warn("Failed to persist corrected subscription", "user_id", userID, "error", err)
		}
	}

	return &evaluated, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, userID string) error {
	if _, err := s.findUser(ctx, userID); err != nil {
		return err
	}

	sub := model.Subscription{Plan: config.PlanNone, IsActive: false}
	if err := s.users.UpdateSubscription(ctx, userID, &sub); err != nil {
		s.cfg.Log.Error("Failed to cancel subscription", "user_id", userID, "error", err)
		return apperrors.Internal("Failed to cancel subscription", err)
	}

	s.cfg.Log.Info("Subscription cancelled", "user_id", userID)
	return nil
}

func (s *subscriptionService) activatePlan(ctx context.Context, userID string, plan string, sessionID string) (*model.Subscription, error) {
	now := time.Now().UTC()
	sub := model.Subscription{
		Plan:             plan,
		StartDate:        now,
		EndDate:          PlanEnd(plan, now),
		IsActive:         true,
		PaymentSessionID: sessionID,
	}

	if err := s.users.UpdateSubscription(ctx, userID, &sub); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", userID)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to persist subscription", "user_id", userID, "plan", plan, "error", err)
		return nil, apperrors.Internal("Failed to activate subscription", err)
	}

	s.publishEvent(ctx, userID, events.SubscriptionActivated{
		UserID:      userID,
		Plan:        plan,
		StartDate:   sub.StartDate,
		EndDate:     sub.EndDate,
		ActivatedAt: now,
	})

	return &sub, nil
}

func (s *subscriptionService) findUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", userID)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

func (s *subscriptionService) publishEvent(ctx context.Context, userID string, payload events.SubscriptionActivated) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(userID).
		WithEventType(events.TypeSubscriptionActivated).
		WithSchemaVersion(events.SchemaVersion).
		WithSource("beyond-earth-api").
		WithValue(payload).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish subscription event", "user_id", userID, "error", err)
	}
}
