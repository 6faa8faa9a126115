package loginflow

import (
	"context"
	"log/slog"

	"github.com/tendant/simple-actas/pkg/notification"
	"github.com/tendant/simple-actas/pkg/principal"
)

// Authenticator is the credential-verification collaborator. Its
// Authenticate must be free of side effects; all post-authentication
// effects live in this package.
type Authenticator interface {
	Authenticate(ctx context.Context, credential, password string) (principal.Principal, error)
}

// LoginFlowService drives a complete login: authenticate, then emit the
// LoginCompleted notice exactly once with the returned principal as its
// subject. For act-as logins that principal is the target, never the actor.
type LoginFlowService struct {
	authenticator       Authenticator
	notificationManager *notification.NotificationManager
}

type Option func(*LoginFlowService)

// WithNotificationManager enables post-login notices. Without it the flow
// authenticates silently.
func WithNotificationManager(nm *notification.NotificationManager) Option {
	return func(s *LoginFlowService) {
		s.notificationManager = nm
	}
}

func NewLoginFlowService(authenticator Authenticator, opts ...Option) *LoginFlowService {
	s := &LoginFlowService{
		authenticator: authenticator,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Login authenticates the credential and fires the post-auth notice on
// success. The returned principal is the authenticated session identity.
func (s *LoginFlowService) Login(ctx context.Context, username, password string) (principal.Principal, error) {
	p, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		return principal.Principal{}, err
	}

	s.notifyLoginCompleted(p)

	return p, nil
}

func (s *LoginFlowService) notifyLoginCompleted(p principal.Principal) {
	if s.notificationManager == nil {
		return
	}

	to := p.Username
	if email, ok := p.Attribute("email"); ok {
		if addr, ok := email.(string); ok && addr != "" {
			to = addr
		}
	}

	err := s.notificationManager.Send(notification.LoginCompleted, notification.NotificationData{
		To: to,
		Data: map[string]string{
			"Username":    p.Username,
			"DisplayName": p.DisplayName(),
		},
	})
	if err != nil {
		// The session is already established, a lost notice must not
		// fail the login.
		slog.Warn("Failed to send login notice", "username", p.Username, "err", err)
	}
}
