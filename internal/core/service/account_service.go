package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
	"github.com/favourami/eventplanner/internal/core/validation"
)

// loginInput is validated before the identity provider is called.
type loginInput struct {
	Email    string `validate:"required,planner_email"`
	Password string `validate:"required"`
}

type accountService struct {
	identity ports.IdentityProvider
	docs     ports.DocumentStore
	session  SessionWriter
	forms    *validation.Forms
	log      zerolog.Logger
}

// NewAccountService returns the sign-up, login and logout flows.
func NewAccountService(
	identity ports.IdentityProvider,
	docs ports.DocumentStore,
	session SessionWriter,
	forms *validation.Forms,
	log zerolog.Logger,
) ports.AccountService {
	return &accountService{
		identity: identity,
		docs:     docs,
		session:  session,
		forms:    forms,
		log:      log,
	}
}

// SignUp creates the account and writes its profile document. The two steps
// are not transactional: when the profile write fails the account exists
// without a profile.
func (s *accountService) SignUp(ctx context.Context, in ports.SignUpInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.forms.Struct(in); err != nil {
		return "", err
	}

	uid, err := s.identity.CreateAccount(ctx, in.Email, in.Password)
	if err != nil {
		return "", fmt.Errorf("sign up: %w", err)
	}

	profile := domain.Profile{UID: uid, Name: in.Name, Email: in.Email}
	if err := s.docs.Set(ctx, ports.CollectionUsers, uid, profileFields(profile)); err != nil {
		s.log.Error().Err(err).Str("uid", uid).Msg("account created without profile")
		return "", writeFailure("sign up: save profile", err)
	}

	s.log.Info().Str("uid", uid).Msg("account created")
	return uid, nil
}

// Login authenticates, loads the profile and makes it the session user. On
// any failure the session is left untouched.
func (s *accountService) Login(ctx context.Context, email, password string) (*domain.SessionUser, error) {
	in := loginInput{Email: strings.TrimSpace(email), Password: password}
	if err := s.forms.Struct(in); err != nil {
		return nil, err
	}

	uid, err := s.identity.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	doc, err := s.docs.Get(ctx, ports.CollectionUsers, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Str("uid", uid).Msg("login without profile document")
			return nil, fmt.Errorf("login: profile %s: %w", uid, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("login: load profile: %w", err)
	}

	user := profileFromDocument(doc).SessionUser()
	s.session.SetUser(ctx, *user)
	s.log.Info().Str("uid", user.ID).Msg("logged in")
	return user, nil
}

// Logout clears the session. It never fails from the caller's point of view.
func (s *accountService) Logout(ctx context.Context) {
	s.session.ClearUser(ctx)
	s.log.Info().Msg("logged out")
}

func (s *accountService) CurrentUser() *domain.SessionUser {
	return s.session.CurrentUser()
}
