package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/validation"
)

// minPasswordLength is the provider's own rule, looser than the client's.
const minPasswordLength = 6

type account struct {
	uid  string
	hash []byte
}

// IdentityProvider keeps email/password accounts in memory.
type IdentityProvider struct {
	mu       sync.Mutex
	accounts map[string]account
	newID    func() string
}

// IdentityOption configures an IdentityProvider.
type IdentityOption func(*IdentityProvider)

// WithIDGenerator replaces the uuid account identifiers.
func WithIDGenerator(fn func() string) IdentityOption {
	return func(p *IdentityProvider) { p.newID = fn }
}

func NewIdentityProvider(opts ...IdentityOption) *IdentityProvider {
	p := &IdentityProvider{
		accounts: make(map[string]account),
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *IdentityProvider) CreateAccount(_ context.Context, email, password string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	if !validation.IsValidEmail(key) {
		return "", domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return "", domain.ErrWeakCredential
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrWeakCredential
	}
	if err != nil {
		return "", fmt.Errorf("memory: hash password: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.accounts[key]; ok {
		return "", domain.ErrAccountExists
	}
	uid := p.newID()
	p.accounts[key] = account{uid: uid, hash: hash}
	return uid, nil
}

func (p *IdentityProvider) SignIn(_ context.Context, email, password string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	p.mu.Lock()
	acc, ok := p.accounts[key]
	p.mu.Unlock()
	if !ok {
		return "", domain.ErrAccountNotFound
	}
	if bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return "", domain.ErrBadCredential
	}
	return acc.uid, nil
}
