package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
	"github.com/favourami/eventplanner/internal/core/session"
)

func TestAccount_SignUpThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	uid, err := f.accounts.SignUp(ctx, ports.SignUpInput{Name: "Jo", Email: "jo@example.com", Password: "Abcdef1!"})
	require.NoError(t, err)
	assert.Equal(t, "uid_1", uid)

	profile, err := f.docs.Get(ctx, ports.CollectionUsers, "uid_1")
	require.NoError(t, err)
	assert.Equal(t, ports.Fields{"uid": "uid_1", "name": "Jo", "email": "jo@example.com"}, profile.Fields)

	assert.Nil(t, f.session.CurrentUser(), "sign-up does not sign in")

	u, err := f.accounts.Login(ctx, "jo@example.com", "Abcdef1!")
	require.NoError(t, err)
	want := &domain.SessionUser{ID: "uid_1", DisplayName: "Jo", Email: "jo@example.com"}
	assert.Equal(t, want, u)
	assert.Equal(t, want, f.session.CurrentUser())
	assert.Equal(t, want, f.accounts.CurrentUser())

	// a fresh process hydrates the same user
	fresh := session.NewCache(f.kv, session.DefaultKey, newFixtureLog())
	fresh.Hydrate(ctx)
	assert.Equal(t, want, fresh.CurrentUser())
}

func TestAccount_SignUpValidationNeverReachesProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []ports.SignUpInput{
		{Name: "", Email: "jo@example.com", Password: "Abcdef1!"},
		{Name: "Jo", Email: "a@b", Password: "Abcdef1!"},
		{Name: "Jo", Email: "jo@example.com", Password: "short"},
	}
	for _, in := range cases {
		_, err := f.accounts.SignUp(ctx, in)
		assert.True(t, errors.Is(err, domain.ErrValidation), "input %+v", in)
	}
	assert.Zero(t, f.identity.creates)
}

func TestAccount_SignUpDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := ports.SignUpInput{Name: "Jo", Email: "jo@example.com", Password: "Abcdef1!"}

	_, err := f.accounts.SignUp(ctx, in)
	require.NoError(t, err)
	_, err = f.accounts.SignUp(ctx, in)
	assert.True(t, errors.Is(err, domain.ErrAccountExists))
	assert.Equal(t, "An account with this email already exists.", Notice(err))
}

func TestAccount_SignUpProfileWriteFailureLeavesAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.docs.writeErr = errors.New("unavailable")

	_, err := f.accounts.SignUp(ctx, ports.SignUpInput{Name: "Jo", Email: "jo@example.com", Password: "Abcdef1!"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrWrite))

	// the account exists without a profile, so login reports a missing profile
	f.docs.writeErr = nil
	_, err = f.accounts.Login(ctx, "jo@example.com", "Abcdef1!")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Nil(t, f.session.CurrentUser())
}

func TestAccount_LoginFailureLeavesSessionUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jo := f.signIn(t, "Jo", "jo@example.com")

	_, err := f.accounts.Login(ctx, "jo@example.com", "wrong-password")
	assert.True(t, errors.Is(err, domain.ErrBadCredential))
	assert.Equal(t, jo, f.session.CurrentUser())

	_, err = f.accounts.Login(ctx, "nobody@example.com", "Abcdef1!")
	assert.True(t, errors.Is(err, domain.ErrAccountNotFound))
	assert.Equal(t, jo, f.session.CurrentUser())
}

func TestAccount_LoginValidatesLocally(t *testing.T) {
	f := newFixture(t)
	_, err := f.accounts.Login(context.Background(), "", "")
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Zero(t, f.identity.signIns)
}

func TestAccount_Logout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(t, "Jo", "jo@example.com")

	f.accounts.Logout(ctx)
	assert.Nil(t, f.session.CurrentUser())
	_, ok, err := f.kv.Get(ctx, session.DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
