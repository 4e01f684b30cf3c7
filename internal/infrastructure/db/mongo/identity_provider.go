package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/validation"
)

const (
	accountsCollection = "accounts"
	// minPasswordLength is the provider's own rule, looser than the client's.
	minPasswordLength = 6
)

// IdentityProvider keeps email/password accounts in their own collection,
// separate from the "users" profiles.
type IdentityProvider struct {
	coll *mongo.Collection
}

func NewIdentityProvider(db *mongo.Database) *IdentityProvider {
	return &IdentityProvider{coll: db.Collection(accountsCollection)}
}

type mongoAccount struct {
	UID          string `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	CreatedAt    int64  `bson:"created_at"`
}

func (p *IdentityProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if !validation.IsValidEmail(email) {
		return "", domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return "", domain.ErrWeakCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrWeakCredential
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	acc := mongoAccount{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC().Unix(),
	}
	if _, err := p.coll.InsertOne(ctx, acc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrAccountExists
		}
		return "", fmt.Errorf("insert account: %w", err)
	}
	return acc.UID, nil
}

func (p *IdentityProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var acc mongoAccount
	if err := p.coll.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&acc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrAccountNotFound
		}
		return "", fmt.Errorf("find account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrBadCredential
	}
	return acc.UID, nil
}

// EnsureIndexes creates the unique email index.
func (p *IdentityProvider) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := p.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
