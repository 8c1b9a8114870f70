// Package auth verifies credentials and issues session tokens.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/visit-tracker/internal/audit"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/account"
	"github.com/BruksfildServices01/visit-tracker/internal/models"
	"github.com/BruksfildServices01/visit-tracker/internal/validators"
)

// Session is what sign-up and sign-in hand back to the caller.
type Session struct {
	User  account.Identity `json:"user"`
	Token string           `json:"token"`
}

type Service struct {
	db               *gorm.DB
	tokens           *TokenIssuer
	audit            *audit.Dispatcher
	checkEmailDomain bool
}

func NewService(db *gorm.DB, tokens *TokenIssuer, audit *audit.Dispatcher, checkEmailDomain bool) *Service {
	return &Service{db: db, tokens: tokens, audit: audit, checkEmailDomain: checkEmailDomain}
}

func (s *Service) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email = account.NormalizeEmail(email)
	if err := account.ValidateSignUp(email, password); err != nil {
		return nil, err
	}
	if s.checkEmailDomain && !validators.IsEmailDomainValid(ctx, email) {
		return nil, account.ErrInvalidEmail
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, account.ErrEmailInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.createUser(ctx, &user); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID: user.ID,
		Action: audit.ActionUserSignedUp,
		Entity: "user",
	})

	return s.session(user)
}

// createUser inserts the row. The unique email index settles concurrent
// sign-ups that both passed the existence check.
func (s *Service) createUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return account.ErrEmailInUse
	}
	return err
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = account.NormalizeEmail(email)

	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, account.ErrInvalidCredentials
	}

	s.audit.Dispatch(audit.Event{
		UserID: user.ID,
		Action: audit.ActionUserSignedIn,
		Entity: "user",
	})

	return s.session(user)
}

// SignOut records the event; tokens are stateless and expire on their own.
func (s *Service) SignOut(_ context.Context, id account.Identity) {
	s.audit.Dispatch(audit.Event{
		UserID: id.UserID,
		Action: audit.ActionUserSignedOut,
		Entity: "user",
	})
}

// Me confirms the user behind a token still exists.
func (s *Service) Me(ctx context.Context, userID string) (account.Identity, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account.Identity{}, account.ErrUnauthorized
		}
		return account.Identity{}, err
	}
	return account.Identity{UserID: user.ID, Email: user.Email}, nil
}

func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

func (s *Service) session(user models.User) (*Session, error) {
	id := account.Identity{UserID: user.ID, Email: user.Email}
	token, err := s.tokens.Issue(id)
	if err != nil {
		return nil, err
	}
	return &Session{User: id, Token: token}, nil
}
