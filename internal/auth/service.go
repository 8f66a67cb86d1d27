package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"MastoRide/internal/config"
)

var (
	ErrInvalidEmailDomain = errors.New("use your @pfw.edu email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailTaken         = errors.New("email already registered")
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password so the response never reveals which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// institutional allow-list: only campus addresses may sign up
var campusEmailPattern = regexp.MustCompile(`^[^\s@]+@pfw\.edu$`)

const (
	minPasswordLength = 8
	resetTokenTTL     = time.Hour
)

// UserStore is the slice of the repository the credential manager needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	RecordLogin(ctx context.Context, id primitive.ObjectID) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expiry time.Time) error
	ConsumeResetToken(ctx context.Context, email, tokenHash, passwordHash string) (bool, error)
}

// UserService turns credentials into durable identities and identities into
// session tokens.
type UserService struct {
	store    UserStore
	mailer   config.Mailer
	logger   *zap.Logger
	resetURL string
}

func NewUserService(repo *UserRepository, mailer config.Mailer, logger *zap.Logger) *UserService {
	return NewUserServiceWithStore(repo, mailer, logger)
}

func NewUserServiceWithStore(store UserStore, mailer config.Mailer, logger *zap.Logger) *UserService {
	return &UserService{
		store:    store,
		mailer:   mailer,
		logger:   logger.Named("auth"),
		resetURL: "http://localhost:3000/reset-password",
	}
}

// CanonicalEmail lowercases and trims an address. All storage, lookup and
// uniqueness checks go through the canonical form.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates a new user-role identity. Role defaults to "user" and is
// immutable afterwards; admins come only from ProvisionAdmin.
func (s *UserService) SignUp(ctx context.Context, req SignupRequest) (*Identity, error) {
	email := CanonicalEmail(req.Email)
	if !campusEmailPattern.MatchString(email) {
		return nil, ErrInvalidEmailDomain
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleUser,
		CreatedAt:    time.Now(),
	}
	// CreateUser returns ErrEmailTaken on the unique-index violation, which
	// closes the race between the pre-check above and the insert.
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID.Hex()))
	return user.PublicIdentity(), nil
}

// ProvisionAdmin creates an admin-role identity. There is no promotion path
// from user to admin.
func (s *UserService) ProvisionAdmin(ctx context.Context, req SignupRequest) (*Identity, error) {
	email := CanonicalEmail(req.Email)
	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("admin provisioned", zap.String("user_id", admin.ID.Hex()))
	return admin.PublicIdentity(), nil
}

// LogIn verifies the credential and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *UserService) LogIn(ctx context.Context, cred Credential) (*Session, error) {
	email := CanonicalEmail(cred.Email)
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !CheckPasswordHash(cred.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.store.RecordLogin(ctx, user.ID); err != nil {
		// analytics only, never blocks a login
		s.logger.Warn("failed to record login", zap.Error(err))
	}

	identity := user.PublicIdentity()
	token, err := GenerateJWT(identity, SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return &Session{Token: token, Identity: identity}, nil
}

// GenericResetAck is returned whether or not the address has an account.
const GenericResetAck = "If an account exists for that address, a reset link was sent."

// RequestPasswordReset generates a single-use reset credential when the
// account exists. Only its hash is persisted; the plaintext goes out through
// the mailer. The caller always gets the same acknowledgment.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = CanonicalEmail(email)
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	plaintext, hash, err := NewResetToken()
	if err != nil {
		return err
	}
	if err := s.store.SetResetToken(ctx, user.ID, hash, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s?token=%s&email=%s", s.resetURL, plaintext, email)
	if err := s.mailer.Send(email, "Password Reset", "Click the link to reset your password: "+resetLink); err != nil {
		s.logger.Error("failed to send reset email", zap.Error(err))
	}
	return nil
}

// CompletePasswordReset swaps the password hash if the reset credential
// matches and has not expired. The credential is consumed either way.
func (s *UserService) CompletePasswordReset(ctx context.Context, req ResetPasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	ok, err := s.store.ConsumeResetToken(ctx, CanonicalEmail(req.Email), HashResetToken(req.Token), hash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidResetToken
	}
	return nil
}

// CurrentIdentity decodes a session token back into the identity it carries.
// Pure lookup, no store access and no mutation.
func (s *UserService) CurrentIdentity(token string) *Identity {
	claims, err := ValidateJWT(token)
	if err != nil {
		return nil
	}
	return claims.Identity()
}
