package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the server-of-record identity. The client only ever holds a copy
// of the public fields, inside the session token.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Email            string             `bson:"email"`
	PasswordHash     string             `bson:"password_hash"`
	Role             string             `bson:"role"`
	StudentID        string             `bson:"student_id,omitempty"`
	Phone            string             `bson:"phone,omitempty"`
	ResetTokenHash   string             `bson:"reset_token_hash,omitempty"`
	ResetTokenExpiry time.Time          `bson:"reset_token_expiry,omitempty"`
	LoginCount       int64              `bson:"login_count"`
	LastLoginAt      time.Time          `bson:"last_login_at,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
}

// Identity is the public projection of a User that handlers and the access
// guard work with.
type Identity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	StudentID string `json:"studentId,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// PublicIdentity projects the stored user onto its client-visible fields.
func (u *User) PublicIdentity() *Identity {
	return &Identity{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		StudentID: u.StudentID,
		Phone:     u.Phone,
	}
}

// Session is what a successful login hands back to the client: the signed
// bearer token plus the identity it encodes.
type Session struct {
	Token    string    `json:"token"`
	Identity *Identity `json:"user"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
