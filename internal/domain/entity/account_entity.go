package entity

import (
	"time"
)

// Role is the authorization role of an account.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// SocialType records which provider created the account. Native accounts
// sign up with email and password.
type SocialType string

const (
	SocialNative SocialType = "native"
	SocialGoogle SocialType = "google"
	SocialKakao  SocialType = "kakao"
	SocialNaver  SocialType = "naver"
)

// Account is the aggregate root for the account domain.
// Password holds the bcrypt hash, never the plain text.
type Account struct {
	ID         int64
	Email      string
	Nickname   string
	Password   string
	Role       Role
	IsVerified bool
	SocialID   *string
	SocialType SocialType
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// NewMember builds an unverified native member account.
func NewMember(email, nickname, passwordHash string) *Account {
	return &Account{
		Email:      email,
		Nickname:   nickname,
		Password:   passwordHash,
		Role:       RoleMember,
		SocialType: SocialNative,
	}
}

// IsDeleted reports whether the account was soft-deleted.
func (a *Account) IsDeleted() bool { return a.DeletedAt != nil }
