package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	autherrors "hr-portal/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"

	AccessTokenCookie = "access_token"
)

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type Token struct {
	AccessToken string
	Role        string
	ExpiresAt   time.Time
}

// TokenManager signs and verifies HS256 access tokens. Admin rights are
// granted by e-mail address, there is no role column in storage.
type TokenManager struct {
	secret      []byte
	expiry      time.Duration
	adminEmails map[string]struct{}
	now         func() time.Time
}

func NewTokenManager(secret string, expiry time.Duration, adminEmails []string) *TokenManager {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenManager{
		secret:      []byte(secret),
		expiry:      expiry,
		adminEmails: admins,
		now:         time.Now,
	}
}

func (m *TokenManager) RoleFor(email string) string {
	if _, ok := m.adminEmails[strings.ToLower(strings.TrimSpace(email))]; ok {
		return RoleAdmin
	}
	return RoleEmployee
}

func (m *TokenManager) IssueAccessToken(userID uint, email string) (Token, error) {
	now := m.now()
	exp := now.Add(m.expiry)
	role := m.RoleFor(email)

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, Role: role, ExpiresAt: exp}, nil
}

func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
