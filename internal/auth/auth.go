package auth

import (
	"crypto/rsa"
	"time"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	SessionFor(userID int64) (*internal.SessionUser, error)
}

type RepositoryAPI interface {
	GetCredentials(email string) (passwordHash string, userID int64, err error)
	GetSessionUser(userID int64) (*internal.SessionUser, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64, email, role string) (string, error)
	GenerateRefreshToken(userID int64, email, role string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenGenerator signs session tokens with the service RSA key pair.
type JWTTokenGenerator struct {
	PrivateKey      *rsa.PrivateKey
	PublicKey       *rsa.PublicKey
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func NewJWTTokenGenerator(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		PrivateKey:      privateKey,
		PublicKey:       publicKey,
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID int64, email, role string) (string, error) {
	return j.generate(userID, email, role, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID int64, email, role string) (string, error) {
	return j.generate(userID, email, role, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) generate(userID int64, email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.PrivateKey)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, internal.ErrInvalidToken
		}
		return j.PublicKey, nil
	})
	if err != nil {
		if err == jwt.ErrTokenExpired {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
