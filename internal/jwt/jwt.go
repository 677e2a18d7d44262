package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"walletpoker-server/internal/config"
)

// Issuer is the wallet authentication service that issues the JWT
const Issuer = "walletpoker.auth"

// Audience is the intended JWT audience
const Audience = "walletpoker.tournament"

var secret []byte

// LoadSecret will load the HMAC secret from the configuration
// this method should only be called once.
func LoadSecret() {
	s := config.Instance().Auth.Secret
	if s == "" {
		logrus.Fatal("auth.secret is not configured")
	}

	UseSecret([]byte(s))
}

// UseSecret sets the HMAC secret directly
func UseSecret(s []byte) {
	secret = s
}

// Claims are the claims carried by a wallet-session token
type Claims struct {
	// Admin is set on tokens issued to the collaborator that creates tournaments
	Admin bool `json:"adm,omitempty"`
	jwtgo.StandardClaims
}

// Sign will sign a JWT for the player ID
// Tokens are normally issued by the wallet authentication service; Sign exists for tooling and
// tests.
func Sign(playerID string, ttl time.Duration) (string, error) {
	return sign(playerID, ttl, false)
}

// SignAdmin will sign a JWT that may also create tournaments
func SignAdmin(playerID string, ttl time.Duration) (string, error) {
	return sign(playerID, ttl, true)
}

func sign(playerID string, ttl time.Duration, admin bool) (string, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, Claims{
		Admin: admin,
		StandardClaims: jwtgo.StandardClaims{
			Audience:  Audience,
			Id:        uuid.New().String(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
			Issuer:    Issuer,
			Subject:   playerID,
		},
	})

	return token.SignedString(secret)
}

// ValidPlayerID will validate a signed JWT and return the player it was issued to
func ValidPlayerID(signedString string) (string, error) {
	claims, err := Validate(signedString)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

// Validate will validate a signed JWT and return its claims
func Validate(signedString string) (*Claims, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &Claims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*Claims); ok {
			if !claims.VerifyAudience(Audience, true) {
				return nil, errors.New("invalid audience")
			}

			if !claims.VerifyIssuer(Issuer, true) {
				return nil, errors.New("invalid issuer")
			}

			if claims.Subject == "" {
				return nil, errors.New("missing subject")
			}

			return claims, nil
		}

		return nil, fmt.Errorf("expected jwt.Claims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return nil, errors.New("claims were not valid")
}
