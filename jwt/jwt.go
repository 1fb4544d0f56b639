package jwt

import (
	"os"
	"time"

	"github.com/DillonStreator/safeid/entityid"
	jwtgo "github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const ttl = 15 * time.Minute

var (
	ErrExpired       = errors.New("jwt is expired")
	ErrInvalidClaim  = errors.New("failed to parse claim")
	ErrSigningMethod = errors.New("unexpected signing method")
	ErrMissingSecret = errors.New("JWT_SECRET is not set")
)

type Input struct {
	UserID entityid.ID
	Email  string
}

// The user id decodes fail-safe: a signed token carrying a malformed id
// verifies with UserID == entityid.Empty.
type claim struct {
	UserID entityid.ID `json:"userId"`
	Email  string      `json:"email"`
	jwtgo.StandardClaims
}

func getJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return []byte(secret), nil
}

func SignJWT(input Input) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	c := claim{
		UserID: input.UserID,
		Email:  input.Email,
		StandardClaims: jwtgo.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, c)
	signed, err := token.SignedString(secret)
	return signed, errors.Wrap(err, "sign jwt")
}

func Verify(jwt string) (claim, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return claim{}, err
	}

	token, err := jwtgo.ParseWithClaims(
		jwt,
		&claim{},
		func(token *jwtgo.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
				return nil, ErrSigningMethod
			}
			return secret, nil
		},
	)
	if err != nil {
		var validationErr *jwtgo.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwtgo.ValidationErrorExpired != 0 {
			return claim{}, ErrExpired
		}
		return claim{}, errors.Wrap(err, "verify jwt")
	}

	claims, ok := token.Claims.(*claim)
	if !ok {
		return claim{}, ErrInvalidClaim
	}

	if claims.ExpiresAt < time.Now().UTC().Unix() {
		return claim{}, ErrExpired
	}

	return *claims, nil
}
