package apihandlers

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a session token encodes: the document the login was performed
// against.
type SessionClaims struct {
	RefID    string `json:"ref_id,omitempty"`
	ClassID  string `json:"class_id,omitempty"`
	jwt.RegisteredClaims
}

func generateSessionToken(refID, classID string, expiresIn time.Duration, secretKey string) (string, error) {
	claims := SessionClaims{
		refID,
		classID,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func validateSessionToken(tokenString string, secretKey string) (claims *SessionClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*SessionClaims)
	valid = valid && token.Valid
	return
}
