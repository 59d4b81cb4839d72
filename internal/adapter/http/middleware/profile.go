package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"housetasks/pkg/apierrors"
)

const (
	profileKey      = "profile_id"
	ProfileIDHeader = "X-Profile-ID"
)

var errInvalidSubject = errors.New("token subject is not a profile id")

// ProfileMiddleware identifies the acting profile. With a secret, the profile
// id is the subject of an HS256 bearer token; without one, it is read from the
// X-Profile-ID header. Requests without credentials continue anonymously.
func ProfileMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			if id, err := parseProfileID(c.GetHeader(ProfileIDHeader)); err == nil {
				c.Set(profileKey, id)
			}
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		id, err := profileFromBearer(header, secret)
		if err != nil {
			apierrors.Write(c, http.StatusUnauthorized, apierrors.MsgInvalidToken, GetLang(c))
			return
		}
		c.Set(profileKey, id)
		c.Next()
	}
}

// GetProfileID returns the acting profile, or nil for anonymous requests.
func GetProfileID(c *gin.Context) *uint64 {
	value, exists := c.Get(profileKey)
	if !exists {
		return nil
	}
	id, ok := value.(uint64)
	if !ok {
		return nil
	}
	return &id
}

func profileFromBearer(header, secret string) (uint64, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return 0, jwt.ErrTokenMalformed
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return 0, err
	}
	return parseProfileID(subject)
}

func parseProfileID(value string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidSubject
	}
	return id, nil
}
