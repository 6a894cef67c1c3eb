package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pkordes/trip-planner/backend/internal/identity"
)

var errNoBearer = errors.New("missing bearer token")

// NewOwnerResolver returns a middleware that resolves the caller identity and
// stores it with identity.WithOwner.
//
// With a jwtSecret, every request must carry "Authorization: Bearer <token>"
// where the token is HS256-signed with that secret; its "sub" claim becomes
// the owner id. Anything else is answered with 401.
//
// Without a jwtSecret the resolver runs in development mode and every
// request is attributed to devOwnerID.
func NewOwnerResolver(jwtSecret, devOwnerID string) func(http.Handler) http.Handler {
	if jwtSecret == "" {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(identity.WithOwner(r.Context(), devOwnerID)))
			})
		}
	}

	key := []byte(jwtSecret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, err := ownerFromRequest(r, parser, key)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(identity.WithOwner(r.Context(), owner)))
		})
	}
}

func ownerFromRequest(r *http.Request, parser *jwt.Parser, key []byte) (string, error) {
	raw, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return "", errNoBearer
	}

	tok, err := parser.Parse(raw, func(*jwt.Token) (any, error) { return key, nil })
	if err != nil {
		return "", err
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return sub, nil
}

// bearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
