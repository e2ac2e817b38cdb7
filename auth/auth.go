// Package auth provides bearer token authentication for the Flight service.
package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var (
	// ErrInvalidAuthHeader is returned when the authorization header is not a bearer token.
	ErrInvalidAuthHeader = errors.New("authorization header must use Bearer scheme")

	// ErrTokenIsEmpty is returned for a missing or empty bearer token.
	ErrTokenIsEmpty = errors.New("bearer token is empty")

	// ErrUnauthenticated is returned when the authenticator rejects a token.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// HeaderAuthorization is the gRPC metadata key carrying the bearer token.
const HeaderAuthorization = "authorization"

// Authenticator validates bearer tokens and returns the caller identity.
// Implementations must be safe for concurrent use.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (identity string, err error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, token string) (string, error)

// Authenticate calls f.
func (f AuthenticatorFunc) Authenticate(ctx context.Context, token string) (string, error) {
	return f(ctx, token)
}

// BearerAuth creates an Authenticator from a token validation function.
//
//	a := auth.BearerAuth(func(token string) (string, error) {
//	    if token != secret {
//	        return "", errors.New("unknown token")
//	    }
//	    return "reporting", nil
//	})
func BearerAuth(validate func(token string) (identity string, err error)) Authenticator {
	return AuthenticatorFunc(func(_ context.Context, token string) (string, error) {
		return validate(token)
	})
}

type contextKey int

const identityKey contextKey = iota

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the authenticated identity, or "" for
// unauthenticated requests.
func IdentityFromContext(ctx context.Context) string {
	identity, _ := ctx.Value(identityKey).(string)
	return identity
}

// TokenFromAuthorizationHeader extracts the token of a "Bearer <token>" header.
func TokenFromAuthorizationHeader(header string) (string, error) {
	const prefix = "Bearer "
	if header == "" {
		return "", ErrTokenIsEmpty
	}
	if !strings.HasPrefix(header, prefix) {
		return "", ErrInvalidAuthHeader
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", ErrTokenIsEmpty
	}
	return token, nil
}

// authenticate validates the bearer token of the incoming request and
// returns a context carrying the identity. Failures are Unauthenticated
// gRPC statuses.
func authenticate(ctx context.Context, a Authenticator) (context.Context, error) {
	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(HeaderAuthorization); len(values) > 0 {
			header = values[0]
		}
	}

	token, err := TokenFromAuthorizationHeader(header)
	if err != nil {
		return ctx, status.Error(codes.Unauthenticated, err.Error())
	}
	identity, err := a.Authenticate(ctx, token)
	if err != nil {
		return ctx, status.Errorf(codes.Unauthenticated, "%v: %v", ErrUnauthenticated, err)
	}
	return WithIdentity(ctx, identity), nil
}
