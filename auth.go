package qfilter

import (
	"context"

	"github.com/hugr-lab/qfilter/auth"
)

// Authenticator validates bearer tokens and returns user identity.
type Authenticator = auth.Authenticator

// BearerAuth creates an Authenticator from a validation function.
//
//	config := qfilter.ServerConfig{
//	    Catalog: cat,
//	    Auth: qfilter.BearerAuth(func(token string) (string, error) {
//	        if token != os.Getenv("QFILTER_TOKEN") {
//	            return "", qfilter.ErrUnauthorized
//	        }
//	        return "reporting", nil
//	    }),
//	}
func BearerAuth(validate func(token string) (identity string, err error)) Authenticator {
	return auth.BearerAuth(validate)
}

// IdentityFromContext returns the authenticated identity of a request,
// or "" when the request is unauthenticated.
func IdentityFromContext(ctx context.Context) string {
	return auth.IdentityFromContext(ctx)
}
