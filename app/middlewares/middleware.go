package middlewares

import (
	"context"
	"net/http"

	"github.com/manovastra/storefront/app/helpers"
	"github.com/manovastra/storefront/app/utils/sessions"
)

// CurrentUserMiddleware loads the session user, if any, into the request
// context for downstream handlers.
func CurrentUserMiddleware(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := store.CurrentUser(r); user != nil {
				ctx := context.WithValue(r.Context(), helpers.ContextKeyUser, user)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin redirects anonymous requests to the login page, mirroring
// the storefront's account-only pages.
func RequireLogin(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store.CurrentUser(r) == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
