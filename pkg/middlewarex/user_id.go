package middlewarex

import (
	"net/http"

	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/logx"
)

const headerNameUserID = "X-User-Id"

// UserID stores the caller named by the X-User-Id header in the context and
// in the request logger. Requests without the header stay anonymous.
func UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(headerNameUserID)
		if userID == "" {
			next.ServeHTTP(w, r)

			return
		}

		ctx := contextx.WithUserID(r.Context(), contextx.UserID(userID))
		ctx = contextx.WithLogger(ctx, logger(ctx).With(logx.FieldUserID, userID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
