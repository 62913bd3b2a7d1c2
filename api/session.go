package api

import (
	"context"
	"net/http"

	"github.com/warp/leave-board/leave"
)

// Viewer identity arrives on each request from the external session
// mechanism (a gateway or auth proxy): this service treats it as an
// opaque read-only input. An absent role defaults to member, so the
// ownership gate fails closed.

type contextKey int

const viewerKey contextKey = iota

const (
	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"
)

// SessionMiddleware derives the viewer context from request headers and
// attaches it to the request context.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer := leave.Viewer{
			CurrentUserID: leave.UserID(r.Header.Get(headerUserID)),
			Role:          leave.RoleMember,
		}
		if role := leave.Role(r.Header.Get(headerRole)); role.Elevated() {
			viewer.Role = role
		}
		ctx := context.WithValue(r.Context(), viewerKey, viewer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// viewerFrom returns the viewer attached by SessionMiddleware. Without
// the middleware it returns an anonymous member, who owns nothing.
func viewerFrom(ctx context.Context) leave.Viewer {
	if v, ok := ctx.Value(viewerKey).(leave.Viewer); ok {
		return v
	}
	return leave.Viewer{Role: leave.RoleMember}
}
