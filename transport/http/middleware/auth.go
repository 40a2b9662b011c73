package middleware

import (
	"context"
	"net/http"
	"slices"

	"reserva/config"
	"reserva/infras/otel"
	"reserva/infras/session"
	"reserva/internal/domains/user/model"
	userRepo "reserva/internal/domains/user/repository"
	"reserva/permissions"
	"reserva/shared"
	"reserva/shared/constant"
	"reserva/shared/failure"
	"reserva/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type principalKey string

const contextKeyPrincipal principalKey = "principal"

// Principal is the authenticated caller attached to the request context.
// It is rebuilt from the database on every request so role changes take
// effect immediately.
type Principal struct {
	ID        string
	Email     string
	Role      string
	SessionID string
}

func (p Principal) IsElevated() bool {
	return p.Role == constant.RoleAdmin || p.Role == constant.RoleOwner
}

// PrincipalFromContext returns the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(contextKeyPrincipal).(Principal)

	return principal, ok
}

// Auth resolves the session cookie into a Principal and enforces
// authentication; Role applies the embedded RBAC table.
type Auth interface {
	Auth(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	sessions   session.Manager
	users      userRepo.User
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(sessions session.Manager, users userRepo.User, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		sessions:   sessions,
		users:      users,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// resolvePrincipal turns the session cookie into a Principal. It fails
// soft: any invalid, expired, or orphaned session just yields no
// principal so public routes keep working with a stale cookie.
func (m *authRoleImpl) resolvePrincipal(r *http.Request) (Principal, bool) {
	token := session.ReadCookie(r)
	if token == constant.Empty {
		return Principal{}, false
	}

	ctx := r.Context()

	userID, sessionID, err := m.sessions.Resolve(ctx, token)
	if err != nil {
		return Principal{}, false
	}

	user, err := m.users.Get(ctx, shared.FilterByID(userID, model.FieldID, model.TableName))
	if err != nil || user.ID == constant.Empty {
		return Principal{}, false
	}

	return Principal{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		SessionID: sessionID,
	}, true
}

func (m *authRoleImpl) routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path)
}

// Auth attaches the Principal when a valid session exists and rejects
// unauthenticated requests on routes not marked skip in the permission
// table.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		path := m.routePattern(request)
		method := request.Method

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     method,
		})

		principal, authenticated := m.resolvePrincipal(request)
		if authenticated {
			ctx = context.WithValue(ctx, contextKeyPrincipal, principal)
			ctx = context.WithValue(ctx, constant.ContextKeyUserID, principal.ID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, principal.Email)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, principal.Role)
			ctx = context.WithValue(ctx, constant.ContextKeySessionID, principal.SessionID)
			request = request.WithContext(ctx)
		}

		if m.permission != nil {
			permission := m.permission.FindPermission(path, method)
			if permission.Skip {
				scope.End()
				next.ServeHTTP(writer, request)

				return
			}
		}

		if !authenticated {
			err := failure.Unauthorized("Authentication required")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// RBAC checks the caller's role against the embedded permission table.
// Requires prior authentication via Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path := m.routePattern(request)
		permission := m.permission.FindPermission(path, request.Method)

		if permission.Skip || len(permission.Roles) == 0 {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		principal, _ := PrincipalFromContext(ctx)

		if !slices.Contains(permission.Roles, principal.Role) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     principal.Role,
				"allowed_roles": permission.Roles,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}
