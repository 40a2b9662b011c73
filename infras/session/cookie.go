package session

import (
	"net/http"
	"time"

	"reserva/config"
	"reserva/shared/constant"
)

// WriteCookie attaches the signed session token to the response. The cookie
// is httpOnly and SameSite=Lax; Secure is set only outside development so
// local frontends served over plain HTTP keep working.
func WriteCookie(w http.ResponseWriter, cfg *config.Config, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     constant.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Server.Env == constant.ServerEnvProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie immediately.
func ClearCookie(w http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     constant.SessionCookieName,
		Value:    constant.Empty,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Server.Env == constant.ServerEnvProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadCookie returns the raw session token from the request, or an empty
// string when no session cookie is present.
func ReadCookie(r *http.Request) string {
	cookie, err := r.Cookie(constant.SessionCookieName)
	if err != nil {
		return constant.Empty
	}

	return cookie.Value
}
