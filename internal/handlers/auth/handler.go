package auth

import (
	"net/http"

	"reserva/config"
	"reserva/infras/otel"
	"reserva/infras/session"
	"reserva/internal/domains/auth/model/dto"
	"reserva/internal/domains/auth/service"
	"reserva/shared/constant"
	"reserva/shared/validator"
	"reserva/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const oauthStateCookie = "reserva_oauth_state"

type Handler struct {
	service  service.Auth
	sessions session.Manager
	cfg      *config.Config
	otel     otel.Otel
}

func New(service service.Auth, sessions session.Manager, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		sessions: sessions,
		cfg:      cfg,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/register", handler.Register)
		routerGroup.Post("/login", handler.Login)
		routerGroup.Get("/google", handler.GoogleRedirect)
		routerGroup.Get("/google/callback", handler.GoogleCallback)
		routerGroup.Get("/me", handler.Me)
		routerGroup.Put("/me", handler.UpdateProfile)
		routerGroup.Post("/logout", handler.Logout)
	})
}

// Register creates a password account and starts a session.
// @Summary Register a new account
// @Description Create a customer account with email and password.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /auth/register [post]
func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, token, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register account")

		response.WithError(writer, err)

		return
	}

	session.WriteCookie(writer, handler.cfg, token, handler.sessions.TTL())

	response.WithJSON(writer, http.StatusCreated, res)
}

// Login authenticates a password account and starts a session.
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.AuthResponse "Logged in"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /auth/login [post]
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, token, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("login rejected")

		response.WithError(writer, err)

		return
	}

	session.WriteCookie(writer, handler.cfg, token, handler.sessions.TTL())

	response.WithJSON(writer, http.StatusOK, res)
}

// GoogleRedirect sends the browser to the Google consent screen.
// @Summary Start Google login
// @Tags Auth
// @Success 302
// @Router /auth/google [get]
func (handler *Handler) GoogleRedirect(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GoogleRedirect")
	defer scope.End()

	state := uuid.NewString()

	http.SetCookie(writer, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int(constant.OAuthStateTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.cfg.Server.Env == constant.ServerEnvProduction,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(writer, request, handler.service.GoogleAuthURL(state), http.StatusFound)
}

// GoogleCallback completes the consent flow. Every failure lands the
// browser back on the frontend login page rather than a JSON error.
// @Summary Google login callback
// @Tags Auth
// @Success 302
// @Router /auth/google/callback [get]
func (handler *Handler) GoogleCallback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GoogleCallback")
	defer scope.End()

	failureURL := handler.cfg.App.FrontendURL + "/login?error=auth_failed"

	stateCookie, err := request.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == constant.Empty || stateCookie.Value != request.URL.Query().Get("state") {
		log.Warn().Msg("google callback state mismatch")

		http.Redirect(writer, request, failureURL, http.StatusFound)

		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    constant.Empty,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	code := request.URL.Query().Get("code")
	if code == constant.Empty {
		log.Warn().Msg("google callback is missing the authorization code")

		http.Redirect(writer, request, failureURL, http.StatusFound)

		return
	}

	token, err := handler.service.GoogleLogin(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("google login failed")

		http.Redirect(writer, request, failureURL, http.StatusFound)

		return
	}

	session.WriteCookie(writer, handler.cfg, token, handler.sessions.TTL())

	http.Redirect(writer, request, handler.cfg.App.FrontendURL+"/dashboard", http.StatusFound)
}

// Me reports the current session's user, or null when logged out.
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Router /auth/me [get]
func (handler *Handler) Me(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	res, err := handler.service.Me(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve current user")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateProfile updates the current user's profile from multipart form
// data, optionally replacing the avatar.
// @Summary Update profile
// @Tags Auth
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} dto.AuthResponse "Profile updated"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /auth/me [put]
func (handler *Handler) UpdateProfile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfile")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, err)

		return
	}

	req := dto.UpdateProfileRequest{}

	if value := request.FormValue("name"); value != constant.Empty {
		req.Name = &value
	}

	if value := request.FormValue("phone"); value != constant.Empty {
		req.Phone = &value
	}

	if value := request.FormValue("address"); value != constant.Empty {
		req.Address = &value
	}

	if value := request.FormValue("password"); value != constant.Empty {
		req.Password = &value
	}

	if value := request.FormValue("confirm_password"); value != constant.Empty {
		req.ConfirmPassword = &value
	}

	file, fileHeader, err := request.FormFile("avatar")
	if err == nil {
		req.Avatar = fileHeader
		req.AvatarFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpdateProfile(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update profile")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Logout destroys the session and clears the cookie. Calling it without a
// session still succeeds.
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message "Logged out successfully"
// @Router /auth/logout [post]
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	if err := handler.service.Logout(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to log out")

		response.WithError(writer, err)

		return
	}

	session.ClearCookie(writer, handler.cfg)

	response.WithMessage(writer, http.StatusOK, "Logged out successfully")
}
