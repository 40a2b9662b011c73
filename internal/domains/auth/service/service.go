package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"

	"reserva/config"
	"reserva/infras/googleauth"
	"reserva/infras/otel"
	"reserva/infras/session"
	"reserva/infras/storage"
	"reserva/internal/domains/auth/model/dto"
	userModel "reserva/internal/domains/user/model"
	userDto "reserva/internal/domains/user/model/dto"
	userRepo "reserva/internal/domains/user/repository"
	"reserva/shared"
	"reserva/shared/cache"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
	"reserva/shared/failure"
	gModel "reserva/shared/model"
	"reserva/shared/password"
	"reserva/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	avatarDirectory = "avatars"
	userCachePrefix = "user:"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, string, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, string, error)
	GoogleAuthURL(state string) string
	GoogleLogin(ctx context.Context, code string) (string, error)
	Me(ctx context.Context) (dto.MeResponse, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (dto.AuthResponse, error)
}

type serviceImpl struct {
	users    userRepo.User
	sessions session.Manager
	google   googleauth.Provider
	storage  storage.Storage
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(users userRepo.User, sessions session.Manager, google googleauth.Provider, storage storage.Storage, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Auth {
	return &serviceImpl{
		users:    users,
		sessions: sessions,
		google:   google,
		storage:  storage,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func filterByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    userModel.TableName,
			},
		},
	}
}

func filterByGoogleID(googleID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldGoogleID,
				Operator: gDto.FilterOperatorEq,
				Value:    googleID,
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) bcryptCost() int {
	if s.cfg.Auth.BcryptCost > 0 {
		return s.cfg.Auth.BcryptCost
	}

	return password.DefaultCost
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, token string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.users.Exist(ctx, filterByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check email existence")

		return res, token, fmt.Errorf("failed to check email existence: %w", err)
	}

	if exists {
		return res, token, failure.Conflict("email already registered")
	}

	hash, err := password.HashWithCost(req.Password, s.bcryptCost())
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, token, fmt.Errorf("failed to hash password: %w", err)
	}

	user := userModel.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: &hash,
		FullName: req.Name,
		Role:     constant.RoleCustomer,
	}
	user.Metadata = gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  user.ID,
		ModifiedBy: user.ID,
	}

	if err = s.users.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, token, fmt.Errorf("failed to create user: %w", err)
	}

	token, err = s.sessions.Create(ctx, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")

		return res, token, fmt.Errorf("failed to create session: %w", err)
	}

	res.User.FromModel(user)

	return res, token, nil
}

// Login collapses unknown email, federation-only accounts, and wrong
// passwords into one answer so accounts cannot be enumerated.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, token string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.users.Get(ctx, filterByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email")

		return res, token, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.ID == constant.Empty || user.Password == nil {
		return res, token, failure.Unauthorized("invalid email or password")
	}

	if err = password.Verify(req.Password, *user.Password); err != nil {
		return res, token, failure.Unauthorized("invalid email or password")
	}

	token, err = s.sessions.Create(ctx, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")

		return res, token, fmt.Errorf("failed to create session: %w", err)
	}

	res.User.FromModel(user)

	return res, token, nil
}

func (s *serviceImpl) GoogleAuthURL(state string) string {
	return s.google.AuthURL(state)
}

// GoogleLogin exchanges the callback code, resolves the account by its
// google id, and creates the user on first login. Missing profile fields
// are tolerated as empty values.
func (s *serviceImpl) GoogleLogin(ctx context.Context, code string) (token string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GoogleLogin")
	defer scope.End()
	defer scope.TraceIfError(err)

	profile, err := s.google.FetchProfile(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch google profile")

		return token, fmt.Errorf("failed to fetch google profile: %w", err)
	}

	user, err := s.users.Get(ctx, filterByGoogleID(profile.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by google id")

		return token, fmt.Errorf("failed to get user by google id: %w", err)
	}

	if user.ID == constant.Empty {
		googleID := profile.ID
		user = userModel.User{
			ID:       uuid.NewString(),
			Email:    profile.Email,
			FullName: profile.Name,
			GoogleID: &googleID,
			Role:     constant.RoleCustomer,
		}

		if profile.Picture != constant.Empty {
			picture := profile.Picture
			user.ProfileImage = &picture
		}

		user.Metadata = gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user.ID,
			ModifiedBy: user.ID,
		}

		if err = s.users.Insert(ctx, user); err != nil {
			log.Error().Err(err).Msg("failed to create user from google profile")

			return token, fmt.Errorf("failed to create user from google profile: %w", err)
		}
	}

	token, err = s.sessions.Create(ctx, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")

		return token, fmt.Errorf("failed to create session: %w", err)
	}

	return token, nil
}

// Me never fails for an anonymous caller; the user is simply null.
func (s *serviceImpl) Me(ctx context.Context) (res dto.MeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, nil
	}

	user, err := s.users.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get current user")

		return res, fmt.Errorf("failed to get current user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, nil
	}

	userRes := userDto.UserResponse{}
	userRes.FromModel(user)
	res.User = &userRes

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(err)

	sessionID, _ := ctx.Value(constant.ContextKeySessionID).(string)

	if err = s.sessions.Destroy(ctx, sessionID); err != nil {
		log.Error().Err(err).Msg("failed to destroy session")

		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required")
	}

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: userID,
	}

	if req.Name != nil {
		fields[userModel.FieldFullName] = *req.Name
	}

	if req.Phone != nil {
		fields[userModel.FieldPhone] = *req.Phone
	}

	if req.Address != nil {
		fields[userModel.FieldAddress] = *req.Address
	}

	if req.Password != nil {
		if req.ConfirmPassword == nil || *req.Password != *req.ConfirmPassword {
			return res, failure.BadRequestFromString("password confirmation does not match")
		}

		hash, err := password.HashWithCost(*req.Password, s.bcryptCost())
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return res, fmt.Errorf("failed to hash password: %w", err)
		}

		fields[userModel.FieldPassword] = hash
	}

	if req.Avatar != nil && req.AvatarFile != nil {
		data, err := io.ReadAll(req.AvatarFile)
		if err != nil {
			log.Error().Err(err).Msg("failed to read avatar upload")

			return res, fmt.Errorf("failed to read avatar upload: %w", err)
		}

		contentType := req.Avatar.Header.Get(constant.RequestHeaderContentType)

		url, err := s.storage.Save(ctx, avatarDirectory, req.Avatar.Filename, contentType, data)
		if err != nil {
			log.Error().Err(err).Msg("failed to store avatar")

			return res, fmt.Errorf("failed to store avatar: %w", err)
		}

		fields[userModel.FieldProfileImage] = url
	}

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	if err = s.users.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return res, fmt.Errorf("failed to update profile: %w", err)
	}

	user, err := s.users.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload profile")

		return res, fmt.Errorf("failed to reload profile: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)
		shared.InvalidateCaches(c, s.cache, userCachePrefix)
	}()

	res.User.FromModel(user)

	return res, nil
}
