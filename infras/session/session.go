package session

//go:generate go run go.uber.org/mock/mockgen -source=./session.go -destination=./mocks/session_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reserva/config"
	"reserva/infras/otel"
	"reserva/shared/constant"
	"reserva/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session has expired")
	ErrNoSession      = errors.New("no active session")
)

// claims carries nothing but the session id; the user is re-fetched from
// the database on every request.
type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager tracks server-side sessions keyed by an opaque id carried in a
// signed cookie token. Redis holds session id -> user id with the session
// TTL; destroying a session is a single idempotent DEL.
type Manager interface {
	Create(ctx context.Context, userID string) (token string, err error)
	Resolve(ctx context.Context, token string) (userID, sessionID string, err error)
	Destroy(ctx context.Context, sessionID string) error
	TTL() time.Duration
}

type managerImpl struct {
	cfg    *config.Config
	client *goRedis.Client
	otel   otel.Otel
}

func New(cfg *config.Config, client *goRedis.Client, otl otel.Otel) Manager {
	return &managerImpl{
		cfg:    cfg,
		client: client,
		otel:   otl,
	}
}

func (m *managerImpl) TTL() time.Duration {
	hours := m.cfg.Auth.Session.TTLHours
	if hours <= 0 {
		hours = 24
	}

	return time.Duration(hours) * time.Hour
}

func (m *managerImpl) Create(ctx context.Context, userID string) (token string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	sessionID := uuid.NewString()
	now := timezone.Now()

	if err = m.client.Set(ctx, constant.SessionKeyPrefix+sessionID, userID, m.TTL()).Err(); err != nil {
		log.Error().Err(err).Msg("failed to persist session")

		return constant.Empty, fmt.Errorf("failed to persist session: %w", err)
	}

	sessionClaims := claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.cfg.App.Name,
			ID:        sessionID,
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims).
		SignedString([]byte(m.cfg.Auth.Session.Secret))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, nil
}

func (m *managerImpl) Resolve(ctx context.Context, token string) (userID, sessionID string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Resolve")
	defer scope.End()

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(m.cfg.Auth.Session.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return constant.Empty, constant.Empty, ErrExpiredSession
		}

		return constant.Empty, constant.Empty, ErrInvalidSession
	}

	sessionClaims, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || sessionClaims.SessionID == constant.Empty {
		return constant.Empty, constant.Empty, ErrInvalidSession
	}

	userID, err = m.client.Get(ctx, constant.SessionKeyPrefix+sessionClaims.SessionID).Result()
	if err != nil {
		if errors.Is(err, goRedis.Nil) {
			return constant.Empty, constant.Empty, ErrNoSession
		}

		return constant.Empty, constant.Empty, fmt.Errorf("failed to look up session: %w", err)
	}

	return userID, sessionClaims.SessionID, nil
}

func (m *managerImpl) Destroy(ctx context.Context, sessionID string) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Destroy")
	defer scope.End()
	defer scope.TraceIfError(err)

	if sessionID == constant.Empty {
		return nil
	}

	if err = m.client.Del(ctx, constant.SessionKeyPrefix+sessionID).Err(); err != nil {
		log.Error().Err(err).Msg("failed to destroy session")

		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}
