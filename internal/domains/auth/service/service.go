package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Auth=MockAuthService

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"frontdesk/infras/jwt"
	"frontdesk/infras/otel"
	activityModel "frontdesk/internal/domains/activity/model"
	activityService "frontdesk/internal/domains/activity/service"
	"frontdesk/internal/domains/auth/model/dto"
	userModel "frontdesk/internal/domains/user/model"
	userRepo "frontdesk/internal/domains/user/repository"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	msgMissingCredentials = "Please enter both username and password"
	msgInvalidCredentials = "Invalid username or password"
	fmtLogLogin           = "User %s logged in"
	fmtLogLogout          = "User %s logged out"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Authorize(ctx context.Context, token string) (*jwt.Claims, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	sessions   cache.Cache
	activity   activityService.Activity
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, sessions cache.Cache, activity activityService.Activity, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		sessions:   sessions,
		activity:   activity,
		otel:       otel,
		jwtService: jwt,
	}
}

// Login checks the credentials against the users table and opens a session.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Trim()

	if req.Username == constant.Empty || req.Password == constant.Empty {
		return res, failure.BadRequestFromString(msgMissingCredentials)
	}

	usernameFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldUsername,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Username,
				Table:    userModel.TableName,
			},
		},
	}

	user, err := s.userRepo.Get(ctx, usernameFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 || subtle.ConstantTimeCompare([]byte(user.Password), []byte(req.Password)) != 1 {
		log.Warn().Str("username", req.Username).Msg("login attempt with invalid credentials")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	token, claims, err := s.jwtService.Generate(user.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session token")

		return res, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := dto.Session{
		Username: user.Username,
		LoginAt:  timezone.Now().Format(constant.DateTimeFormat),
	}

	if err = s.sessions.Save(ctx, dto.SessionKey(claims.TokenID), session, 0); err != nil {
		log.Error().Err(err).Msg("failed to save session")

		return res, fmt.Errorf("failed to save session: %w", err)
	}

	s.activity.Record(ctx, user.Username, activityModel.ActionLogin, fmt.Sprintf(fmtLogLogin, user.Username))

	res.FromClaims(token, claims)

	return res, nil
}

// Logout revokes the session of claims. Logging out an already revoked
// session still records the entry.
func (s *serviceImpl) Logout(ctx context.Context, claims *jwt.Claims) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if claims == nil {
		return nil
	}

	if err = s.sessions.Delete(ctx, dto.SessionKey(claims.TokenID)); err != nil {
		log.Error().Err(err).Str("username", claims.Username).Msg("failed to delete session")

		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.activity.Record(ctx, claims.Username, activityModel.ActionLogout, fmt.Sprintf(fmtLogLogout, claims.Username))

	return nil
}

// Authorize returns the claims of a signed token whose session is still open.
func (s *serviceImpl) Authorize(ctx context.Context, token string) (claims *jwt.Claims, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Authorize")
	defer scope.End()

	if token == constant.Empty {
		return nil, failure.SessionRequired
	}

	claims, err = s.jwtService.Validate(token)
	if err != nil {
		return nil, failure.SessionRequired
	}

	var session dto.Session

	err = s.sessions.Get(ctx, dto.SessionKey(claims.TokenID), &session)
	if errors.Is(err, cache.ErrMiss) {
		return nil, failure.SessionRequired
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read session")

		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if session.Username != claims.Username {
		return nil, failure.SessionRequired
	}

	return claims, nil
}
