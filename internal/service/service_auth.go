package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
	"github.com/MKhiriev/rent-pe-easy/internal/utils"
	"github.com/MKhiriev/rent-pe-easy/models"
)

// authService is the concrete implementation of AuthService.
//
// It keeps at most one live refresh token per principal: every token is
// written through RefreshTokenRepository.ReplaceForUser, which removes the
// previous token in the same transaction, and the refresh_tokens.user_id
// unique constraint rejects a concurrent second insert.
type authService struct {
	userRepository         store.UserRepository
	refreshTokenRepository store.RefreshTokenRepository

	tokens TokenIssuer

	// passwordHashCost is the bcrypt cost used at registration.
	passwordHashCost int

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. The returned service is safe
// for concurrent use; all state is read-only after construction.
func NewAuthService(
	userRepository store.UserRepository,
	refreshTokenRepository store.RefreshTokenRepository,
	tokens TokenIssuer,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:         userRepository,
		refreshTokenRepository: refreshTokenRepository,
		tokens:                 tokens,
		passwordHashCost:       cfg.PasswordHashCost,
		ids:                    utils.NewUUIDGenerator(),
		now:                    func() time.Time { return time.Now().UTC() },
		logger:                 logger,
	}
}

// Register creates a USER account and issues its first token pair.
//
// Username and email uniqueness are checked before anything is written.
// A concurrent registration that slips past the check is still rejected
// by the store's unique constraints and reported the same way. The user
// row and its refresh token are written in one transaction, so a failed
// registration leaves no account behind.
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	username := strings.TrimSpace(request.Username)
	email := strings.TrimSpace(request.Email)

	exists, err := a.userRepository.ExistsByUsername(ctx, username)
	if err != nil {
		return models.AuthResult{}, internalError("checking username", err)
	}
	if exists {
		return models.AuthResult{}, ErrUsernameTaken
	}

	exists, err = a.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return models.AuthResult{}, internalError("checking email", err)
	}
	if exists {
		return models.AuthResult{}, ErrEmailTaken
	}

	hash, err := utils.HashPassword(request.Password, a.passwordHashCost)
	if err != nil {
		return models.AuthResult{}, internalError("hashing password", err)
	}

	now := a.now()
	user := models.User{
		UserID:       a.ids.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(request.FullName),
		PhoneNumber:  strings.TrimSpace(request.PhoneNumber),
		Role:         models.RoleUser,
		Enabled:      true,
		CreatedAt:    now,
	}

	access, err := a.tokens.IssueAccessToken(user.Principal(), now)
	if err != nil {
		return models.AuthResult{}, internalError("issuing access token", err)
	}
	refresh := a.tokens.NewRefreshToken(user.UserID, now)

	user, err = a.userRepository.CreateUserWithToken(ctx, user, refresh)
	switch {
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return models.AuthResult{}, ErrUsernameTaken
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.AuthResult{}, ErrEmailTaken
	case err != nil:
		log.Err(err).Str("func", "*authService.Register").Str("username", username).Msg("user creation ended with error")
		return models.AuthResult{}, internalError("creating user", err)
	}

	log.Info().Str("user_id", user.UserID.String()).Msg("user registered")

	return models.AuthResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Login authenticates by username and password, then replaces any live
// refresh token of the principal with a fresh one.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByUsername(ctx, strings.TrimSpace(request.Username))
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.AuthResult{}, internalError("finding user", err)
	}

	ok, err := utils.VerifyPassword(user.PasswordHash, request.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Str("user_id", user.UserID.String()).Msg("stored password hash is unusable")
		return models.AuthResult{}, internalError("verifying password", err)
	}
	if !ok {
		log.Warn().Str("user_id", user.UserID.String()).Msg("wrong password")
		return models.AuthResult{}, ErrInvalidCredentials
	}

	if !user.Enabled {
		return models.AuthResult{}, ErrAccountDisabled
	}

	return a.startSession(ctx, user)
}

// RefreshAccessToken issues a new access token for the owner of
// refreshToken. An expired token is deleted and reported as
// ErrRefreshTokenExpired, so presenting it again yields
// ErrRefreshTokenNotFound.
func (a *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	stored, err := a.refreshTokenRepository.FindByToken(ctx, refreshToken)
	if errors.Is(err, store.ErrRefreshTokenNotFound) {
		return models.AuthResult{}, ErrRefreshTokenNotFound
	}
	if err != nil {
		return models.AuthResult{}, internalError("finding refresh token", err)
	}

	now := a.now()
	if stored.IsExpired(now) {
		if err = a.refreshTokenRepository.DeleteByToken(ctx, refreshToken); err != nil {
			return models.AuthResult{}, internalError("deleting expired refresh token", err)
		}
		log.Info().Str("user_id", stored.UserID.String()).Msg("expired refresh token removed")
		return models.AuthResult{}, ErrRefreshTokenExpired
	}

	user, err := a.userRepository.FindUserByID(ctx, stored.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.AuthResult{}, ErrUserNotFound
	}
	if err != nil {
		return models.AuthResult{}, internalError("finding user", err)
	}

	access, err := a.tokens.IssueAccessToken(user.Principal(), now)
	if err != nil {
		return models.AuthResult{}, internalError("issuing access token", err)
	}

	return models.AuthResult{AccessToken: access, RefreshToken: stored, User: user}, nil
}

// Logout deletes the principal's refresh token. Calling it without a live
// token is not an error. Access tokens already issued stay valid until
// they expire.
func (a *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := a.refreshTokenRepository.DeleteByUserID(ctx, userID); err != nil {
		return internalError("deleting refresh token", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", userID.String()).Msg("user logged out")
	return nil
}

// ResolvePrincipal validates accessToken and loads the user it names.
// A deleted user is reported as ErrInvalidAccessToken, a disabled one as
// ErrAccountDisabled.
func (a *authService) ResolvePrincipal(ctx context.Context, accessToken string) (models.Principal, error) {
	claims, err := a.tokens.ParseAccessToken(accessToken)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("access token rejected")
		return models.Principal{}, ErrInvalidAccessToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.Principal{}, ErrInvalidAccessToken
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.Principal{}, ErrInvalidAccessToken
	}
	if err != nil {
		return models.Principal{}, internalError("finding user", err)
	}
	if !user.Enabled {
		return models.Principal{}, ErrAccountDisabled
	}

	return user.Principal(), nil
}

// startSession issues an access token and a new refresh token for user,
// replacing whatever refresh token the user held.
func (a *authService) startSession(ctx context.Context, user models.User) (models.AuthResult, error) {
	now := a.now()

	access, err := a.tokens.IssueAccessToken(user.Principal(), now)
	if err != nil {
		return models.AuthResult{}, internalError("issuing access token", err)
	}

	refresh := a.tokens.NewRefreshToken(user.UserID, now)
	if err = a.refreshTokenRepository.ReplaceForUser(ctx, refresh); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.startSession").Str("user_id", user.UserID.String()).Msg("error storing refresh token")
		return models.AuthResult{}, internalError("storing refresh token", err)
	}

	return models.AuthResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}
