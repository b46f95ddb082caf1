package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/DvineConqueror/GroceryStorePOS/internal/config"
	"github.com/DvineConqueror/GroceryStorePOS/internal/dto"
	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
	"github.com/DvineConqueror/GroceryStorePOS/internal/repository"
	"github.com/DvineConqueror/GroceryStorePOS/internal/session"
	"github.com/DvineConqueror/GroceryStorePOS/internal/worker"
)

// AuthService mediates sign-in, sign-up, sign-out and session reconciliation.
// Operations resolve to {success, message} results rather than propagating
// provider errors: failures are logged and surfaced as user-facing messages.
type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) dto.AuthResult
	SignIn(ctx context.Context, req dto.SignInRequest) dto.SignInResponse
	SignOut(ctx context.Context, userID uuid.UUID, sessionToken string) dto.AuthResult
	// RefreshSession re-reads the profile and compares the device's session
	// token against the account's active one. A mismatch means another
	// device has since signed in and this session must be discarded.
	RefreshSession(ctx context.Context, userID uuid.UUID, sessionToken string) dto.RefreshSessionResponse

	ListPending(ctx context.Context) ([]dto.PendingProfileResponse, error)
	Approve(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	notifier   *session.Notifier
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewAuthService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	notifier *session.Notifier,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) AuthService {
	return &authService{users: users, profiles: profiles, notifier: notifier, dispatcher: dispatcher, cfg: cfg}
}

func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) dto.AuthResult {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		log.Error().Err(err).Msg("signup: hash password")
		return dto.AuthResult{Message: "Failed to create account"}
	}

	user := &model.User{Email: req.Email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("signup: create user")
		return dto.AuthResult{Message: "Failed to create account"}
	}

	profile := &model.Profile{
		ID:       user.ID,
		FullName: req.FullName,
		Role:     model.RoleCashier,
		Approved: false,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		// Compensating action: the credentials row and the profile row are
		// independent writes, so roll the first back by hand to avoid an
		// orphaned account.
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("signup: create profile, rolling back user")
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			log.Error().Err(delErr).Str("user_id", user.ID.String()).Msg("signup: compensating delete failed")
		}
		return dto.AuthResult{Message: "Failed to create user profile"}
	}

	if s.dispatcher != nil && s.cfg.AdminEmail != "" {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailPayload{
			To:      s.cfg.AdminEmail,
			Subject: "New cashier awaiting approval",
			Body:    fmt.Sprintf("%s (%s) signed up and is waiting for approval.", req.FullName, req.Email),
		})
	}

	return dto.AuthResult{Success: true, Message: "Account created. An administrator must approve it before you can sign in."}
}

func (s *authService) SignIn(ctx context.Context, req dto.SignInRequest) dto.SignInResponse {
	fail := func(msg string) dto.SignInResponse {
		return dto.SignInResponse{AuthResult: dto.AuthResult{Message: msg}}
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return fail("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return fail("Invalid credentials")
	}

	profile, err := s.profiles.FindByID(ctx, user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("signin: fetch profile")
		return fail("Failed to load profile")
	}

	// Unapproved accounts never end up with a retained session: no token is
	// issued and nothing is persisted.
	if !profile.Approved {
		return fail("Your account is pending approval by an administrator")
	}

	// Rotate the single-active-session token. Any older session on this
	// account sees the rotation on its next reconciliation (refresh or push)
	// and signs itself out.
	token := uuid.NewString()
	if err := s.profiles.UpdateSessionToken(ctx, user.ID, &token); err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("signin: rotate session token")
		return fail("Failed to sign in")
	}
	profile.ActiveSessionToken = &token
	if s.notifier != nil {
		s.notifier.PublishProfile(ctx, profile)
	}

	access, err := s.generateToken(user.ID, profile.Role, token)
	if err != nil {
		log.Error().Err(err).Msg("signin: sign jwt")
		return fail("Failed to sign in")
	}

	return dto.SignInResponse{
		AuthResult:   dto.AuthResult{Success: true},
		AccessToken:  access,
		SessionToken: token,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Profile:      profileSummary(profile),
	}
}

func (s *authService) SignOut(ctx context.Context, userID uuid.UUID, sessionToken string) dto.AuthResult {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("signout: fetch profile")
		return dto.AuthResult{Success: true}
	}

	// Only the active session clears the token; a stale device signing out
	// must not kill the session of the device that replaced it.
	if profile.ActiveSessionToken != nil && *profile.ActiveSessionToken == sessionToken {
		if err := s.profiles.UpdateSessionToken(ctx, userID, nil); err != nil {
			log.Error().Err(err).Str("user_id", userID.String()).Msg("signout: clear session token")
			return dto.AuthResult{Message: "Failed to sign out"}
		}
		profile.ActiveSessionToken = nil
		if s.notifier != nil {
			s.notifier.PublishProfile(ctx, profile)
		}
	}
	return dto.AuthResult{Success: true}
}

func (s *authService) RefreshSession(ctx context.Context, userID uuid.UUID, sessionToken string) dto.RefreshSessionResponse {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("refresh: fetch profile")
		return dto.RefreshSessionResponse{Invalidated: true}
	}
	if profile.ActiveSessionToken == nil || *profile.ActiveSessionToken != sessionToken {
		return dto.RefreshSessionResponse{Invalidated: true}
	}
	return dto.RefreshSessionResponse{Valid: true, Profile: profileSummary(profile)}
}

func (s *authService) ListPending(ctx context.Context) ([]dto.PendingProfileResponse, error) {
	profiles, err := s.profiles.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PendingProfileResponse, len(profiles))
	for i, p := range profiles {
		out[i] = dto.PendingProfileResponse{
			ID:       p.ID.String(),
			FullName: p.FullName,
			Approved: p.Approved,
			Role:     p.Role,
		}
	}
	return out, nil
}

func (s *authService) Approve(ctx context.Context, id uuid.UUID) error {
	if err := s.profiles.Approve(ctx, id); err != nil {
		return err
	}
	if profile, err := s.profiles.FindByID(ctx, id); err == nil && s.notifier != nil {
		s.notifier.PublishProfile(ctx, profile)
	}
	return nil
}

func (s *authService) generateToken(userID uuid.UUID, role, sessionToken string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":       userID.String(),
		"role":          role,
		"session_token": sessionToken,
		"exp":           time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":           time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func profileSummary(p *model.Profile) *dto.ProfileSummary {
	return &dto.ProfileSummary{
		ID:       p.ID.String(),
		FullName: p.FullName,
		Role:     p.Role,
		Approved: p.Approved,
	}
}
