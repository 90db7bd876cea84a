package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
	repo "github.com/ymatsuda/coffee-journal/internal/domain/repository"
	"github.com/ymatsuda/coffee-journal/pkg/helpers"
	"github.com/ymatsuda/coffee-journal/pkg/mailer"
)

var ErrUserNotFound = errors.New("user not found")

const (
	sessionTTL      = 24 * time.Hour
	resetTokenTTL   = 30 * time.Minute
	verifyTokenTTL  = 24 * time.Hour
	minPasswordLen  = 8
	resetTokenBytes = 32
)

func sessionKey(userID string) string { return "user:session:" + userID }
func resetKey(token string) string    { return "pwd:reset:token:" + token }
func verifyKey(token string) string   { return "email:verify:token:" + token }
func nowRFC3339() string              { return time.Now().UTC().Format(time.RFC3339Nano) }

// UserService implements the identity surface: registration, sessions,
// password reset. Mail goes out asynchronously via the rabbit publisher.
type UserService struct {
	Users    repo.UserRepository
	Profiles repo.ProfileRepository
	JWT      *helpers.JWTManager
	Redis    *redis.Client
	Logger   *logrus.Logger
	Pub      *helpers.RabbitPublisher

	ResetPasswordURL string
	VerifyEmailURL   string
	MailEnabled      bool
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// LoginResult is what the auth page needs after a successful sign-in.
// ProfileComplete drives the one-time redirect to profile setup; it is
// evaluated here, at login, and never persisted.
type LoginResult struct {
	UserID          string `json:"user_id"`
	Email           string `json:"email"`
	Nickname        string `json:"nickname"`
	ProfileComplete bool   `json:"profile_complete"`
}

// Register creates the identity; the profile row with a defaulted nickname is
// created by the store trigger. The account starts unverified and a
// confirmation mail is queued; login is refused until the mailed token is
// consumed by VerifyConfirm.
func (s *UserService) Register(ctx context.Context, email, password string) (*entity.User, error) {
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, classifyAuthErr(err)
	}

	if err := s.sendVerifyMail(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("verify mail enqueue failed")
	}
	return u, nil
}

func (s *UserService) sendVerifyMail(ctx context.Context, u *entity.User) error {
	if s.Redis == nil {
		return errors.New("verification unavailable")
	}
	tok, err := genToken(resetTokenBytes)
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, verifyKey(tok), u.ID, verifyTokenTTL).Err(); err != nil {
		return err
	}
	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateVerifyEmail,
			Data: map[string]any{
				"VerifyURL": s.VerifyEmailURL + "?token=" + tok,
				"ExpiresIn": "24時間",
			},
		}
		return s.Pub.PublishJSON(ctx, job)
	}
	return nil
}

// VerifyInit re-issues the confirmation mail. Unknown or already verified
// addresses yield a nil error to avoid account enumeration.
func (s *UserService) VerifyInit(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil || u.IsVerified {
		return nil
	}
	return s.sendVerifyMail(ctx, u)
}

// VerifyConfirm consumes a mailed token, marks the account verified and
// queues the welcome mail.
func (s *UserService) VerifyConfirm(ctx context.Context, token string) error {
	if s.Redis == nil {
		return errors.New("verification unavailable")
	}
	uid, err := s.Redis.Get(ctx, verifyKey(token)).Result()
	if err != nil || uid == "" {
		return ErrInvalidCredentials
	}
	if err := s.Users.SetVerified(ctx, uid); err != nil {
		return classifyAuthErr(err)
	}
	s.Redis.Del(ctx, verifyKey(token))

	if s.Pub != nil && s.MailEnabled {
		u, uErr := s.Users.GetByID(ctx, uid)
		if uErr != nil || u == nil {
			return nil
		}
		nickname := u.Email
		if p, pErr := s.Profiles.GetByUserID(ctx, uid); pErr == nil {
			nickname = p.Nickname
		}
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateWelcome,
			Data:     map[string]any{"Nickname": nickname},
		}
		if pubErr := s.Pub.PublishJSON(ctx, job); pubErr != nil && s.Logger != nil {
			s.Logger.WithError(pubErr).Warn("welcome mail enqueue failed")
		}
	}
	return nil
}

// Login validates credentials, opens a session and reports whether the
// profile passed first-time setup.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, TokenPair{}, ErrEmailUnconfirmed
	}

	res := &LoginResult{UserID: u.ID, Email: u.Email}
	if p, pErr := s.Profiles.GetByUserID(ctx, u.ID); pErr == nil {
		res.Nickname = p.Nickname
		res.ProfileComplete = p.Complete()
	}

	pair, err := s.issueTokens(ctx, u, res.Nickname)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return res, pair, nil
}

func (s *UserService) issueTokens(ctx context.Context, u *entity.User, nickname string) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"nickname":   nickname,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and both tokens after validating that the
// refresh token belongs to the currently active session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.issueTokens(ctx, u, "")
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the redis session; the handler clears the cookies.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil {
		s.Redis.Del(ctx, sessionKey(userID))
	}
}

// Session answers the current-session query used by every page on mount.
func (s *UserService) Session(ctx context.Context, userID string) (map[string]string, error) {
	if s.Redis == nil {
		return nil, ErrUserNotFound
	}
	data, err := s.Redis.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil || len(data) == 0 {
		return nil, ErrUserNotFound
	}
	return data, nil
}

// ResetInit issues a reset token and queues the reset mail. The caller always
// gets a nil error for unknown emails to avoid account enumeration.
func (s *UserService) ResetInit(ctx context.Context, email string) (string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", nil
	}
	tok, err := genToken(resetTokenBytes)
	if err != nil {
		return "", err
	}
	if s.Redis == nil {
		return "", errors.New("reset unavailable")
	}
	if err := s.Redis.Set(ctx, resetKey(tok), u.ID, resetTokenTTL).Err(); err != nil {
		return "", err
	}
	link := s.ResetPasswordURL + "?token=" + tok

	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateResetPassword,
			Data:     map[string]any{"ResetURL": link, "ExpiresIn": "30分"},
		}
		if pubErr := s.Pub.PublishJSON(ctx, job); pubErr != nil && s.Logger != nil {
			s.Logger.WithError(pubErr).Warn("reset mail enqueue failed")
		}
	}
	return link, nil
}

// ResetConfirm consumes a token and replaces the password.
func (s *UserService) ResetConfirm(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}
	if s.Redis == nil {
		return errors.New("reset unavailable")
	}
	uid, err := s.Redis.Get(ctx, resetKey(token)).Result()
	if err != nil || uid == "" {
		return ErrInvalidCredentials
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, uid, hash); err != nil {
		return classifyAuthErr(err)
	}
	s.Redis.Del(ctx, resetKey(token))
	return nil
}

func genToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
