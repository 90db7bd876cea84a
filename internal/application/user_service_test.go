package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
	"github.com/ymatsuda/coffee-journal/internal/infrastructure/postgres"
	"github.com/ymatsuda/coffee-journal/pkg/helpers"
)

type stubUserRepo struct {
	byEmail   map[string]*entity.User
	createErr error
	verified  []string
}

func (s *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	u.ID = "u-" + u.Email
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, postgres.ErrNotFound
}

func (s *stubUserRepo) UpdatePassword(_ context.Context, _, _ string) error { return nil }

func (s *stubUserRepo) SetVerified(_ context.Context, id string) error {
	s.verified = append(s.verified, id)
	return nil
}

type stubProfileRepo struct {
	profile *entity.Profile
}

func (s *stubProfileRepo) GetByUserID(_ context.Context, _ string) (*entity.Profile, error) {
	if s.profile == nil {
		return nil, postgres.ErrNotFound
	}
	return s.profile, nil
}

func (s *stubProfileRepo) Update(_ context.Context, _ *entity.Profile) error { return nil }

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := helpers.HashPassword(plain)
	require.NoError(t, err)
	return h
}

func TestLoginUnverifiedRefused(t *testing.T) {
	users := &stubUserRepo{byEmail: map[string]*entity.User{
		"taro@example.com": {ID: "u1", Email: "taro@example.com", Password: mustHash(t, "password123"), IsVerified: false},
	}}
	svc := &UserService{Users: users, Profiles: &stubProfileRepo{}}

	_, _, err := svc.Login(context.Background(), "taro@example.com", "password123")
	require.Error(t, err)
	assert.Equal(t, CodeEmailUnconfirmed, CodeOf(err))
}

func TestLoginWrongPassword(t *testing.T) {
	users := &stubUserRepo{byEmail: map[string]*entity.User{
		"taro@example.com": {ID: "u1", Email: "taro@example.com", Password: mustHash(t, "password123"), IsVerified: true},
	}}
	svc := &UserService{Users: users, Profiles: &stubProfileRepo{}}

	_, _, err := svc.Login(context.Background(), "taro@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidCredentials, CodeOf(err))
}

func TestLoginVerifiedSucceeds(t *testing.T) {
	users := &stubUserRepo{byEmail: map[string]*entity.User{
		"taro@example.com": {ID: "u1", Email: "taro@example.com", Password: mustHash(t, "password123"), IsVerified: true},
	}}
	profiles := &stubProfileRepo{profile: &entity.Profile{
		UserID:        "u1",
		Nickname:      "太郎",
		Bio:           "毎朝ドリップ",
		FavoriteTypes: []string{"ドリップ"},
	}}
	svc := &UserService{
		Users:    users,
		Profiles: profiles,
		JWT:      helpers.NewJWTManager("a-secret", "r-secret", time.Minute, time.Hour),
	}

	res, pair, err := svc.Login(context.Background(), "taro@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "u1", res.UserID)
	assert.Equal(t, "太郎", res.Nickname)
	assert.True(t, res.ProfileComplete)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := &UserService{Users: &stubUserRepo{byEmail: map[string]*entity.User{}}, Profiles: &stubProfileRepo{}}

	_, err := svc.Register(context.Background(), "taro@example.com", "short")
	require.Error(t, err)
	assert.Equal(t, CodeWeakPassword, CodeOf(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &stubUserRepo{byEmail: map[string]*entity.User{}, createErr: postgres.ErrDuplicate}
	svc := &UserService{Users: users, Profiles: &stubProfileRepo{}}

	_, err := svc.Register(context.Background(), "taro@example.com", "password123")
	require.Error(t, err)
	assert.Equal(t, CodeDuplicateEmail, CodeOf(err))
}

func TestVerifyInitUnknownEmailSilent(t *testing.T) {
	svc := &UserService{Users: &stubUserRepo{byEmail: map[string]*entity.User{}}, Profiles: &stubProfileRepo{}}
	assert.NoError(t, svc.VerifyInit(context.Background(), "nobody@example.com"))
}

func TestVerifyInitAlreadyVerifiedSilent(t *testing.T) {
	users := &stubUserRepo{byEmail: map[string]*entity.User{
		"taro@example.com": {ID: "u1", Email: "taro@example.com", IsVerified: true},
	}}
	svc := &UserService{Users: users, Profiles: &stubProfileRepo{}}
	assert.NoError(t, svc.VerifyInit(context.Background(), "taro@example.com"))
}
