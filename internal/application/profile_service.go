package application

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
	repo "github.com/ymatsuda/coffee-journal/internal/domain/repository"
	"github.com/ymatsuda/coffee-journal/internal/infrastructure/postgres"
	"github.com/ymatsuda/coffee-journal/pkg/helpers"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService backs the profile page.
type ProfileService struct {
	Profiles  repo.ProfileRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

type UpdateProfileInput struct {
	Nickname      string
	Bio           string
	FavoriteTypes []string
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*entity.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.Nickname = in.Nickname
	p.Bio = in.Bio
	p.FavoriteTypes = in.FavoriteTypes
	if p.FavoriteTypes == nil {
		p.FavoriteTypes = []string{}
	}
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UploadAvatar stores the new image, points the profile at it, then removes
// the replaced object. The delete is best-effort: the paths are distinct, so
// ordering does not change observable behavior.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, r PhotoUpload) (*entity.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("blob storage not configured")
	}

	ext := strings.ToLower(filepath.Ext(r.Filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, r.ContentType, r.Reader)
	if err != nil {
		return nil, err
	}

	oldURL := p.AvatarURL
	p.AvatarURL = url
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	if old := helpers.ObjectPathFromURL(s.GCSBucket, oldURL); old != "" {
		if delErr := helpers.DeleteObject(ctx, s.GCS, s.GCSBucket, old); delErr != nil && s.Logger != nil {
			s.Logger.WithError(delErr).WithField("object", old).Warn("old avatar delete failed")
		}
	}
	return p, nil
}
