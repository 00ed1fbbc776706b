package services

import (
	"context"
	"fmt"
	"strings"

	"contacts-api/internal/imageproc"
	"contacts-api/internal/repository"
	"contacts-api/internal/storage"
	"contacts-api/internal/upload"
	contacts_errors "contacts-api/pkg/errors"

	"github.com/google/uuid"
)

// AvatarSize is the fixed pixel geometry of a committed avatar.
const AvatarSize = 250

// AvatarService turns a staged upload into the user's canonical avatar:
// normalize in place, relocate into the store under {userID}.{ext},
// persist the public path. Concurrent commits for one user race on the
// final relocation with no mutual exclusion; the last one to relocate
// wins, matching the single destination filename per user.
type AvatarService struct {
	userRepo repository.UserRepository
	store    storage.Store
	size     int
}

func NewAvatarService(userRepo repository.UserRepository, store storage.Store) *AvatarService {
	return &AvatarService{
		userRepo: userRepo,
		store:    store,
		size:     AvatarSize,
	}
}

type CommitResult struct {
	PublicPath string
}

func (s *AvatarService) Commit(ctx context.Context, userID uuid.UUID, staged *upload.StagedFile) (CommitResult, error) {
	if userID == uuid.Nil {
		return CommitResult{}, contacts_errors.ErrUnauthorized
	}
	if staged == nil {
		return CommitResult{}, contacts_errors.ErrMissingFile
	}

	ext, ok := fileExtension(staged.OriginalFilename)
	if !ok {
		return CommitResult{}, contacts_errors.ErrInvalidFilename
	}

	name := DeriveAvatarName(userID, ext)

	if err := imageproc.Normalize(staged.TempPath, s.size); err != nil {
		return CommitResult{}, fmt.Errorf("%w: %s", contacts_errors.ErrTransformFailed, err)
	}

	if err := s.store.Commit(ctx, staged.TempPath, name); err != nil {
		return CommitResult{}, fmt.Errorf("%w: %s", contacts_errors.ErrRelocationFailed, err)
	}

	publicPath := s.store.PublicPath(name)

	if err := s.userRepo.UpdateAvatar(ctx, userID, publicPath); err != nil {
		return CommitResult{}, err
	}

	return CommitResult{PublicPath: publicPath}, nil
}

// DeriveAvatarName is the canonical filename for a user's current
// avatar. It is a pure function of identity and extension, so the
// commit path stays testable without real storage.
func DeriveAvatarName(userID uuid.UUID, ext string) string {
	return userID.String() + "." + ext
}

// fileExtension returns the segment after the last dot. A name with no
// dot, or with nothing after it, has no usable extension.
func fileExtension(name string) (string, bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return "", false
	}
	return name[idx+1:], true
}
