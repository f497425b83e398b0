package profile

import (
	"context"
	"strings"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type UseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewUseCase(repo profile.Repository, log logger.Logger) *UseCase {
	return &UseCase{profileRepo: repo, logger: log}
}

func (uc *UseCase) Get(ctx context.Context, userID int64) (*profile.Profile, error) {
	return uc.profileRepo.GetByID(ctx, userID)
}

// Create writes a first-time profile. The premium columns start false/null
// from the schema defaults.
func (uc *UseCase) Create(ctx context.Context, p *profile.Profile) error {
	return uc.profileRepo.Upsert(ctx, p)
}

// The setters below implement field edits as read-then-replace: the full
// current row is loaded, one field is swapped, and the whole record is put
// back. Untouched fields, including premium state, survive the write.

func (uc *UseCase) SetPhoto(ctx context.Context, userID int64, photoID string) error {
	return uc.replaceField(ctx, userID, func(p *profile.Profile) {
		p.PhotoID = &photoID
	})
}

func (uc *UseCase) SetName(ctx context.Context, userID int64, name string) error {
	return uc.replaceField(ctx, userID, func(p *profile.Profile) {
		p.Name = name
	})
}

func (uc *UseCase) SetProfession(ctx context.Context, userID int64, profession string) error {
	return uc.replaceField(ctx, userID, func(p *profile.Profile) {
		p.Profession = profession
	})
}

func (uc *UseCase) SetSkills(ctx context.Context, userID int64, skills string) error {
	return uc.replaceField(ctx, userID, func(p *profile.Profile) {
		p.Skills = skills
	})
}

func (uc *UseCase) SetBio(ctx context.Context, userID int64, bio string) error {
	return uc.replaceField(ctx, userID, func(p *profile.Profile) {
		p.Bio = bio
	})
}

// SetSocialLink is the only validated field: the link must be an http(s) URL.
func (uc *UseCase) SetSocialLink(ctx context.Context, userID int64, link string) error {
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return apperror.NewInvalidInput("social link must start with http:// or https://", nil)
	}
	return uc.replaceField(ctx, userID, func(p *profile.Profile) {
		p.SocialLink = &link
	})
}

func (uc *UseCase) replaceField(ctx context.Context, userID int64, apply func(*profile.Profile)) error {
	p, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	apply(p)
	return uc.profileRepo.Upsert(ctx, p)
}
