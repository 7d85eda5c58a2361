package commands

import (
	"context"
	"fmt"

	"github.com/anthol-dao/anthol-common/modules/account/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
	"github.com/anthol-dao/anthol-common/modules/shared/media"
)

// UpdateProfileCommand represents the intent to update an account's profile.
type UpdateProfileCommand struct {
	Handle      string
	Name        string
	BirthName   string
	MailAddress string
	// ImageCID points the profile image at IPFS content. When both ImageCID
	// and ImageBlob are empty the image is cleared.
	ImageCID  string
	ImageMime string
	ImageBlob []byte
}

// UpdateProfileHandler handles the UpdateProfileCommand.
type UpdateProfileHandler struct {
	repo      domain.Repository
	publisher events.Publisher
}

func NewUpdateProfileHandler(repo domain.Repository, publisher events.Publisher) *UpdateProfileHandler {
	return &UpdateProfileHandler{
		repo:      repo,
		publisher: publisher,
	}
}

// Handle executes the update profile use case.
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) error {
	// Parse handle
	handle, err := ident.ParseActorID(cmd.Handle)
	if err != nil {
		return fmt.Errorf("invalid handle: %w", err)
	}

	// Retrieve the account
	account, err := h.repo.FindByHandle(ctx, handle)
	if err != nil {
		return fmt.Errorf("finding account: %w", err)
	}

	// Create new value objects
	name, err := domain.NewName(cmd.Name)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	birthName, err := domain.NewBirthName(cmd.BirthName)
	if err != nil {
		return fmt.Errorf("invalid birth name: %w", err)
	}

	mail, err := domain.NewMailAddress(cmd.MailAddress)
	if err != nil {
		return fmt.Errorf("invalid mail address: %w", err)
	}

	image, err := resolveImage(cmd)
	if err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}

	// Update the account (domain method enforces business rules)
	if err := account.SetProfile(name, birthName, mail, image); err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}

	// Persist changes
	if err := h.repo.Save(ctx, account); err != nil {
		return fmt.Errorf("saving account: %w", err)
	}

	// Publish domain event
	if h.publisher != nil {
		event := domain.NewAccountUpdatedEvent(account)
		if err := h.publisher.Publish(ctx, event); err != nil {
			_ = err
		}
	}

	return nil
}

func resolveImage(cmd UpdateProfileCommand) (domain.Image, error) {
	switch {
	case cmd.ImageCID != "":
		return domain.NewCIDImage(cmd.ImageCID)
	case len(cmd.ImageBlob) > 0:
		return domain.NewBlobImage(media.ParseMime(cmd.ImageMime), cmd.ImageBlob)
	default:
		return domain.NoImage(), nil
	}
}
