// Package service holds the operations the presentation layer calls:
// item CRUD with image handling, and the installment forecast.
package service

import (
	"context"
	"log/slog"

	"github.com/dfalcao/metacompra/internal/database/repository"
)

// ImageEncoder is the codec collaborator. Encode returns nil on failure;
// storing an item never fails because its image could not be processed.
type ImageEncoder interface {
	Encode(sourcePath string) []byte
}

// ItemInput carries the caller-editable fields of an item. Which optional
// fields are meaningful depends on Kind, but none of them are enforced here.
type ItemInput struct {
	Kind           repository.Kind
	Name           string
	PriceCents     int64
	Link           *string
	Description    *string
	Installments   *int
	InstallmentDay *int
}

// ItemService composes the item store with the image codec.
type ItemService struct {
	Items *repository.ItemRepo
	Codec ImageEncoder
}

// Add stores a new item. When imagePath is non-empty it is run through the
// codec; a codec failure degrades to storing no image.
func (s *ItemService) Add(ctx context.Context, in ItemInput, imagePath string) (string, error) {
	return s.Items.Insert(ctx, repository.Item{
		Kind:           in.Kind,
		Name:           in.Name,
		PriceCents:     in.PriceCents,
		Link:           in.Link,
		Image:          s.encode(imagePath),
		Description:    in.Description,
		Installments:   in.Installments,
		InstallmentDay: in.InstallmentDay,
	})
}

// Update rewrites an item's fields, preserving whatever image is already
// stored.
func (s *ItemService) Update(ctx context.Context, id string, in ItemInput) error {
	return s.Items.UpdateKeepImage(ctx, itemFor(id, in))
}

// UpdateWithImage rewrites an item's fields and replaces the stored image
// with the codec output for imagePath (nil when encoding fails).
func (s *ItemService) UpdateWithImage(ctx context.Context, id string, in ItemInput, imagePath string) error {
	it := itemFor(id, in)
	it.Image = s.encode(imagePath)
	return s.Items.Update(ctx, it)
}

// Delete removes an item; absent ids are a no-op.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	return s.Items.Delete(ctx, id)
}

// TogglePurchased flips the purchased/paid flag and returns the new state.
func (s *ItemService) TogglePurchased(ctx context.Context, id string) (bool, error) {
	return s.Items.TogglePurchased(ctx, id)
}

func (s *ItemService) encode(imagePath string) []byte {
	if imagePath == "" || s.Codec == nil {
		return nil
	}
	blob := s.Codec.Encode(imagePath)
	if blob == nil {
		slog.Debug("image not stored", "path", imagePath)
	}
	return blob
}

func itemFor(id string, in ItemInput) repository.Item {
	return repository.Item{
		ID:             id,
		Kind:           in.Kind,
		Name:           in.Name,
		PriceCents:     in.PriceCents,
		Link:           in.Link,
		Description:    in.Description,
		Installments:   in.Installments,
		InstallmentDay: in.InstallmentDay,
	}
}
