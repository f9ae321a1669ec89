package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/pkg/imagestore"
	"github.com/shashiranjanraj/akxton/pkg/logger"
	"github.com/shashiranjanraj/akxton/pkg/metrics"
)

// imageDeleteConcurrency bounds parallel object-store deletes per cascade.
const imageDeleteConcurrency = 4

// Cascade removes an entity together with everything that references it.
// There are no cross-collection transactions here: steps run in an order
// chosen so that an interruption leaves at worst orphaned bookmarks and
// enquiries (harmless, filtered at read time) rather than listings pointing
// at deleted owners.
type Cascade struct {
	users      UserStore
	properties PropertyStore
	saved      SavedStore
	requests   RequestStore
	images     imagestore.Store
}

func NewCascade(users UserStore, properties PropertyStore, saved SavedStore, requests RequestStore, images imagestore.Store) *Cascade {
	return &Cascade{users: users, properties: properties, saved: saved, requests: requests, images: images}
}

// DeleteProperty removes a listing, its hosted images, and every bookmark
// and enquiry pointing at it. Image deletion is best-effort: a failed or
// foreign-host image never blocks the record deletes.
func (c *Cascade) DeleteProperty(ctx context.Context, property *models.Property) error {
	c.deleteImages(ctx, property.Images)

	if _, err := c.saved.DeleteByProperty(ctx, property.ID); err != nil {
		return err
	}
	if _, err := c.requests.DeleteByProperty(ctx, property.ID); err != nil {
		return err
	}
	if err := c.properties.Delete(ctx, property.ID); err != nil {
		return err
	}

	logger.WithCtx(ctx).Info("property deleted",
		"property_id", property.ID.Hex(), "images", len(property.Images))
	return nil
}

// DeleteUser removes an account and everything it owns: each of its
// listings (with full per-listing cascade), then every bookmark and enquiry
// where the user appears on either side, then the account itself.
func (c *Cascade) DeleteUser(ctx context.Context, user *models.User) error {
	log := logger.WithCtx(ctx)

	properties, err := c.properties.FindByOwner(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, p := range properties {
		if err := c.DeleteProperty(ctx, p); err != nil {
			return err
		}
	}

	savedGone, err := c.saved.DeleteByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	requestsGone, err := c.requests.DeleteByUser(ctx, user.ID)
	if err != nil {
		return err
	}

	if err := c.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	log.Info("user deleted",
		"user_id", user.ID.Hex(),
		"properties", len(properties),
		"saved", savedGone,
		"requests", requestsGone)
	return nil
}

// deleteImages removes the hosted copies of the given image URLs in
// parallel. Every URL is attempted regardless of earlier failures; outcomes
// are counted and logged, never returned.
func (c *Cascade) deleteImages(ctx context.Context, urls []string) {
	log := logger.WithCtx(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(imageDeleteConcurrency)

	for _, url := range urls {
		url := url
		g.Go(func() error {
			if !c.images.Recognizes(url) {
				metrics.ImageDeletes.WithLabelValues("skipped").Inc()
				return nil
			}
			publicID := imagestore.PublicID(url)
			if err := c.images.Delete(ctx, publicID); err != nil {
				metrics.ImageDeletes.WithLabelValues("failed").Inc()
				log.Warn("image delete failed", "public_id", publicID, "error", err)
				return nil
			}
			metrics.ImageDeletes.WithLabelValues("ok").Inc()
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; Wait only joins them
}
