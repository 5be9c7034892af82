package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

func platformID(p *models.Platform) string           { return p.ID }
func themeID(p *models.ExpertisePillar) string       { return p.ID }
func scoreID(c *models.BrandConsistencyScore) string { return c.ID }
func contentID(c *models.BrandingContentItem) string { return c.ID }

// brand runs fn on the branding system and stamps LastUpdated.
func (s *Store) brand(ctx context.Context, fn func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) error) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		if err := fn(st, &st.Branding, now); err != nil {
			return err
		}
		st.Branding.LastUpdated = now
		return nil
	})
}

func (s *Store) UpdatePositioning(ctx context.Context, patch models.PositioningPatch) error {
	return s.brand(ctx, func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) error {
		patch.Apply(&b.Positioning)
		return nil
	})
}

func (s *Store) UpdateAudience(ctx context.Context, patch models.AudiencePatch) error {
	return s.brand(ctx, func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) error {
		patch.Apply(&b.AudienceIntelligence)
		return nil
	})
}

func (s *Store) AddCoreTheme(ctx context.Context, text string) (models.ExpertisePillar, error) {
	theme := models.ExpertisePillar{ID: models.NewID(), Text: strings.TrimSpace(text)}
	err := s.brand(ctx, func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) error {
		if theme.Text == "" {
			return &models.ValidationError{Entity: "core theme", Field: "text", Reason: "is required"}
		}
		b.Positioning.CoreThemes = append(b.Positioning.CoreThemes, theme)
		return nil
	})
	return theme, err
}

// DeleteCoreTheme removes a theme. Content items keep their pillar id.
func (s *Store) DeleteCoreTheme(ctx context.Context, id string) error {
	return s.brand(ctx, func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) (err error) {
		b.Positioning.CoreThemes, err = removeByID(b.Positioning.CoreThemes, "core theme", id, themeID)
		return err
	})
}

func (s *Store) AddPlatform(ctx context.Context, platform models.Platform) (models.Platform, error) {
	err := s.brand(ctx, func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) error {
		platform.ID = models.NewID()
		if err := platform.Validate(); err != nil {
			return err
		}
		b.Platforms = append(b.Platforms, platform)
		return nil
	})
	return platform, err
}

// DeletePlatform removes a platform. Content items referencing it are left as they are.
func (s *Store) DeletePlatform(ctx context.Context, id string) error {
	return s.brand(ctx, func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) (err error) {
		b.Platforms, err = removeByID(b.Platforms, "platform", id, platformID)
		return err
	})
}

func (s *Store) AddConsistencyScore(ctx context.Context, score models.BrandConsistencyScore) (models.BrandConsistencyScore, error) {
	err := s.brand(ctx, func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) error {
		score.ID = models.NewID()
		if score.Date == "" {
			score.Date = today(now)
		}
		if err := score.Validate(); err != nil {
			return err
		}
		b.ConsistencyScores = append(b.ConsistencyScores, score)
		return nil
	})
	return score, err
}

func (s *Store) DeleteConsistencyScore(ctx context.Context, id string) error {
	return s.brand(ctx, func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) (err error) {
		b.ConsistencyScores, err = removeByID(b.ConsistencyScores, "consistency score", id, scoreID)
		return err
	})
}

// AddContentItem stores a content idea. Title and body pass through the content filter.
func (s *Store) AddContentItem(ctx context.Context, item models.BrandingContentItem) (models.BrandingContentItem, error) {
	err := s.brand(ctx, func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) error {
		item.ID = models.NewID()
		item.CreatedAt = now
		item.Status = constants.ContentIdea
		if item.ConversionPath == "" {
			item.ConversionPath = constants.PathNone
		}
		if item.PlatformIDs == nil {
			item.PlatformIDs = []string{}
		}
		if err := item.Validate(); err != nil {
			return err
		}
		if err := s.screen(st, now, item.Title, item.Body); err != nil {
			return err
		}
		b.ContentItems = append(b.ContentItems, item)
		return nil
	})
	return item, err
}

func (s *Store) UpdateContentItem(ctx context.Context, id string, patch models.ContentPatch) error {
	return s.brand(ctx, func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) error {
		return updateByID(b.ContentItems, "content", id, contentID, func(c *models.BrandingContentItem) error {
			patch.Apply(c)
			if err := c.Validate(); err != nil {
				return err
			}
			if patch.Title != nil || patch.Body != nil {
				return s.screen(st, now, c.Title, c.Body)
			}
			return nil
		})
	})
}

// SetContentAnalysis stores analysis text on a content item. Concurrent analyses race and the last write wins.
func (s *Store) SetContentAnalysis(ctx context.Context, id, analysis string) error {
	return s.UpdateContentItem(ctx, id, models.ContentPatch{Analysis: &analysis})
}

func (s *Store) DeleteContentItem(ctx context.Context, id string) error {
	return s.brand(ctx, func(st *models.State, b *models.PersonalBrandingSystem, now time.Time) (err error) {
		b.ContentItems, err = removeByID(b.ContentItems, "content", id, contentID)
		return err
	})
}

// ContentItem returns one content item.
func (s *Store) ContentItem(id string) (models.BrandingContentItem, error) {
	items := s.State().Branding.ContentItems
	i := indexByID(items, id, contentID)
	if i < 0 {
		return models.BrandingContentItem{}, notFound("content", id)
	}
	return items[i], nil
}

// ContentByStatus returns the items in one publishing state.
func (s *Store) ContentByStatus(status constants.ContentStatus) []models.BrandingContentItem {
	items := s.State().Branding.ContentItems
	return slices.DeleteFunc(items, func(c models.BrandingContentItem) bool { return c.Status != status })
}
