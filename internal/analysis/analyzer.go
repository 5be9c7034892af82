package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifetrack/internal/llm"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/models"
)

var ErrEmptyContent = errors.New("both pieces of content are required")

// ContentStore is the part of the store the analyzer reads from and writes to.
type ContentStore interface {
	State() models.State
	SetContentAnalysis(ctx context.Context, id, analysis string) error
}

type Analyzer struct {
	client llm.Client
	store  ContentStore
}

func NewAnalyzer(client llm.Client, store ContentStore) *Analyzer {
	return &Analyzer{client: client, store: store}
}

// AnalyzeContent runs the strategic analysis of a content item and saves the reply on it.
// When two analyses of the same item overlap the one finishing last is kept.
func (a *Analyzer) AnalyzeContent(ctx context.Context, id string) (string, error) {
	st := a.store.State()
	var item *models.BrandingContentItem
	for i := range st.Branding.ContentItems {
		if st.Branding.ContentItems[i].ID == id {
			item = &st.Branding.ContentItems[i]
			break
		}
	}
	if item == nil {
		return "", fmt.Errorf("content %q not found", id)
	}

	reply, err := a.client.Complete(ctx, StrategicPrompt(*item, st.Branding.Positioning, st.Branding.AudienceIntelligence))
	if err != nil {
		return "", fmt.Errorf("failed to analyze content: %w", err)
	}
	if err := a.store.SetContentAnalysis(ctx, id, reply); err != nil {
		return "", err
	}
	logger.Info("Stored content analysis", "content", id, "sections", len(SplitSections(reply)))
	return reply, nil
}

// Compare returns the comparison of the user's content with a creator's.
func (a *Analyzer) Compare(ctx context.Context, mine, theirs string) (string, error) {
	if strings.TrimSpace(mine) == "" || strings.TrimSpace(theirs) == "" {
		return "", ErrEmptyContent
	}
	reply, err := a.client.Complete(ctx, ComparisonPrompt(mine, theirs))
	if err != nil {
		return "", fmt.Errorf("failed to compare content: %w", err)
	}
	return reply, nil
}
