package store

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

func connectionID(c *models.NetworkingConnection) string { return c.ID }
func templateID(t *models.MessageTemplate) string        { return t.ID }

// network runs fn on the networking system and stamps LastUpdated.
func (s *Store) network(ctx context.Context, fn func(st *models.State, n *models.NetworkingSystem, now time.Time) error) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		if err := fn(st, &st.Networking, now); err != nil {
			return err
		}
		st.Networking.LastUpdated = now
		return nil
	})
}

// editConnection runs fn on one connection.
func (s *Store) editConnection(ctx context.Context, id string, fn func(c *models.NetworkingConnection, now time.Time) error) error {
	return s.network(ctx, func(st *models.State, n *models.NetworkingSystem, now time.Time) error {
		return updateByID(n.Connections, "connection", id, connectionID, func(c *models.NetworkingConnection) error {
			return fn(c, now)
		})
	})
}

func (s *Store) AddConnection(ctx context.Context, conn models.NetworkingConnection) (models.NetworkingConnection, error) {
	err := s.network(ctx, func(st *models.State, n *models.NetworkingSystem, now time.Time) error {
		conn.ID = models.NewID()
		conn.CreatedAt = now
		conn.LastInteraction = now
		if conn.Status == "" {
			conn.Status = constants.ConnectionActive
		}
		if conn.Starters == nil {
			conn.Starters = []string{}
		}
		if conn.DMTemplates == nil {
			conn.DMTemplates = []string{}
		}
		conn.Outcomes = []models.ConnectionOutcome{}
		conn.Retrospectives = []models.RelationshipRetrospective{}
		if err := conn.Validate(); err != nil {
			return err
		}
		n.Connections = append(n.Connections, conn)
		return nil
	})
	return conn, err
}

func (s *Store) UpdateConnection(ctx context.Context, id string, patch models.ConnectionPatch) error {
	return s.editConnection(ctx, id, func(c *models.NetworkingConnection, now time.Time) error {
		patch.Apply(c)
		return c.Validate()
	})
}

// DeleteConnection removes a connection with its outcomes and retrospectives.
func (s *Store) DeleteConnection(ctx context.Context, id string) error {
	return s.network(ctx, func(st *models.State, n *models.NetworkingSystem, now time.Time) (err error) {
		n.Connections, err = removeByID(n.Connections, "connection", id, connectionID)
		return err
	})
}

// TouchConnection marks an interaction with the connection now.
func (s *Store) TouchConnection(ctx context.Context, id string) error {
	return s.editConnection(ctx, id, func(c *models.NetworkingConnection, now time.Time) error {
		c.LastInteraction = now
		return nil
	})
}

// AddOutcome records value produced by a connection. It counts as an interaction.
func (s *Store) AddOutcome(ctx context.Context, id string, outcome models.ConnectionOutcome) (models.ConnectionOutcome, error) {
	err := s.editConnection(ctx, id, func(c *models.NetworkingConnection, now time.Time) error {
		outcome.ID = models.NewID()
		if outcome.Date == "" {
			outcome.Date = today(now)
		}
		if err := outcome.Validate(); err != nil {
			return err
		}
		c.Outcomes = append(c.Outcomes, outcome)
		c.LastInteraction = now
		return nil
	})
	return outcome, err
}

func (s *Store) AddRetrospective(ctx context.Context, id string, retro models.RelationshipRetrospective) (models.RelationshipRetrospective, error) {
	err := s.editConnection(ctx, id, func(c *models.NetworkingConnection, now time.Time) error {
		retro.ID = models.NewID()
		if retro.Date == "" {
			retro.Date = today(now)
		}
		if err := retro.Validate(); err != nil {
			return err
		}
		c.Retrospectives = append(c.Retrospectives, retro)
		return nil
	})
	return retro, err
}

// AddStarter saves a reusable conversation starter.
func (s *Store) AddStarter(ctx context.Context, starter string) error {
	return s.network(ctx, func(st *models.State, n *models.NetworkingSystem, now time.Time) error {
		starter = strings.TrimSpace(starter)
		if starter == "" {
			return &models.ValidationError{Entity: "starter", Field: "text", Reason: "is required"}
		}
		n.ReusableAssets.Starters = append(n.ReusableAssets.Starters, starter)
		return nil
	})
}

// DeleteStarter removes the starter at index.
func (s *Store) DeleteStarter(ctx context.Context, index int) error {
	return s.network(ctx, func(st *models.State, n *models.NetworkingSystem, now time.Time) error {
		starters := n.ReusableAssets.Starters
		if index < 0 || index >= len(starters) {
			return notFound("starter", strconv.Itoa(index))
		}
		n.ReusableAssets.Starters = append(starters[:index:index], starters[index+1:]...)
		return nil
	})
}

func (s *Store) AddTemplate(ctx context.Context, title, content string) (models.MessageTemplate, error) {
	tpl := models.MessageTemplate{ID: models.NewID(), Title: strings.TrimSpace(title), Content: content}
	err := s.network(ctx, func(st *models.State, n *models.NetworkingSystem, now time.Time) error {
		if tpl.Title == "" {
			return &models.ValidationError{Entity: "template", Field: "title", Reason: "is required"}
		}
		n.ReusableAssets.Templates = append(n.ReusableAssets.Templates, tpl)
		return nil
	})
	return tpl, err
}

func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	return s.network(ctx, func(st *models.State, n *models.NetworkingSystem, now time.Time) (err error) {
		n.ReusableAssets.Templates, err = removeByID(n.ReusableAssets.Templates, "template", id, templateID)
		return err
	})
}
