package store

import (
	"context"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/protection"
)

// Protection returns a copy of the protection settings with the PIN hash cleared.
func (s *Store) Protection() models.ProtectionSettings {
	p := s.State().Protection
	p.PINHash = ""
	return p
}

// HasPIN reports whether a PIN guards the protection settings.
func (s *Store) HasPIN() bool {
	var ok bool
	s.view(func(st *models.State, now time.Time) { ok = st.Protection.PINHash != "" })
	return ok
}

// CheckContent runs input through the filter and records it when blocked.
// It works regardless of whether saves are screened.
func (s *Store) CheckContent(ctx context.Context, input string) (protection.Result, error) {
	var res protection.Result
	s.view(func(st *models.State, now time.Time) {
		res = protection.NewGuard(&st.Protection, now).Evaluate(input)
	})
	if !res.Blocked {
		return res, nil
	}
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		g := protection.NewGuard(&st.Protection, now)
		g.Notify = s.queueAlert
		res = g.Check(input)
		return nil
	})
	return res, err
}

// protect runs fn on the protection settings and validates the result.
func (s *Store) protect(ctx context.Context, fn func(p *models.ProtectionSettings, now time.Time) error) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		if err := fn(&st.Protection, now); err != nil {
			return err
		}
		return st.Protection.Validate()
	})
}

func (s *Store) SetProtectionLevel(ctx context.Context, level constants.ProtectionLevel, pin string) error {
	return s.protect(ctx, func(p *models.ProtectionSettings, now time.Time) error {
		return protection.SetLevel(p, level, pin, now)
	})
}

func (s *Store) SetProtectionEnabled(ctx context.Context, enabled bool, pin string) error {
	return s.protect(ctx, func(p *models.ProtectionSettings, now time.Time) error {
		return protection.SetEnabled(p, enabled, pin, now)
	})
}

func (s *Store) SetVitalBlocking(ctx context.Context, enabled bool, pin string) error {
	return s.protect(ctx, func(p *models.ProtectionSettings, now time.Time) error {
		return protection.SetVitalBlocking(p, enabled, pin, now)
	})
}

// SetPIN replaces the PIN. oldPIN is ignored when no PIN is set.
func (s *Store) SetPIN(ctx context.Context, newPIN, oldPIN string) error {
	return s.protect(ctx, func(p *models.ProtectionSettings, now time.Time) error {
		return protection.SetPIN(p, newPIN, oldPIN, now)
	})
}

func (s *Store) AddBlockedDomain(ctx context.Context, domain string) error {
	return s.protect(ctx, func(p *models.ProtectionSettings, now time.Time) error {
		protection.AddCustomDomain(p, domain, now)
		return nil
	})
}

func (s *Store) RemoveBlockedDomain(ctx context.Context, domain, pin string) error {
	return s.protect(ctx, func(p *models.ProtectionSettings, now time.Time) error {
		return protection.RemoveCustomDomain(p, domain, pin, now)
	})
}

func (s *Store) AddBlockedKeyword(ctx context.Context, keyword string) error {
	return s.protect(ctx, func(p *models.ProtectionSettings, now time.Time) error {
		protection.AddCustomKeyword(p, keyword, now)
		return nil
	})
}

func (s *Store) RemoveBlockedKeyword(ctx context.Context, keyword, pin string) error {
	return s.protect(ctx, func(p *models.ProtectionSettings, now time.Time) error {
		return protection.RemoveCustomKeyword(p, keyword, pin, now)
	})
}

// SetAccountabilityPartner sets or, with a nil partner, clears the partner. Clearing requires the PIN.
func (s *Store) SetAccountabilityPartner(ctx context.Context, partner *models.AccountabilityPartner, pin string) error {
	return s.protect(ctx, func(p *models.ProtectionSettings, now time.Time) error {
		if partner == nil && p.AccountabilityPartner != nil && !protection.VerifyPIN(p, pin) {
			return protection.ErrWrongPIN
		}
		if partner != nil {
			cp := *partner
			partner = &cp
		}
		p.AccountabilityPartner = partner
		p.LastModified = now
		return nil
	})
}

// ClearBlockHistory empties the history. It requires the PIN.
func (s *Store) ClearBlockHistory(ctx context.Context, pin string) error {
	return s.protect(ctx, func(p *models.ProtectionSettings, now time.Time) error {
		if !protection.VerifyPIN(p, pin) {
			return protection.ErrWrongPIN
		}
		p.BlockHistory = []models.BlockedAttempt{}
		p.LastModified = now
		return nil
	})
}
