package models

import (
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
)

type AccountabilityPartner struct {
	Email         string `json:"email"`
	NotifyOnBlock bool   `json:"notifyOnBlock"`
	DailyReport   bool   `json:"dailyReport"`
	WeeklyReport  bool   `json:"weeklyReport"`
}

// BlockedAttempt is one input rejected by the content filter.
type BlockedAttempt struct {
	ID              string                    `json:"id"`
	Timestamp       time.Time                 `json:"timestamp"`
	URL             string                    `json:"url,omitempty"`
	Keyword         string                    `json:"keyword,omitempty"`
	Reason          string                    `json:"reason"`
	ProtectionLevel constants.ProtectionLevel `json:"protectionLevel"`
}

type ProtectionSettings struct {
	Enabled               bool                      `json:"enabled"`
	ProtectionLevel       constants.ProtectionLevel `json:"protectionLevel"`
	VitalBlockingEnabled  bool                      `json:"vitalBlockingEnabled"`
	PINHash               string                    `json:"pinHash,omitempty"` // bcrypt
	CustomBlockedDomains  []string                  `json:"customBlockedDomains"`
	CustomBlockedKeywords []string                  `json:"customBlockedKeywords"`
	AccountabilityPartner *AccountabilityPartner    `json:"accountabilityPartner,omitempty"`
	BlockHistory          []BlockedAttempt          `json:"blockHistory"`
	LastModified          time.Time                 `json:"lastModified"`
}

func (p *ProtectionSettings) Validate() error {
	return requireOneOf("protection", "protectionLevel", p.ProtectionLevel,
		constants.ProtectionOff, constants.ProtectionLight, constants.ProtectionStrong, constants.ProtectionStrict)
}

// EffectiveLevel is the level the filter applies; a disabled filter behaves as off.
func (p *ProtectionSettings) EffectiveLevel() constants.ProtectionLevel {
	if !p.Enabled {
		return constants.ProtectionOff
	}
	return p.ProtectionLevel
}
