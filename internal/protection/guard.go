package protection

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/models"
)

// MaxHistory is the number of blocked attempts kept, newest first.
const MaxHistory = 100

var (
	ErrWrongPIN = errors.New("incorrect PIN")
	ErrEmptyPIN = errors.New("PIN cannot be empty")
)

// BlockedError is returned when an input is rejected by the filter.
type BlockedError struct {
	Input  string
	Reason string
}

func (e *BlockedError) Error() string {
	return "content blocked: " + e.Reason
}

// NotifyFunc is called for every blocked attempt when the partner asked to be notified.
type NotifyFunc func(partner models.AccountabilityPartner, attempt models.BlockedAttempt)

// LogNotifier records the partner notification in the log.
func LogNotifier(partner models.AccountabilityPartner, attempt models.BlockedAttempt) {
	blocked := attempt.URL
	if blocked == "" {
		blocked = attempt.Keyword
	}
	logger.Info("Accountability alert", "partner", partner.Email, "blocked", blocked, "reason", attempt.Reason)
}

// Guard applies one ProtectionSettings value and records what it blocks into it.
type Guard struct {
	Settings *models.ProtectionSettings
	Now      time.Time
	Notify   NotifyFunc
}

func NewGuard(settings *models.ProtectionSettings, now time.Time) *Guard {
	return &Guard{Settings: settings, Now: now, Notify: LogNotifier}
}

// Evaluate checks input without recording anything. Absolute URLs go through CheckURL,
// everything else through CheckKeywords.
func (g *Guard) Evaluate(input string) Result {
	s := g.Settings
	if IsURL(input) {
		return CheckURL(input, s.EffectiveLevel(), s.CustomBlockedDomains, s.VitalBlockingEnabled)
	}
	return CheckKeywords(input, s.EffectiveLevel(), s.CustomBlockedKeywords, s.VitalBlockingEnabled)
}

// Check evaluates input and records a blocked attempt.
func (g *Guard) Check(input string) Result {
	res := g.Evaluate(input)
	if res.Blocked {
		g.record(input, res)
	}
	return res
}

// Err returns a *BlockedError for the first blocked input, after recording it.
func (g *Guard) Err(inputs ...string) error {
	for _, in := range inputs {
		if strings.TrimSpace(in) == "" {
			continue
		}
		if res := g.Check(in); res.Blocked {
			return &BlockedError{Input: in, Reason: res.Reason}
		}
	}
	return nil
}

func (g *Guard) record(input string, res Result) {
	attempt := models.BlockedAttempt{
		ID:              models.NewID(),
		Timestamp:       g.Now,
		Reason:          res.Reason,
		ProtectionLevel: g.Settings.ProtectionLevel,
	}
	if IsURL(input) {
		attempt.URL = input
	} else {
		attempt.Keyword = res.MatchedKeyword
	}
	Record(g.Settings, attempt)

	logger.Info("Blocked content", "reason", res.Reason, "level", g.Settings.ProtectionLevel)
	if p := g.Settings.AccountabilityPartner; p != nil && p.NotifyOnBlock && g.Notify != nil {
		g.Notify(*p, attempt)
	}
}

// Record prepends an attempt to the history, keeping at most MaxHistory entries.
func Record(s *models.ProtectionSettings, attempt models.BlockedAttempt) {
	history := append([]models.BlockedAttempt{attempt}, s.BlockHistory...)
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}
	s.BlockHistory = history
	s.LastModified = attempt.Timestamp
}

// HashPIN returns the bcrypt hash stored in place of the PIN.
func HashPIN(pin string) (string, error) {
	if strings.TrimSpace(pin) == "" {
		return "", ErrEmptyPIN
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}

// VerifyPIN reports whether pin unlocks the settings. Settings without a PIN are unlocked.
func VerifyPIN(s *models.ProtectionSettings, pin string) bool {
	if s.PINHash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(s.PINHash), []byte(pin)) == nil
}

// SetPIN sets a new PIN; an existing PIN must be supplied as oldPIN.
func SetPIN(s *models.ProtectionSettings, newPIN, oldPIN string, now time.Time) error {
	if !VerifyPIN(s, oldPIN) {
		return ErrWrongPIN
	}
	hash, err := HashPIN(newPIN)
	if err != nil {
		return err
	}
	s.PINHash = hash
	s.LastModified = now
	return nil
}

var levelOrder = []constants.ProtectionLevel{
	constants.ProtectionOff, constants.ProtectionLight, constants.ProtectionStrong, constants.ProtectionStrict,
}

// SetLevel changes the protection level. Lowering it requires the PIN.
func SetLevel(s *models.ProtectionSettings, level constants.ProtectionLevel, pin string, now time.Time) error {
	if slices.Index(levelOrder, level) < 0 {
		return &models.ValidationError{Entity: "protection", Field: "protectionLevel", Reason: fmt.Sprintf("unknown level %q", level)}
	}
	if slices.Index(levelOrder, level) < slices.Index(levelOrder, s.ProtectionLevel) && !VerifyPIN(s, pin) {
		return ErrWrongPIN
	}
	s.ProtectionLevel = level
	s.Enabled = level != constants.ProtectionOff
	s.LastModified = now
	return nil
}

// SetEnabled turns the filter on or off. Disabling requires the PIN; enabling from off
// starts at light.
func SetEnabled(s *models.ProtectionSettings, enabled bool, pin string, now time.Time) error {
	if !enabled && !VerifyPIN(s, pin) {
		return ErrWrongPIN
	}
	s.Enabled = enabled
	switch {
	case !enabled:
		s.ProtectionLevel = constants.ProtectionOff
	case s.ProtectionLevel == "" || s.ProtectionLevel == constants.ProtectionOff:
		s.ProtectionLevel = constants.ProtectionLight
	}
	s.LastModified = now
	return nil
}

// SetVitalBlocking toggles vital blocking. Disabling requires the PIN.
func SetVitalBlocking(s *models.ProtectionSettings, enabled bool, pin string, now time.Time) error {
	if !enabled && !VerifyPIN(s, pin) {
		return ErrWrongPIN
	}
	s.VitalBlockingEnabled = enabled
	s.LastModified = now
	return nil
}

func AddCustomDomain(s *models.ProtectionSettings, domain string, now time.Time) {
	s.CustomBlockedDomains = appendUnique(s.CustomBlockedDomains, strings.ToLower(strings.TrimSpace(domain)))
	s.LastModified = now
}

// RemoveCustomDomain requires the PIN since it weakens the filter.
func RemoveCustomDomain(s *models.ProtectionSettings, domain, pin string, now time.Time) error {
	if !VerifyPIN(s, pin) {
		return ErrWrongPIN
	}
	s.CustomBlockedDomains = slices.DeleteFunc(s.CustomBlockedDomains, func(d string) bool { return d == domain })
	s.LastModified = now
	return nil
}

func AddCustomKeyword(s *models.ProtectionSettings, keyword string, now time.Time) {
	s.CustomBlockedKeywords = appendUnique(s.CustomBlockedKeywords, strings.TrimSpace(keyword))
	s.LastModified = now
}

func RemoveCustomKeyword(s *models.ProtectionSettings, keyword, pin string, now time.Time) error {
	if !VerifyPIN(s, pin) {
		return ErrWrongPIN
	}
	s.CustomBlockedKeywords = slices.DeleteFunc(s.CustomBlockedKeywords, func(k string) bool { return k == keyword })
	s.LastModified = now
	return nil
}

func appendUnique(list []string, v string) []string {
	if v == "" || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
