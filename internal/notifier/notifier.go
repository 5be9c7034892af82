// Package notifier delivers accountability alerts to a partner webhook.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/protection"
)

var ErrNoURL = errors.New("no partner webhook configured")

type Notifier struct {
	URL    string
	Secret string
	Client *http.Client
}

// WebhookPayload is the JSON body posted for one blocked attempt.
type WebhookPayload struct {
	Partner   string                    `json:"partner"`
	Blocked   string                    `json:"blocked"`
	Kind      string                    `json:"kind"`
	Reason    string                    `json:"reason"`
	Level     constants.ProtectionLevel `json:"level"`
	Timestamp time.Time                 `json:"timestamp"`
}

func New(url, secret string) *Notifier {
	return &Notifier{
		URL:    url,
		Secret: secret,
		Client: &http.Client{Timeout: constants.WebhookTimeout},
	}
}

func payloadFor(partner models.AccountabilityPartner, attempt models.BlockedAttempt) WebhookPayload {
	p := WebhookPayload{
		Partner:   partner.Email,
		Blocked:   attempt.URL,
		Kind:      "url",
		Reason:    attempt.Reason,
		Level:     attempt.ProtectionLevel,
		Timestamp: attempt.Timestamp,
	}
	if p.Blocked == "" {
		p.Blocked = attempt.Keyword
		p.Kind = "keyword"
	}
	return p
}

// Notify posts one alert and fails on any non-2xx answer.
func (n *Notifier) Notify(ctx context.Context, partner models.AccountabilityPartner, attempt models.BlockedAttempt) error {
	if n.URL == "" {
		return ErrNoURL
	}
	body, err := json.Marshal(payloadFor(partner, attempt))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if n.Secret != "" {
		req.Header.Set(constants.WebhookSecretHeader, n.Secret)
	}

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, bytes.TrimSpace(msg))
}

// Hook adapts n to the filter's notification callback. The alert is always logged;
// a failed delivery is logged and never fails the write, which has already committed.
func (n *Notifier) Hook() protection.NotifyFunc {
	return func(partner models.AccountabilityPartner, attempt models.BlockedAttempt) {
		protection.LogNotifier(partner, attempt)
		ctx, cancel := context.WithTimeout(context.Background(), constants.WebhookTimeout)
		defer cancel()
		if err := n.Notify(ctx, partner, attempt); err != nil {
			logger.Warn("Partner webhook failed", "url", n.URL, "error", err)
		}
	}
}
