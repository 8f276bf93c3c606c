// Package push fans a notification out to the user's registered devices
// through the Expo push endpoint.
package push

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/oggyb/reelread/internal/config"
	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/metrics"
)

// Notification kinds.
const (
	KindFriendRequest  = "friend_request"
	KindFriendAccepted = "friend_accepted"
)

// Store is what the dispatcher needs from persistence.
type Store interface {
	CreateNotification(ctx context.Context, n *db.Notification) error
	DeviceTokens(ctx context.Context, userID string) ([]string, error)
	DeleteDeviceTokens(ctx context.Context, tokens []string) error
}

// Message is one entry of an Expo push batch.
type Message struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body,omitempty"`
	Sound string            `json:"sound,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
}

// Ticket is the per-message delivery receipt.
type Ticket struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Details struct {
		Error string `json:"error,omitempty"`
	} `json:"details"`
}

type sendResponse struct {
	Data []Ticket `json:"data"`
}

// Dispatcher records notifications and delivers them.
type Dispatcher struct {
	store    Store
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[[]Ticket]
	logger   *slog.Logger
}

// NewDispatcher builds a dispatcher posting to cfg.Push.Endpoint.
func NewDispatcher(cfg *config.Config, store Store, logger *slog.Logger) *Dispatcher {
	timeout := cfg.Push.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{
		store:    store,
		endpoint: cfg.Push.Endpoint,
		client:   &http.Client{Timeout: timeout},
		breaker:  newBreaker(logger),
		logger:   logger,
	}
}

func newBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker[[]Ticket] {
	return gobreaker.NewCircuitBreaker[[]Ticket](gobreaker.Settings{
		Name:        "push",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("push circuit breaker state change", "from", from.String(), "to", to.String())
		},
	})
}

// Notify inserts the notification row and pushes it to every device of
// n.UserID. Only the insert error is returned; delivery problems are logged
// and counted.
func (d *Dispatcher) Notify(ctx context.Context, n *db.Notification) error {
	if err := d.store.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	tokens, err := d.store.DeviceTokens(ctx, n.UserID)
	if err != nil {
		d.logger.Error("load device tokens failed", "user", n.UserID, "err", err)
		metrics.PushDeliveries.WithLabelValues("failed").Inc()
		return nil
	}
	if len(tokens) == 0 {
		metrics.PushDeliveries.WithLabelValues("skipped").Inc()
		return nil
	}

	msgs := make([]Message, 0, len(tokens))
	for _, tok := range tokens {
		msgs = append(msgs, Message{
			To:    tok,
			Title: n.Title,
			Body:  n.Body,
			Sound: "default",
			Data:  map[string]string{"kind": n.Kind, "notification_id": fmt.Sprint(n.ID)},
		})
	}

	tickets, err := d.breaker.Execute(func() ([]Ticket, error) {
		return d.send(ctx, msgs)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		d.logger.Warn("push skipped, circuit open", "user", n.UserID)
		metrics.PushDeliveries.WithLabelValues("breaker_open").Inc()
		return nil
	case err != nil:
		d.logger.Error("push delivery failed", "user", n.UserID, "err", err)
		metrics.PushDeliveries.WithLabelValues("failed").Inc()
		return nil
	}

	metrics.PushDeliveries.WithLabelValues("sent").Inc()
	d.dropDeadTokens(ctx, msgs, tickets)
	return nil
}

// dropDeadTokens removes tokens the provider no longer knows. Tickets come
// back in message order.
func (d *Dispatcher) dropDeadTokens(ctx context.Context, msgs []Message, tickets []Ticket) {
	var dead []string
	for i, t := range tickets {
		if i < len(msgs) && t.Status == "error" && t.Details.Error == "DeviceNotRegistered" {
			dead = append(dead, msgs[i].To)
		}
	}
	if len(dead) == 0 {
		return
	}
	if err := d.store.DeleteDeviceTokens(ctx, dead); err != nil {
		d.logger.Error("delete dead device tokens failed", "count", len(dead), "err", err)
		return
	}
	d.logger.Info("dropped dead device tokens", "count", len(dead))
}

func (d *Dispatcher) send(ctx context.Context, msgs []Message) ([]Ticket, error) {
	payload, err := json.Marshal(msgs)
	if err != nil {
		return nil, fmt.Errorf("marshal push batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("push endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var out sendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode push response: %w", err)
	}
	return out.Data, nil
}
