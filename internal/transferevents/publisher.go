// Package transferevents publishes committed transfers to a redis stream.
package transferevents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"github.com/go-petr/funds-transfer/internal/domain"
)

// TransferCompletedType is the event type of a committed transfer.
const TransferCompletedType = "transfer.completed"

// Event is the envelope of every message written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// TransferCompleted is the payload of a transfer.completed event.
type TransferCompleted struct {
	DebtorAccountID      string          `json:"debtorAccountId"`
	BeneficiaryAccountID string          `json:"beneficiaryAccountId"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	DebitTransactionID   string          `json:"debitTransactionId"`
	CreditTransactionID  string          `json:"creditTransactionId"`
}

// BreakerSettings controls when the publisher stops calling redis.
type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// DefaultBreakerSettings opens the breaker after 5 failures in a row for 30 seconds.
var DefaultBreakerSettings = BreakerSettings{
	ConsecutiveFailures: 5,
	OpenTimeout:         30 * time.Second,
}

// Publisher writes transfer events to a redis stream behind a circuit breaker.
type Publisher struct {
	client  *redis.Client
	stream  string
	breaker *gobreaker.CircuitBreaker
}

// NewPublisher returns a Publisher writing to the given stream.
func NewPublisher(client *redis.Client, stream string, s BreakerSettings) *Publisher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "transfer-events",
		Timeout: s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
	})

	return &Publisher{
		client:  client,
		stream:  stream,
		breaker: breaker,
	}
}

// TransferCompleted publishes the committed transfer.
//
// While the breaker is open it fails fast without calling redis.
func (p *Publisher) TransferCompleted(ctx context.Context, result domain.TransferResult) error {
	if len(result.Transactions) != 2 {
		return fmt.Errorf("transfer result has %d transactions, want 2", len(result.Transactions))
	}

	debit, credit := result.Transactions[0], result.Transactions[1]

	event := Event{
		Type:      TransferCompletedType,
		Timestamp: time.Now().UTC(),
		Data: TransferCompleted{
			DebtorAccountID:      result.DebtorAccount.ExternalID,
			BeneficiaryAccountID: result.BeneficiaryAccount.ExternalID,
			Amount:               debit.Amount,
			Currency:             debit.Currency,
			DebitTransactionID:   debit.ExternalID,
			CreditTransactionID:  credit.ExternalID,
		},
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = p.breaker.Execute(func() (interface{}, error) {
		args := &redis.XAddArgs{
			Stream: p.stream,
			Values: map[string]any{
				"type":  TransferCompletedType,
				"event": eventJSON,
			},
		}

		return p.client.XAdd(ctx, args).Result()
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
