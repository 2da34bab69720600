package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/battleships-backend/internal/apperror"
	"github.com/rocketscienceinc/battleships-backend/internal/entity"
)

// pollTimeout bounds one BLPOP so a cancelled context is noticed even when
// nothing is queued.
const pollTimeout = time.Second

// Client carries round orders and their rejections between two peers of one
// match over a pair of redis lists.
type Client struct {
	client  *redis.Client
	matchID string
}

func New(client *redis.Client, matchID string) *Client {
	return &Client{
		client:  client,
		matchID: matchID,
	}
}

// Connect opens a redis connection and checks it answers. Socket reads honour
// context deadlines.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:                  addr,
		ContextTimeoutEnabled: true,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}

func (that *Client) roundsKey() string {
	return "match:" + that.matchID + ":rounds"
}

func (that *Client) rejectionsKey() string {
	return "match:" + that.matchID + ":rejections"
}

// Submit queues a round order. An order without an id gets a fresh one.
func (that *Client) Submit(ctx context.Context, order *entity.RoundOrder) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}

	if err = that.client.RPush(ctx, that.roundsKey(), orderJSON).Err(); err != nil {
		return fmt.Errorf("failed to push round: %w", err)
	}

	return nil
}

// Receive blocks until a round order is queued or ctx is done.
func (that *Client) Receive(ctx context.Context) (*entity.RoundOrder, error) {
	payload, err := that.pop(ctx, that.roundsKey())
	if err != nil {
		return nil, fmt.Errorf("failed to pop round: %w", err)
	}

	var order entity.RoundOrder
	if err = json.Unmarshal([]byte(payload), &order); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", apperror.ErrProtocol, apperror.ErrMalformedRound, err)
	}

	return &order, nil
}

func (that *Client) Reject(ctx context.Context, rejection entity.Rejection) error {
	rejectionJSON, err := json.Marshal(rejection)
	if err != nil {
		return fmt.Errorf("failed to marshal rejection: %w", err)
	}

	if err = that.client.RPush(ctx, that.rejectionsKey(), rejectionJSON).Err(); err != nil {
		return fmt.Errorf("failed to push rejection: %w", err)
	}

	return nil
}

// NextRejection blocks until the other side rejects a round or ctx is done.
func (that *Client) NextRejection(ctx context.Context) (*entity.Rejection, error) {
	payload, err := that.pop(ctx, that.rejectionsKey())
	if err != nil {
		return nil, fmt.Errorf("failed to pop rejection: %w", err)
	}

	var rejection entity.Rejection
	if err = json.Unmarshal([]byte(payload), &rejection); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rejection: %w", err)
	}

	return &rejection, nil
}

// pop waits for the head of key in pollTimeout slices. Once ctx is done the
// context error is returned instead of whatever the socket reported.
func (that *Client) pop(ctx context.Context, key string) (string, error) {
	for {
		response, err := that.client.BLPop(ctx, pollTimeout, key).Result()
		if err == nil {
			// BLPOP answers with the key followed by the value
			return response[1], nil
		}

		if ctxErr := contextErr(ctx); ctxErr != nil {
			return "", ctxErr
		}

		if !errors.Is(err, redis.Nil) {
			return "", err
		}
	}
}

// contextErr also reports a deadline the socket hit before ctx noticed it.
func contextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}

	return nil
}
