package strava

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prtracker/prtracker/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

var ErrStateNotFound = errors.New("authorization state not found")

const (
	stateKeyPrefix = "strava-auth-state::"
	stateTTL       = 10 * time.Minute
)

// StateStore keeps pending authorization states in redis, so the callback
// can find the user who started the flow even across instance restarts.
type StateStore struct {
	rdb *redis.Client
}

func NewStateStore(rdb *redis.Client) *StateStore {
	return &StateStore{
		rdb: rdb,
	}
}

func (s *StateStore) Save(ctx context.Context, state string, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.stateStore.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.rdb.Set(ctx, stateKeyPrefix+state, strconv.Itoa(userID), stateTTL).Err(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Consume resolves a state to the user who started the flow and removes it,
// so each state is usable once.
func (s *StateStore) Consume(ctx context.Context, state string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.stateStore.consume")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := stateKeyPrefix + state
	userID, err := s.rdb.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrStateNotFound
		}
		return 0, fmt.Errorf("get state: %w", err)
	}

	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return 0, fmt.Errorf("delete state: %w", err)
	}

	return userID, nil
}
