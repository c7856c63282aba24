package strava

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prtracker/prtracker/internal/telemetry/metrics"
	"github.com/prtracker/prtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrRefreshFailed = errors.New("strava token refresh failed")

//go:generate mockgen -source=$GOFILE -destination=syncer_mocks_test.go -package=strava_test

type stravaAPI interface {
	Refresh(ctx context.Context, refreshToken string) (*TokenData, error)
	Activities(ctx context.Context, accessToken string, page, perPage int) ([]ActivitySummary, error)
	ActivityStream(ctx context.Context, accessToken string, activityID int64) (*ActivityStream, error)
}

type syncRepo interface {
	GetTokenByUserID(ctx context.Context, userID int) (*Token, error)
	UpdateToken(ctx context.Context, userID int, accessToken, refreshToken string, expiresAt int64) error
	HasActivity(ctx context.Context, userID int, stravaID int64) (bool, error)
	InsertActivityWithSamples(ctx context.Context, userID int, stravaID int64, samples []HeartRateSample) error
}

type SyncResult struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Samples int `json:"samples"`
}

// Syncer pulls the first page of strava activities and mirrors the unseen
// ones, with their heart-rate streams, into the local store.
type Syncer struct {
	api      stravaAPI
	repo     syncRepo
	metrics  *metrics.Manager
	pageSize int

	// NowFunc is the expiry clock, swappable in tests.
	NowFunc func() time.Time
}

func NewSyncer(api stravaAPI, repo syncRepo, metrics *metrics.Manager, pageSize int) *Syncer {
	return &Syncer{
		api:      api,
		repo:     repo,
		metrics:  metrics,
		pageSize: pageSize,
		NowFunc:  time.Now,
	}
}

// EnsureFresh refreshes the token when its expiry epoch has passed, updating
// both the stored row and the token in place. A failed refresh leaves the
// stored state untouched.
func (s *Syncer) EnsureFresh(ctx context.Context, token *Token) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.syncer.ensureFresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if token.ExpiresAt > s.NowFunc().Unix() {
		return nil
	}

	log.Debugf("strava token for user %d expired, refreshing", token.UserID)

	tokenData, err := s.api.Refresh(ctx, token.RefreshToken)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	if err := s.repo.UpdateToken(
		ctx, token.UserID,
		tokenData.AccessToken, tokenData.RefreshToken, tokenData.ExpiresAt,
	); err != nil {
		return fmt.Errorf("store refreshed token: %w", err)
	}

	token.AccessToken = tokenData.AccessToken
	token.RefreshToken = tokenData.RefreshToken
	token.ExpiresAt = tokenData.ExpiresAt

	return nil
}

// Sync mirrors the first page of the user's strava activities. Each unseen
// activity is stored together with its heart-rate samples in one transaction;
// activities already present by strava id are skipped. An upstream failure
// aborts the remaining activities but keeps the ones already stored.
func (s *Syncer) Sync(ctx context.Context, userID int) (_ *SyncResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.syncer.sync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	token, err := s.repo.GetTokenByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.EnsureFresh(ctx, token); err != nil {
		return nil, err
	}

	activities, err := s.api.Activities(ctx, token.AccessToken, 1, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch activities: %w", err)
	}

	result := &SyncResult{}
	for _, activity := range activities {
		exists, err := s.repo.HasActivity(ctx, userID, activity.ID)
		if err != nil {
			return nil, fmt.Errorf("check activity %d: %w", activity.ID, err)
		}
		if exists {
			result.Skipped++
			continue
		}

		stream, err := s.api.ActivityStream(ctx, token.AccessToken, activity.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch stream for activity %d: %w", activity.ID, err)
		}

		samples := stream.Zip()
		if err := s.repo.InsertActivityWithSamples(ctx, userID, activity.ID, samples); err != nil {
			return nil, fmt.Errorf("store activity %d: %w", activity.ID, err)
		}

		s.metrics.CounterStravaActivities.Inc()
		s.metrics.CounterHeartRateSamples.Add(float64(len(samples)))

		result.Synced++
		result.Samples += len(samples)

		log.Debugf("strava activity %d mirrored for user %d (%d samples)", activity.ID, userID, len(samples))
	}

	s.metrics.CounterStravaSyncs.Inc()

	return result, nil
}
