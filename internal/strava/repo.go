package strava

import (
	"context"
	"errors"
	"fmt"

	"github.com/prtracker/prtracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrNoToken = errors.New("no strava token stored")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetTokenByUserID(ctx context.Context, userID int) (_ *Token, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.strava.getToken")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var token Token
	err = r.db.QueryRow(
		ctx,
		`SELECT id, user_id, access_token, refresh_token, expires_at, strava_athlete_id
		FROM strava_token WHERE user_id = $1;`,
		userID,
	).Scan(
		&token.ID, &token.UserID, &token.AccessToken,
		&token.RefreshToken, &token.ExpiresAt, &token.StravaAthleteID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("get strava token: %w", err)
	}

	return &token, nil
}

// UpsertToken stores the credential of one user, overwriting any previous one.
func (r *Repo) UpsertToken(ctx context.Context, token Token) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.strava.upsertToken")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", token.UserID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO strava_token (user_id, access_token, refresh_token, expires_at, strava_athlete_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			strava_athlete_id = EXCLUDED.strava_athlete_id;`,
		token.UserID, token.AccessToken, token.RefreshToken, token.ExpiresAt, token.StravaAthleteID,
	)
	if err != nil {
		return fmt.Errorf("upsert strava token: %w", err)
	}

	return nil
}

// UpdateToken overwrites the token fields in place after a refresh.
func (r *Repo) UpdateToken(ctx context.Context, userID int, accessToken, refreshToken string, expiresAt int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.strava.updateToken")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	_, err = r.db.Exec(
		ctx,
		`UPDATE strava_token
		SET access_token = $1, refresh_token = $2, expires_at = $3
		WHERE user_id = $4;`,
		accessToken, refreshToken, expiresAt, userID,
	)
	if err != nil {
		return fmt.Errorf("update strava token: %w", err)
	}

	return nil
}

func (r *Repo) HasActivity(ctx context.Context, userID int, stravaID int64) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.strava.hasActivity")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM strava_activity WHERE user_id = $1 AND strava_id = $2);`,
		userID, stravaID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check activity: %w", err)
	}

	return exists, nil
}

// InsertActivityWithSamples stores one activity row and its heart-rate
// samples in a single transaction, so an activity is either complete or
// absent, never half-stored.
func (r *Repo) InsertActivityWithSamples(
	ctx context.Context,
	userID int,
	stravaID int64,
	samples []HeartRateSample,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.strava.insertActivity")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int64("activity.stravaID", stravaID),
		attribute.Int("activity.samples", len(samples)),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var activityID int
	err = tx.QueryRow(
		ctx,
		`INSERT INTO strava_activity (user_id, strava_id) VALUES ($1, $2) RETURNING id;`,
		userID, stravaID,
	).Scan(&activityID)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	for _, sample := range samples {
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO heart_rate_sample (activity_id, heart_rate, time_offset) VALUES ($1, $2, $3);`,
			activityID, sample.HeartRate, sample.TimeOffset,
		); err != nil {
			return fmt.Errorf("insert heart rate sample: %w", err)
		}
	}

	return nil
}

// ListActivityIDs returns the strava ids of all mirrored activities of a user.
func (r *Repo) ListActivityIDs(ctx context.Context, userID int) (_ []int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.strava.listActivityIDs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT strava_id FROM strava_activity WHERE user_id = $1 ORDER BY id;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return ids, nil
}
