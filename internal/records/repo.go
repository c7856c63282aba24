package records

import (
	"context"
	"fmt"

	"github.com/prtracker/prtracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores a new personal record and returns it with the generated id.
// The bodyweight ratio is derived here, once, from the weight fields.
func (r *Repo) Add(ctx context.Context, record PersonalRecord) (_ *PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	record.BodyweightRatio = ComputeBodyweightRatio(record.Weight, record.AddedWeight)

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO personal_record
			(user_id, exo_id, pr_type, quantity, pr_time, added_weight, pr_date, weight, bodyweight_ratio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;`,
		record.UserID, record.ExerciseID, record.Type, record.Quantity,
		record.Time, record.AddedWeight, record.Date, record.Weight, record.BodyweightRatio,
	).Scan(&record.ID)
	if err != nil {
		return nil, fmt.Errorf("insert personal record: %w", err)
	}

	span.SetAttributes(attribute.Int("record.id", record.ID))

	return &record, nil
}

func (r *Repo) ListAll(ctx context.Context, userID int) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT
			pr.id, pr.user_id, pr.exo_id, e.name, pr.pr_type, pr.quantity,
			pr.pr_time, pr.added_weight, pr.pr_date, pr.weight, pr.bodyweight_ratio
		FROM personal_record pr
		JOIN exercise e ON e.id = pr.exo_id
		WHERE pr.user_id = $1;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListByType returns the user's records for one (record type, exercise name)
// pair, ordered ascending by the date string. The date is free-form, so the
// order is lexicographic.
func (r *Repo) ListByType(ctx context.Context, userID int, recordType, exerciseName string) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.listByType")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("record.type", recordType),
	)

	rows, err := r.db.Query(
		ctx,
		`SELECT
			pr.id, pr.user_id, pr.exo_id, e.name, pr.pr_type, pr.quantity,
			pr.pr_time, pr.added_weight, pr.pr_date, pr.weight, pr.bodyweight_ratio
		FROM personal_record pr
		JOIN exercise e ON e.id = pr.exo_id
		WHERE pr.user_id = $1 AND pr.pr_type = $2 AND e.name = $3
		ORDER BY pr.pr_date ASC;`,
		userID, recordType, exerciseName,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Delete removes at most one record matching both owner and id. Zero matches
// is not an error.
func (r *Repo) Delete(ctx context.Context, userID, recordID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("record.id", recordID),
	)

	_, err = r.db.Exec(
		ctx,
		`DELETE FROM personal_record WHERE user_id = $1 AND id = $2;`,
		userID, recordID,
	)
	if err != nil {
		return fmt.Errorf("delete personal record: %w", err)
	}

	return nil
}

func (r *Repo) DistinctTypes(ctx context.Context, userID int) (_ []TypeInfo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.distinctTypes")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT DISTINCT pr.pr_type, e.name
		FROM personal_record pr
		JOIN exercise e ON e.id = pr.exo_id
		WHERE pr.user_id = $1
		ORDER BY pr.pr_type, e.name;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	types := make([]TypeInfo, 0)
	for rows.Next() {
		var t TypeInfo
		if err := rows.Scan(&t.Type, &t.ExerciseName); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return types, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows rowScanner) ([]PersonalRecord, error) {
	records := make([]PersonalRecord, 0)
	for rows.Next() {
		var rec PersonalRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.ExerciseID, &rec.ExerciseName, &rec.Type,
			&rec.Quantity, &rec.Time, &rec.AddedWeight, &rec.Date, &rec.Weight,
			&rec.BodyweightRatio,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return records, nil
}
