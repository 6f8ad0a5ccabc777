package activity

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/straviz/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrActivityNotFound = errors.New("activity not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Upsert(ctx context.Context, a Activity) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("activity.id", a.ID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO activity
				(id, name, distance, moving_time, elapsed_time, total_elevation_gain,
				 type, start_date, start_date_local, average_speed, map_summary_polyline)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				distance = EXCLUDED.distance,
				moving_time = EXCLUDED.moving_time,
				elapsed_time = EXCLUDED.elapsed_time,
				total_elevation_gain = EXCLUDED.total_elevation_gain,
				type = EXCLUDED.type,
				start_date = EXCLUDED.start_date,
				start_date_local = EXCLUDED.start_date_local,
				average_speed = EXCLUDED.average_speed,
				map_summary_polyline = EXCLUDED.map_summary_polyline;`,
		a.ID, a.Name, a.Distance, a.MovingTime, a.ElapsedTime, a.TotalElevationGain,
		a.Type, a.StartDate, a.StartDateLocal, a.AverageSpeed, a.SummaryPolyline(),
	)
	if err != nil {
		return fmt.Errorf("upsert activity %d: %w", a.ID, err)
	}

	return nil
}

func (r *Repo) Get(ctx context.Context, id int64) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("activity.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, name, distance, moving_time, elapsed_time, total_elevation_gain,
				type, start_date, start_date_local, average_speed, map_summary_polyline
			FROM activity
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrActivityNotFound
	}

	a, err := scanActivity(rows)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListForYear returns all activities whose (UTC) start date falls in the
// given calendar year, oldest first.
func (r *Repo) ListForYear(ctx context.Context, year int) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.listForYear")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("year", year))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, name, distance, moving_time, elapsed_time, total_elevation_gain,
				type, start_date, start_date_local, average_speed, map_summary_polyline
			FROM activity
			WHERE date_part('year', start_date) = $1
			ORDER BY start_date ASC;`,
		year,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}

func scanActivity(rows pgx.Rows) (*Activity, error) {
	var a Activity
	var summaryPolyline string
	if err := rows.Scan(
		&a.ID, &a.Name, &a.Distance, &a.MovingTime, &a.ElapsedTime, &a.TotalElevationGain,
		&a.Type, &a.StartDate, &a.StartDateLocal, &a.AverageSpeed, &summaryPolyline,
	); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}
	if summaryPolyline != "" {
		a.Map = &Map{SummaryPolyline: summaryPolyline}
	}
	return &a, nil
}
