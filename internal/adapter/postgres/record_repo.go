package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

var _ domain.DailyLogStore = (*DB)(nil)
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)
var _ domain.AchievementRepository = (*DB)(nil)

// recordPayload is the JSONB body of a daily_records row. Only the field
// matching the row's domain is set.
type recordPayload struct {
	Sleep   *domain.SleepRecord   `json:"sleep,omitempty"`
	Steps   *domain.StepRecord    `json:"steps,omitempty"`
	Water   *domain.WaterRecord   `json:"water,omitempty"`
	Workout *domain.WorkoutRecord `json:"workout,omitempty"`
	Meals   *domain.MealRecord    `json:"meals,omitempty"`
}

func encodeRecord(rec domain.DailyRecord) ([]byte, error) {
	p := recordPayload{Sleep: rec.Sleep, Steps: rec.Steps, Water: rec.Water, Workout: rec.Workout, Meals: rec.Meals}
	return json.Marshal(p)
}

func decodeRecord(rec *domain.DailyRecord, raw []byte) error {
	var p recordPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("decode %s record for %s: %w", rec.Domain, rec.Day, err)
	}
	rec.Sleep, rec.Steps, rec.Water, rec.Workout, rec.Meals = p.Sleep, p.Steps, p.Water, p.Workout, p.Meals
	return nil
}

// --- DailyLogStore ---

// GetRecord returns the record for (user, domain, day) or nil.
func (d *DB) GetRecord(ctx context.Context, userID int64, dom domain.Domain, day string) (*domain.DailyRecord, error) {
	rec := domain.DailyRecord{UserID: userID, Domain: dom, Day: day}
	var raw []byte
	err := d.sql.QueryRowContext(ctx,
		"SELECT payload, updated_at FROM daily_records WHERE user_id=$1 AND domain=$2 AND day=$3;",
		userID, string(dom), day,
	).Scan(&raw, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := decodeRecord(&rec, raw); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetRecords returns records with from <= day <= to, oldest first.
func (d *DB) GetRecords(ctx context.Context, userID int64, dom domain.Domain, from, to string) ([]domain.DailyRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT day, payload, updated_at FROM daily_records WHERE user_id=$1 AND domain=$2 AND day >= $3 AND day <= $4 ORDER BY day ASC;",
		userID, string(dom), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.DailyRecord
	for rows.Next() {
		rec := domain.DailyRecord{UserID: userID, Domain: dom}
		var raw []byte
		if err := rows.Scan(&rec.Day, &raw, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		if err := decodeRecord(&rec, raw); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveRecord upserts the record for (user, domain, day).
func (d *DB) SaveRecord(ctx context.Context, rec domain.DailyRecord) error {
	raw, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	updated := rec.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO daily_records (user_id, day, domain, payload, updated_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, domain, day) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at;`,
		rec.UserID, rec.Day, string(rec.Domain), raw, updated.UTC(),
	)
	return err
}

// UpdateRecord applies fn to the record for (user, domain, day) inside a
// transaction holding the row lock. A missing row is inserted empty first so
// concurrent first writes queue on the primary key.
func (d *DB) UpdateRecord(ctx context.Context, userID int64, dom domain.Domain, day string, fn func(*domain.DailyRecord) error) (*domain.DailyRecord, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO daily_records (user_id, day, domain, payload, updated_at) VALUES ($1, $2, $3, '{}', $4)
		ON CONFLICT (user_id, domain, day) DO NOTHING;`,
		userID, day, string(dom), time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	rec := domain.DailyRecord{UserID: userID, Domain: dom, Day: day}
	var raw []byte
	err = tx.QueryRowContext(ctx,
		"SELECT payload, updated_at FROM daily_records WHERE user_id=$1 AND domain=$2 AND day=$3 FOR UPDATE;",
		userID, string(dom), day,
	).Scan(&raw, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := decodeRecord(&rec, raw); err != nil {
		return nil, err
	}

	if err := fn(&rec); err != nil {
		return nil, err
	}
	if raw, err = encodeRecord(rec); err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE daily_records SET payload=$4, updated_at=$5 WHERE user_id=$1 AND domain=$2 AND day=$3;",
		userID, string(dom), day, raw, rec.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// --- ProfileRepository ---

// GetProfile returns the stored profile or nil.
func (d *DB) GetProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	p := domain.UserProfile{UserID: userID}
	err := d.sql.QueryRowContext(ctx,
		"SELECT gender, birth_year, height_cm, weight_kg, activity_level, goal, updated_at FROM profiles WHERE user_id=$1;",
		userID,
	).Scan(&p.Gender, &p.BirthYear, &p.HeightCm, &p.WeightKg, &p.ActivityLevel, &p.Goal, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile upserts a profile.
func (d *DB) SaveProfile(ctx context.Context, p domain.UserProfile) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles (user_id, gender, birth_year, height_cm, weight_kg, activity_level, goal, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET gender = EXCLUDED.gender, birth_year = EXCLUDED.birth_year,
			height_cm = EXCLUDED.height_cm, weight_kg = EXCLUDED.weight_kg, activity_level = EXCLUDED.activity_level,
			goal = EXCLUDED.goal, updated_at = EXCLUDED.updated_at;`,
		p.UserID, string(p.Gender), p.BirthYear, p.HeightCm, p.WeightKg, string(p.ActivityLevel), string(p.Goal), p.UpdatedAt.UTC(),
	)
	return err
}

// --- GoalRepository ---

// GetGoals returns the saved goals or nil.
func (d *DB) GetGoals(ctx context.Context, userID int64) (*domain.Goals, error) {
	var raw []byte
	err := d.sql.QueryRowContext(ctx, "SELECT payload FROM goals WHERE user_id=$1;", userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var g domain.Goals
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	return &g, nil
}

// SaveGoals upserts goals.
func (d *DB) SaveGoals(ctx context.Context, userID int64, g domain.Goals) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO goals (user_id, payload, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at;`,
		userID, raw, time.Now().UTC(),
	)
	return err
}

// --- AchievementRepository ---

// ListEarned returns achievement ids mapped to their unlock time.
func (d *DB) ListEarned(ctx context.Context, userID int64) (map[string]time.Time, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT achievement_id, earned_at FROM achievements_earned WHERE user_id=$1;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, err
		}
		out[id] = at
	}
	return out, rows.Err()
}

// MarkEarned records an unlock. An existing row keeps its earned_at and
// false is returned.
func (d *DB) MarkEarned(ctx context.Context, userID int64, achievementID string, at time.Time) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO achievements_earned (user_id, achievement_id, earned_at) VALUES ($1, $2, $3) ON CONFLICT (user_id, achievement_id) DO NOTHING;",
		userID, achievementID, at.UTC(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
