// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

type recordKey struct {
	userID int64
	domain domain.Domain
	day    string
}

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	profiles map[int64]domain.UserProfile
	records  map[recordKey]domain.DailyRecord
	goals    map[int64]domain.Goals
	earned   map[int64]map[string]time.Time
	users    []*domain.User
	sessions map[string]*domain.Session

	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		profiles: make(map[int64]domain.UserProfile),
		records:  make(map[recordKey]domain.DailyRecord),
		goals:    make(map[int64]domain.Goals),
		earned:   make(map[int64]map[string]time.Time),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.DailyLogStore = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)
var _ domain.AchievementRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- ProfileRepository ---

// GetProfile returns the stored profile or nil.
func (db *DB) GetProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// SaveProfile stores a profile, replacing any previous one.
func (db *DB) SaveProfile(ctx context.Context, p domain.UserProfile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.profiles[p.UserID] = p
	return nil
}

// --- DailyLogStore ---

// GetRecord returns the record for (user, domain, day) or nil.
func (db *DB) GetRecord(ctx context.Context, userID int64, d domain.Domain, day string) (*domain.DailyRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rec, ok := db.records[recordKey{userID, d, day}]
	if !ok {
		return nil, nil
	}
	out := cloneRecord(rec)
	return &out, nil
}

// GetRecords returns records with from <= day <= to, oldest first.
func (db *DB) GetRecords(ctx context.Context, userID int64, d domain.Domain, from, to string) ([]domain.DailyRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.DailyRecord
	for k, rec := range db.records {
		if k.userID != userID || k.domain != d || k.day < from || k.day > to {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day < out[j].Day
	})
	return out, nil
}

// SaveRecord upserts the record for (user, domain, day).
func (db *DB) SaveRecord(ctx context.Context, rec domain.DailyRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.records[recordKey{rec.UserID, rec.Domain, rec.Day}] = cloneRecord(rec)
	return nil
}

// UpdateRecord applies fn to the record for (user, domain, day) under the
// store lock.
func (db *DB) UpdateRecord(ctx context.Context, userID int64, d domain.Domain, day string, fn func(*domain.DailyRecord) error) (*domain.DailyRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	key := recordKey{userID, d, day}
	rec, ok := db.records[key]
	if ok {
		rec = cloneRecord(rec)
	} else {
		rec = domain.DailyRecord{UserID: userID, Day: day, Domain: d}
	}
	if err := fn(&rec); err != nil {
		return nil, err
	}
	db.records[key] = cloneRecord(rec)
	return &rec, nil
}

// cloneRecord copies the payload so callers never share slices with the store.
func cloneRecord(r domain.DailyRecord) domain.DailyRecord {
	if r.Sleep != nil {
		v := *r.Sleep
		r.Sleep = &v
	}
	if r.Steps != nil {
		v := *r.Steps
		r.Steps = &v
	}
	if r.Water != nil {
		v := *r.Water
		v.Entries = slices.Clone(v.Entries)
		r.Water = &v
	}
	if r.Workout != nil {
		v := *r.Workout
		v.Sessions = slices.Clone(v.Sessions)
		r.Workout = &v
	}
	if r.Meals != nil {
		v := *r.Meals
		v.Items = slices.Clone(v.Items)
		r.Meals = &v
	}
	return r
}

// --- GoalRepository ---

// GetGoals returns the saved goals or nil.
func (db *DB) GetGoals(ctx context.Context, userID int64) (*domain.Goals, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	g, ok := db.goals[userID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

// SaveGoals stores goals, replacing any previous ones.
func (db *DB) SaveGoals(ctx context.Context, userID int64, g domain.Goals) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.goals[userID] = g
	return nil
}

// --- AchievementRepository ---

// ListEarned returns achievement ids mapped to their unlock time.
func (db *DB) ListEarned(ctx context.Context, userID int64) (map[string]time.Time, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make(map[string]time.Time, len(db.earned[userID]))
	for id, at := range db.earned[userID] {
		out[id] = at
	}
	return out, nil
}

// MarkEarned records an unlock. An existing unlock time is kept and false is
// returned.
func (db *DB) MarkEarned(ctx context.Context, userID int64, achievementID string, at time.Time) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	m, ok := db.earned[userID]
	if !ok {
		m = make(map[string]time.Time)
		db.earned[userID] = m
	}
	if _, done := m[achievementID]; done {
		return false, nil
	}
	m[achievementID] = at.UTC()
	return true, nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, domain.ErrUserExists
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token. Expiry is left to the caller.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		out := *s
		return &out, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
