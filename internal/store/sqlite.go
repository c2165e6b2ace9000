package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/feelbetterai/backend/internal/model/chat"
	"github.com/feelbetterai/backend/internal/model/crisis"
	"github.com/feelbetterai/backend/internal/model/mood"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	mu      sync.Mutex
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		mode          TEXT NOT NULL DEFAULT 'talk',
		message_count INTEGER NOT NULL DEFAULT 0,
		average_mood  REAL NOT NULL DEFAULT 0,
		start_time    TEXT NOT NULL,
		end_time      TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, start_time DESC);

	CREATE TABLE IF NOT EXISTS messages (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL REFERENCES sessions(id),
		role        TEXT NOT NULL,
		content     TEXT NOT NULL,
		mood_score  REAL NOT NULL DEFAULT 0,
		crisis_flag INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, created_at);

	CREATE TABLE IF NOT EXISTS mood_entries (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		session_id  TEXT,
		score       REAL NOT NULL,
		confidence  REAL NOT NULL DEFAULT 0,
		recorded_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_mood_entries_user ON mood_entries(user_id, recorded_at);

	CREATE TABLE IF NOT EXISTS crisis_events (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		message_id    TEXT,
		severity      TEXT NOT NULL,
		trigger_words TEXT,
		action_taken  TEXT,
		created_at    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_crisis_events_user ON crisis_events(user_id, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession provisions a session for a user in the given mode.
func (s *SQLiteStore) CreateSession(ctx context.Context, userID, mode string) (chat.Session, error) {
	if mode == "" {
		mode = chat.ModeTalk
	}

	session := chat.Session{
		ID:        s.newID(),
		UserID:    userID,
		Mode:      mode,
		StartTime: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, mode, start_time) VALUES (?, ?, ?, ?)`,
		session.ID, session.UserID, session.Mode, formatTime(session.StartTime))
	if err != nil {
		return chat.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (chat.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, mode, message_count, average_mood, start_time, end_time
		 FROM sessions WHERE id = ?`, sessionID)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("select session: %w", err)
	}
	return session, nil
}

// ListUserSessions returns all sessions for a user, newest first.
func (s *SQLiteStore) ListUserSessions(ctx context.Context, userID string) ([]chat.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, mode, message_count, average_mood, start_time, end_time
		 FROM sessions WHERE user_id = ? ORDER BY start_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("select sessions: %w", err)
	}
	defer rows.Close()

	var sessions []chat.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// UpdateSessionStats bumps a session's message count and running mood.
func (s *SQLiteStore) UpdateSessionStats(ctx context.Context, sessionID string, messageCount int, averageMood float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET message_count = ?, average_mood = ? WHERE id = ?`,
		messageCount, averageMood, sessionID)
	if err != nil {
		return fmt.Errorf("update session stats: %w", err)
	}
	return requireRow(res)
}

// EndSession stamps a session's end time.
func (s *SQLiteStore) EndSession(ctx context.Context, sessionID string, endTime time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET end_time = ? WHERE id = ?`,
		formatTime(endTime), sessionID)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return requireRow(res)
}

// SaveMessage appends a message to a session's transcript.
func (s *SQLiteStore) SaveMessage(ctx context.Context, message chat.Message) (chat.Message, error) {
	if message.SessionID == "" {
		return chat.Message{}, ErrSessionNotFound
	}
	if _, err := s.GetSession(ctx, message.SessionID); err != nil {
		return chat.Message{}, err
	}

	message.ID = s.newID()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, session_id, role, content, mood_score, crisis_flag, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		message.ID, message.SessionID, message.Role, message.Content,
		message.MoodScore, boolToInt(message.CrisisFlag), formatTime(message.CreatedAt))
	if err != nil {
		return chat.Message{}, fmt.Errorf("insert message: %w", err)
	}
	return message, nil
}

// ListMessages returns a session's transcript in chronological order.
func (s *SQLiteStore) ListMessages(ctx context.Context, sessionID string) ([]chat.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, mood_score, crisis_flag, created_at
		 FROM messages WHERE session_id = ? ORDER BY created_at`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var message chat.Message
		var crisisFlag int
		var createdAt string
		if err := rows.Scan(&message.ID, &message.SessionID, &message.Role, &message.Content,
			&message.MoodScore, &crisisFlag, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		message.CrisisFlag = crisisFlag != 0
		message.CreatedAt = parseTime(createdAt)
		messages = append(messages, message)
	}
	return messages, rows.Err()
}

// TagMessage sets the mood score and crisis flag on a stored message.
func (s *SQLiteStore) TagMessage(ctx context.Context, messageID string, moodScore float64, crisisFlag bool) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE messages SET mood_score = ?, crisis_flag = ? WHERE id = ?`,
		moodScore, boolToInt(crisisFlag), messageID)
	if err != nil {
		return fmt.Errorf("tag message: %w", err)
	}
	return nil
}

// CreateMoodEntry records one sentiment measurement.
func (s *SQLiteStore) CreateMoodEntry(ctx context.Context, entry mood.Entry) (mood.Entry, error) {
	entry.ID = s.newID()
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mood_entries (id, user_id, session_id, score, confidence, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.SessionID, entry.Score, entry.Confidence,
		formatTime(entry.RecordedAt))
	if err != nil {
		return mood.Entry{}, fmt.Errorf("insert mood entry: %w", err)
	}
	return entry, nil
}

// ListMoodEntries returns a user's mood history since the given time, oldest first.
func (s *SQLiteStore) ListMoodEntries(ctx context.Context, userID string, since time.Time) ([]mood.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, session_id, score, confidence, recorded_at
		 FROM mood_entries WHERE user_id = ? AND recorded_at >= ? ORDER BY recorded_at`,
		userID, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("select mood entries: %w", err)
	}
	defer rows.Close()

	var entries []mood.Entry
	for rows.Next() {
		var entry mood.Entry
		var sessionID sql.NullString
		var recordedAt string
		if err := rows.Scan(&entry.ID, &entry.UserID, &sessionID, &entry.Score,
			&entry.Confidence, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}
		entry.SessionID = sessionID.String
		entry.RecordedAt = parseTime(recordedAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AverageMood returns the mean score of entries recorded after since, or the
// neutral 5 when there are none.
func (s *SQLiteStore) AverageMood(ctx context.Context, userID string, since time.Time) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(score) FROM mood_entries WHERE user_id = ? AND recorded_at >= ?`,
		userID, formatTime(since)).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average mood: %w", err)
	}
	if !avg.Valid {
		return 5, nil
	}
	return avg.Float64, nil
}

// CreateCrisisEvent records an intervention for audit.
func (s *SQLiteStore) CreateCrisisEvent(ctx context.Context, event crisis.Event) (crisis.Event, error) {
	event.ID = s.newID()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO crisis_events (id, user_id, message_id, severity, trigger_words, action_taken, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.UserID, event.MessageID, event.Severity,
		strings.Join(event.TriggerWords, ", "), event.ActionTaken, formatTime(event.CreatedAt))
	if err != nil {
		return crisis.Event{}, fmt.Errorf("insert crisis event: %w", err)
	}
	return event, nil
}

// ListCrisisEvents returns a user's crisis events, newest first.
func (s *SQLiteStore) ListCrisisEvents(ctx context.Context, userID string, limit int) ([]crisis.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, message_id, severity, trigger_words, action_taken, created_at
		 FROM crisis_events WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("select crisis events: %w", err)
	}
	defer rows.Close()

	var events []crisis.Event
	for rows.Next() {
		var event crisis.Event
		var messageID, triggerWords, actionTaken sql.NullString
		var createdAt string
		if err := rows.Scan(&event.ID, &event.UserID, &messageID, &event.Severity,
			&triggerWords, &actionTaken, &createdAt); err != nil {
			return nil, fmt.Errorf("scan crisis event: %w", err)
		}
		event.MessageID = messageID.String
		event.ActionTaken = actionTaken.String
		if triggerWords.String != "" {
			event.TriggerWords = strings.Split(triggerWords.String, ", ")
		}
		event.CreatedAt = parseTime(createdAt)
		events = append(events, event)
	}
	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (chat.Session, error) {
	var session chat.Session
	var startTime string
	var endTime sql.NullString
	if err := row.Scan(&session.ID, &session.UserID, &session.Mode, &session.MessageCount,
		&session.AverageMood, &startTime, &endTime); err != nil {
		return chat.Session{}, err
	}
	session.StartTime = parseTime(startTime)
	if endTime.Valid {
		t := parseTime(endTime.String)
		session.EndTime = &t
	}
	return session, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// timeLayout keeps the fractional part fixed width so stored strings compare
// lexicographically in timestamp order. RFC3339Nano trims trailing zeros and
// would let "…00.1Z" sort after "…00.15Z".
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
