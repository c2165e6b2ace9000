// Package store provides the persistence interface and SQLite implementation
// for sessions, messages, mood history and crisis events.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/feelbetterai/backend/internal/model/chat"
	"github.com/feelbetterai/backend/internal/model/crisis"
	"github.com/feelbetterai/backend/internal/model/mood"
)

var ErrSessionNotFound = errors.New("session not found")

// Store defines the persistence surface consumed by the services. The
// analysis core never touches it; all mood data arrives there as
// already-materialized slices read through these methods.
type Store interface {
	// CreateSession provisions a session for a user in the given mode.
	CreateSession(ctx context.Context, userID, mode string) (chat.Session, error)

	// GetSession retrieves a session by identifier.
	GetSession(ctx context.Context, sessionID string) (chat.Session, error)

	// ListUserSessions returns all sessions for a user, newest first.
	ListUserSessions(ctx context.Context, userID string) ([]chat.Session, error)

	// UpdateSessionStats bumps a session's message count and running mood.
	UpdateSessionStats(ctx context.Context, sessionID string, messageCount int, averageMood float64) error

	// EndSession stamps a session's end time.
	EndSession(ctx context.Context, sessionID string, endTime time.Time) error

	// SaveMessage appends a message to a session's transcript.
	SaveMessage(ctx context.Context, message chat.Message) (chat.Message, error)

	// ListMessages returns a session's transcript in chronological order.
	ListMessages(ctx context.Context, sessionID string) ([]chat.Message, error)

	// TagMessage sets the mood score and crisis flag on a stored message.
	TagMessage(ctx context.Context, messageID string, moodScore float64, crisisFlag bool) error

	// CreateMoodEntry records one sentiment measurement.
	CreateMoodEntry(ctx context.Context, entry mood.Entry) (mood.Entry, error)

	// ListMoodEntries returns a user's mood history since the given time,
	// oldest first.
	ListMoodEntries(ctx context.Context, userID string, since time.Time) ([]mood.Entry, error)

	// AverageMood returns the mean score of entries recorded after since,
	// or the neutral 5 when there are none.
	AverageMood(ctx context.Context, userID string, since time.Time) (float64, error)

	// CreateCrisisEvent records an intervention for audit.
	CreateCrisisEvent(ctx context.Context, event crisis.Event) (crisis.Event, error)

	// ListCrisisEvents returns a user's crisis events, newest first.
	ListCrisisEvents(ctx context.Context, userID string, limit int) ([]crisis.Event, error)

	// Close releases the underlying database handle.
	Close() error
}
