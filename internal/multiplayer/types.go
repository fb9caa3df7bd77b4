// Package multiplayer provides roster and match identity types for local
// multiplayer: up to four players sharing one keyboard in one session.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
	Player3 = core.Player3
	Player4 = core.Player4
)

// SessionID identifies the terminal a match is played on (local TTY or SSH connection).
type SessionID string

// LocalSession is the session ID of the process's own terminal.
const LocalSession SessionID = "local"

// MatchID uniquely identifies a game match.
type MatchID string

// NewMatchID returns a random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// Valid reports whether id is a well-formed match identifier.
func (id MatchID) Valid() bool {
	return uuid.Validate(string(id)) == nil
}

// MatchMode defines how a game match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single snake.
	MatchModeSolo MatchMode = iota

	// MatchModeHotseat is two to four snakes steered from the same keyboard.
	MatchModeHotseat
)

// ModeForPlayers returns the mode of a roster size.
func ModeForPlayers(players int) MatchMode {
	if players > 1 {
		return MatchModeHotseat
	}
	return MatchModeSolo
}

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeHotseat:
		return "Hotseat"
	default:
		return "Unknown"
	}
}

// MatchHandle provides access to match metadata.
// Games receive this to know their context without managing match lifecycle.
type MatchHandle interface {
	// ID returns the unique identifier for this match.
	ID() MatchID

	// Mode returns how this match is configured.
	Mode() MatchMode
}

// Match is a concrete implementation of MatchHandle.
// The platform creates one per played round and passes the handle around.
type Match struct {
	id      MatchID
	mode    MatchMode
	players int
	session SessionID
}

// NewMatch creates a match handle with a fresh ID.
func NewMatch(players int, session SessionID) *Match {
	return &Match{
		id:      NewMatchID(),
		mode:    ModeForPlayers(players),
		players: players,
		session: session,
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Mode returns the match mode.
func (m *Match) Mode() MatchMode {
	return m.mode
}

// Players returns the roster size.
func (m *Match) Players() int {
	return m.players
}

// Session returns the terminal the match is played on.
func (m *Match) Session() SessionID {
	return m.session
}

// MatchResultSaver is an interface for saving match results.
// This allows the platform to archive results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for the archive.
type MatchResultData struct {
	MatchID   MatchID
	GameID    string
	Session   SessionID
	Mode      MatchMode
	Players   int
	Seed      int64
	Winner    PlayerID // PlayerNone for solo, draw or board full
	EndReason string
	Turns     int
	Apples    int
	Recording []byte // JSON encoded replay script
}
