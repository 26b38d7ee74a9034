package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// SessionLog records statistics gathered during one session.
type SessionLog struct {
	Player       string        `json:"player"`
	Started      time.Time     `json:"started"`
	Duration     time.Duration `json:"duration"`
	Ticks        uint64        `json:"ticks"`
	Spawned      int           `json:"spawned"`
	PeakEntities int           `json:"peak_entities"`
}

// saveSessionLog appends the finished session as a single JSON line to
// sessions.jsonl. Errors are discarded so a disk problem never crashes the
// game.
func saveSessionLog(s SessionLog) {
	dir, err := sessionLogDir()
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "sessions.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	f.Write(append(data, '\n')) //nolint:errcheck
}

// sessionLogDir follows the XDG Base Directory spec:
// $XDG_DATA_HOME/gametemple, defaulting to ~/.local/share/gametemple.
func sessionLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gametemple"), nil
}
