package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ReplayKey names one replay run over a game. An empty You means every
// living snake was analyzed.
type ReplayKey struct {
	GameID string
	You    string
}

func (k ReplayKey) line() string {
	if k.You == "" {
		return k.GameID
	}
	return k.GameID + "\t" + k.You
}

func parseReplayKey(line string) (ReplayKey, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return ReplayKey{}, false
	}
	gameID, you, _ := strings.Cut(line, "\t")
	return ReplayKey{GameID: gameID, You: you}, gameID != ""
}

// ReplayedLog records which (game, snake) replays already have rows on disk.
// The file holds one key per line, "game" or "game<TAB>snake". A replay of
// every snake covers later single-snake replays of the same game.
type ReplayedLog struct {
	mu   sync.RWMutex
	file *os.File
	keys map[ReplayKey]struct{}
}

func OpenReplayedLog(path string) (*ReplayedLog, error) {
	if path == "" {
		return nil, fmt.Errorf("log path is required")
	}

	keys := make(map[ReplayKey]struct{})
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if k, ok := parseReplayKey(scanner.Text()); ok {
				keys[k] = struct{}{}
			}
		}
		_ = f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &ReplayedLog{file: file, keys: keys}, nil
}

func (l *ReplayedLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Has reports whether k, or a replay of every snake in k's game, was recorded.
func (l *ReplayedLog) Has(k ReplayKey) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.keys[k]; ok {
		return true
	}
	_, ok := l.keys[ReplayKey{GameID: k.GameID}]
	return ok
}

// Pending filters gameIDs down to those without a recorded replay for you.
func (l *ReplayedLog) Pending(gameIDs []string, you string) []string {
	var out []string
	for _, id := range gameIDs {
		if !l.Has(ReplayKey{GameID: id, You: you}) {
			out = append(out, id)
		}
	}
	return out
}

func (l *ReplayedLog) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.keys)
}

// Record appends a key for every game in gameIDs replayed for you, skipping
// those already covered, and syncs once.
func (l *ReplayedLog) Record(gameIDs []string, you string) error {
	if strings.ContainsAny(you, "\t\n") {
		return fmt.Errorf("snake id %q cannot be logged", you)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return fmt.Errorf("log file is closed")
	}

	added := 0
	for _, id := range gameIDs {
		if id == "" || strings.ContainsAny(id, "\t\n") {
			continue
		}
		k := ReplayKey{GameID: id, You: you}
		if _, ok := l.keys[k]; ok {
			continue
		}
		if _, ok := l.keys[ReplayKey{GameID: id}]; ok {
			continue
		}
		if _, err := l.file.WriteString(k.line() + "\n"); err != nil {
			return fmt.Errorf("append log: %w", err)
		}
		l.keys[k] = struct{}{}
		added++
	}

	if added == 0 {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}
	return nil
}
