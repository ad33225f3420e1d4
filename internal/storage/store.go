// Package storage persists the single Pomodoro session as a JSON file.
//
// The file is a durable single-slot record: every Save fully replaces it,
// and Load treats anything it cannot read back exactly as "no session".
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"pomo/internal/fsutil"
	"pomo/internal/timer"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const (
	// FileName is the session file name inside the user's home directory.
	FileName = ".pomo.json"

	dirPerm  os.FileMode = 0700
	filePerm os.FileMode = 0600
)

// ErrReadOnly is returned by Save on a read-only Store.
var ErrReadOnly = errors.New("session store is read-only")

// Store reads and writes the session file at a fixed path.
type Store struct {
	path     string
	readOnly bool
	now      func() time.Time // used to stamp quarantined files
}

// DefaultPath returns $HOME/.pomo.json, or /tmp/.pomo.json when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), FileName)
	}
	return filepath.Join(home, FileName)
}

// New returns a Store for path. Nothing is read or created until Load or
// Save is called.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// ReadOnly returns a Store for the same path that never modifies the
// file: unreadable files are left in place and Save fails.
func (s *Store) ReadOnly() *Store {
	return &Store{path: s.path, readOnly: true, now: s.now}
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted session. ok is false when the file is missing
// or fails to decode; a file that exists but cannot be decoded is moved
// aside so the next Save starts from a clean slate.
func (s *Store) Load() (state timer.State, ok bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", s.path).Msg("Cannot read session file, starting fresh")
		}
		return timer.State{}, false
	}

	state, err = Decode(data)
	if err != nil {
		if s.readOnly {
			log.Warn().Err(err).Str("path", s.path).Msg("Unreadable session file")
			return timer.State{}, false
		}
		moved := s.quarantine()
		log.Warn().Err(err).Str("path", s.path).Str("moved_to", moved).Msg("Unreadable session file, starting fresh")
		return timer.State{}, false
	}

	log.Debug().
		Str("phase", state.Phase.String()).
		Int64("remaining", state.Remaining).
		Bool("paused", state.Paused).
		Int64("last_update", state.LastUpdate).
		Msg("Loaded session")
	return state, true
}

// Save replaces the session file with state.
func (s *Store) Save(state timer.State) error {
	if s.readOnly {
		return ErrReadOnly
	}
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := fsutil.EnsureDir(filepath.Dir(s.path), dirPerm); err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(s.path, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// quarantine renames the current file to <path>.corrupt.<timestamp> and
// returns the new name, or "" if the rename failed.
func (s *Store) quarantine() string {
	dst := fmt.Sprintf("%s.corrupt.%s", s.path, s.now().Format("20060102-150405"))
	if err := os.Rename(s.path, dst); err != nil {
		return ""
	}
	return dst
}

// record is the on-disk schema. Pointers distinguish a missing field from
// its zero value.
type record struct {
	Phase            *string `json:"phase"`
	RemainingSeconds *int64  `json:"remaining_seconds"`
	IsPaused         *bool   `json:"is_paused"`
	LastUpdate       *int64  `json:"last_update"`
}

// Encode renders state in the on-disk format.
func Encode(state timer.State) ([]byte, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	phase := state.Phase.String()
	rec := record{
		Phase:            &phase,
		RemainingSeconds: &state.Remaining,
		IsPaused:         &state.Paused,
		LastUpdate:       &state.LastUpdate,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses the on-disk format. Unknown, missing, null or mistyped
// fields, trailing data and out-of-range values are all errors.
func Decode(data []byte) (timer.State, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var rec record
	if err := dec.Decode(&rec); err != nil {
		return timer.State{}, fmt.Errorf("decode session: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return timer.State{}, errors.New("decode session: trailing data after object")
	}

	if err := checkFieldNames(data); err != nil {
		return timer.State{}, fmt.Errorf("decode session: %w", err)
	}

	switch {
	case rec.Phase == nil:
		return timer.State{}, missingField("phase")
	case rec.RemainingSeconds == nil:
		return timer.State{}, missingField("remaining_seconds")
	case rec.IsPaused == nil:
		return timer.State{}, missingField("is_paused")
	case rec.LastUpdate == nil:
		return timer.State{}, missingField("last_update")
	}

	state := timer.State{
		Phase:      timer.Phase(*rec.Phase),
		Remaining:  *rec.RemainingSeconds,
		Paused:     *rec.IsPaused,
		LastUpdate: *rec.LastUpdate,
	}
	if err := state.Validate(); err != nil {
		return timer.State{}, fmt.Errorf("decode session: %w", err)
	}
	return state, nil
}

// fieldNames are the exact keys of the on-disk object.
var fieldNames = map[string]bool{
	"phase":             true,
	"remaining_seconds": true,
	"is_paused":         true,
	"last_update":       true,
}

// checkFieldNames rejects keys that differ from fieldNames only in case and
// keys that appear more than once. The struct decoder accepts both.
// data must already be known to hold a single valid JSON object.
func checkFieldNames(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // {
		return err
	}

	seen := make(map[string]bool, len(fieldNames))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		if !fieldNames[name] {
			return fmt.Errorf("unknown field %q", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate field %q", name)
		}
		seen[name] = true

		if err := skipValue(dec); err != nil {
			return err
		}
	}
	return nil
}

func skipValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}

func missingField(name string) error {
	return fmt.Errorf("decode session: missing field %q", name)
}
