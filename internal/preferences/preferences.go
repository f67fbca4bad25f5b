// Package preferences stores the user's on/off switches, one settings key
// per switch.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/dmitrijs2005/bridge/internal/logging"
	"github.com/dmitrijs2005/bridge/internal/settings"
)

const (
	KeyEnableHaptics = "enableHaptics"
	KeyAutoShareNote = "autoShareNote"
	KeyLogHealth     = "logHealth"
	KeyIsFirstLaunch = "isFirstLaunch"
)

// Keys lists every preference in display order.
var Keys = []string{KeyEnableHaptics, KeyAutoShareNote, KeyLogHealth, KeyIsFirstLaunch}

var ErrUnknownKey = errors.New("unknown preference")

// Preferences is a snapshot of all switches.
type Preferences struct {
	EnableHaptics bool
	AutoShareNote bool
	LogHealth     bool
	IsFirstLaunch bool
}

// Defaults has every switch on.
func Defaults() Preferences {
	return Preferences{EnableHaptics: true, AutoShareNote: true, LogHealth: true, IsFirstLaunch: true}
}

func (p Preferences) Value(key string) (bool, error) {
	switch key {
	case KeyEnableHaptics:
		return p.EnableHaptics, nil
	case KeyAutoShareNote:
		return p.AutoShareNote, nil
	case KeyLogHealth:
		return p.LogHealth, nil
	case KeyIsFirstLaunch:
		return p.IsFirstLaunch, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

func (p *Preferences) set(key string, v bool) {
	switch key {
	case KeyEnableHaptics:
		p.EnableHaptics = v
	case KeyAutoShareNote:
		p.AutoShareNote = v
	case KeyLogHealth:
		p.LogHealth = v
	case KeyIsFirstLaunch:
		p.IsFirstLaunch = v
	}
}

type Store struct {
	settings settings.Store
	log      logging.Logger
}

func NewStore(st settings.Store, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{settings: st, log: log.With("component", "preferences")}
}

// Load reads every switch. Missing or unparsable values read as the
// default.
func (s *Store) Load(ctx context.Context) Preferences {
	p := Defaults()
	for _, key := range Keys {
		raw, err := s.settings.Get(ctx, key)
		if err != nil {
			s.log.Warn(ctx, "preference unreadable, using default", "key", key, "error", err)
			continue
		}
		if raw == nil {
			continue
		}
		v, err := strconv.ParseBool(string(raw))
		if err != nil {
			s.log.Warn(ctx, "preference malformed, using default", "key", key, "value", string(raw))
			continue
		}
		p.set(key, v)
	}
	return p
}

// Set stores one switch.
func (s *Store) Set(ctx context.Context, key string, v bool) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err := s.settings.Set(ctx, key, []byte(strconv.FormatBool(v))); err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return nil
}

// AutoShareNote and LogHealth let the capture workflow read the current
// value without holding a snapshot.
func (s *Store) AutoShareNote(ctx context.Context) bool { return s.Load(ctx).AutoShareNote }

func (s *Store) LogHealth(ctx context.Context) bool { return s.Load(ctx).LogHealth }
