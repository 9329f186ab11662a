package pushover

import (
	"fmt"
	"slices"
	"strings"
)

// Sound is a notification sound recognised by the Pushover clients.
// See https://pushover.net/api#sounds.
type Sound string

const (
	SoundPushover     Sound = "pushover"
	SoundBike         Sound = "bike"
	SoundBugle        Sound = "bugle"
	SoundCashRegister Sound = "cashregister"
	SoundClassical    Sound = "classical"
	SoundCosmic       Sound = "cosmic"
	SoundFalling      Sound = "falling"
	SoundGamelan      Sound = "gamelan"
	SoundIncoming     Sound = "incoming"
	SoundIntermission Sound = "intermission"
	SoundMagic        Sound = "magic"
	SoundMechanical   Sound = "mechanical"
	SoundPianoBar     Sound = "pianobar"
	SoundSiren        Sound = "siren"
	SoundSpaceAlarm   Sound = "spacealarm"
	SoundTugboat      Sound = "tugboat"
	SoundAlien        Sound = "alien"
	SoundClimb        Sound = "climb"
	SoundPersistent   Sound = "persistent"
	SoundEcho         Sound = "echo"
	SoundUpDown       Sound = "updown"
	SoundVibrate      Sound = "vibrate"
	SoundNone         Sound = "none"
)

var sounds = []Sound{
	SoundPushover,
	SoundBike,
	SoundBugle,
	SoundCashRegister,
	SoundClassical,
	SoundCosmic,
	SoundFalling,
	SoundGamelan,
	SoundIncoming,
	SoundIntermission,
	SoundMagic,
	SoundMechanical,
	SoundPianoBar,
	SoundSiren,
	SoundSpaceAlarm,
	SoundTugboat,
	SoundAlien,
	SoundClimb,
	SoundPersistent,
	SoundEcho,
	SoundUpDown,
	SoundVibrate,
	SoundNone,
}

func (s Sound) String() string {
	return string(s)
}

// Valid reports whether s is one of the sounds listed by [Sounds].
func (s Sound) Valid() bool {
	return slices.Contains(sounds, s)
}

// normalizeSound drops any sound outside the known set.
func normalizeSound(s Sound) Sound {
	if !s.Valid() {
		return ""
	}
	return s
}

// Sounds returns every sound in the order the API documents them.
func Sounds() []Sound {
	out := make([]Sound, len(sounds))
	copy(out, sounds)
	return out
}

// ParseSound maps a case-insensitive sound name to a [Sound].
func ParseSound(name string) (Sound, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for _, s := range sounds {
		if string(s) == name {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSound, name)
}
