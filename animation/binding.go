package animation

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

var (
	ErrEmptyStateName      = errors.New("animation: empty state name")
	ErrEmptyClip           = errors.New("animation: empty clip")
	ErrDuplicateBinding    = errors.New("animation: duplicate state binding")
	ErrDuplicateTransition = errors.New("animation: duplicate transition")
	ErrSelfTransition      = errors.New("animation: transition clip equals its target")
)

// Clip is an opaque handle to an animation clip known to the playback
// engine.
type Clip string

// NoClip is the zero handle.
const NoClip Clip = ""

// HashName returns the stable lookup key of a state name.
func HashName(name string) uint64 {
	return xxhash.Sum64String(name)
}

// StateClip binds a state name to a clip.
type StateClip struct {
	State string
	Clip  Clip
}

type boundClip struct {
	name string
	clip Clip
}

// Binding maps state names to clips by name hash. It is immutable once
// built.
type Binding struct {
	clips map[uint64]boundClip
}

// NewBinding builds a binding table. Empty names, empty clips, duplicate
// names and hash collisions are rejected.
func NewBinding(entries []StateClip) (*Binding, error) {
	b := &Binding{clips: make(map[uint64]boundClip, len(entries))}
	var errs []error
	for _, e := range entries {
		if e.State == "" {
			errs = append(errs, fmt.Errorf("%w (clip %q)", ErrEmptyStateName, e.Clip))
			continue
		}
		if e.Clip == NoClip {
			errs = append(errs, fmt.Errorf("%w for state %q", ErrEmptyClip, e.State))
			continue
		}
		key := HashName(e.State)
		if prev, ok := b.clips[key]; ok {
			errs = append(errs, fmt.Errorf("%w: %q collides with %q", ErrDuplicateBinding, e.State, prev.name))
			continue
		}
		b.clips[key] = boundClip{name: e.State, clip: e.Clip}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b, nil
}

// Lookup returns the clip bound to stateName.
func (b *Binding) Lookup(stateName string) (Clip, bool) {
	if b == nil || stateName == "" {
		return NoClip, false
	}
	bc, ok := b.clips[HashName(stateName)]
	if !ok || bc.name != stateName {
		return NoClip, false
	}
	return bc.clip, true
}

func (b *Binding) Len() int {
	if b == nil {
		return 0
	}
	return len(b.clips)
}

// Transition interposes Via when switching from From to To.
type Transition struct {
	From Clip
	To   Clip
	Via  Clip
}

type clipPair struct {
	from Clip
	to   Clip
}

// Transitions is an immutable set of single-step transition rules keyed by
// (from, to). A rule for A to B says nothing about B to A.
type Transitions struct {
	rules map[clipPair]Clip
}

func NewTransitions(rules []Transition) (*Transitions, error) {
	t := &Transitions{rules: make(map[clipPair]Clip, len(rules))}
	var errs []error
	for _, r := range rules {
		if r.From == NoClip || r.To == NoClip || r.Via == NoClip {
			errs = append(errs, fmt.Errorf("%w in transition %q -> %q via %q", ErrEmptyClip, r.From, r.To, r.Via))
			continue
		}
		if r.Via == r.To {
			errs = append(errs, fmt.Errorf("%w: %q -> %q", ErrSelfTransition, r.From, r.To))
			continue
		}
		key := clipPair{from: r.From, to: r.To}
		if _, ok := t.rules[key]; ok {
			errs = append(errs, fmt.Errorf("%w: %q -> %q", ErrDuplicateTransition, r.From, r.To))
			continue
		}
		t.rules[key] = r.Via
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the transition clip for from -> to.
func (t *Transitions) Lookup(from, to Clip) (Clip, bool) {
	if t == nil {
		return NoClip, false
	}
	via, ok := t.rules[clipPair{from: from, to: to}]
	return via, ok
}

func (t *Transitions) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}
