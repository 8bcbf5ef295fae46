// Package params holds the named, range-checked settings that the panel and
// keyboard mutate and the frame loop reads every tick.
package params

import (
	"errors"
	"fmt"
	"math"

	"globe/internal/util"
)

// Kind is the value type of an entry
type Kind string

const (
	KindFloat Kind = "float"
	KindInt   Kind = "int"
	KindBool  Kind = "bool"
)

var (
	ErrUnknownParam = errors.New("unknown parameter")
	ErrInvalidValue = errors.New("invalid parameter value")
	ErrKindMismatch = errors.New("parameter kind mismatch")
)

// Entry describes one tunable setting
type Entry struct {
	Name  string  `json:"name"`
	Kind  Kind    `json:"kind"`
	Value float64 `json:"value"` // 0 or 1 for bool entries
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
}

// Bool returns the value of a bool entry
func (e Entry) Bool() bool {
	return e.Value != 0
}

// ChangeFunc is called after an entry's value changed
type ChangeFunc func(e Entry)

// Store is a flat set of entries with clamping and change callbacks.
// It is not safe for concurrent use; all access happens on the frame thread.
type Store struct {
	entries  map[string]*Entry
	order    []string
	handlers map[string][]ChangeFunc
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		entries:  make(map[string]*Entry),
		handlers: make(map[string][]ChangeFunc),
	}
}

// DefineFloat registers a numeric entry
func (s *Store) DefineFloat(name string, value, min, max, step float64) error {
	return s.define(Entry{Name: name, Kind: KindFloat, Min: min, Max: max, Step: step}, value)
}

// DefineInt registers an integer entry
func (s *Store) DefineInt(name string, value, min, max int) error {
	return s.define(Entry{Name: name, Kind: KindInt, Min: float64(min), Max: float64(max), Step: 1}, float64(value))
}

// DefineBool registers a toggle
func (s *Store) DefineBool(name string, value bool) error {
	return s.define(Entry{Name: name, Kind: KindBool, Min: 0, Max: 1, Step: 1}, boolValue(value))
}

func (s *Store) define(e Entry, value float64) error {
	if e.Name == "" {
		return errors.New("parameter name cannot be empty")
	}
	if _, exists := s.entries[e.Name]; exists {
		return fmt.Errorf("parameter %q already defined", e.Name)
	}
	if e.Min > e.Max {
		return fmt.Errorf("parameter %q: min %v greater than max %v", e.Name, e.Min, e.Max)
	}

	v, err := e.coerce(value)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", e.Name, err)
	}
	e.Value = v

	s.entries[e.Name] = &e
	s.order = append(s.order, e.Name)
	return nil
}

// coerce validates v and fits it to the entry's range and granularity
func (e *Entry) coerce(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidValue, v)
	}

	switch e.Kind {
	case KindBool:
		return boolValue(v != 0), nil
	case KindInt:
		v = math.Round(v)
	default:
		if e.Step > 0 {
			v = e.Min + util.RoundToStep(v-e.Min, e.Step)
			v = util.RoundDecimals(v, util.Decimals(e.Step)+util.Decimals(e.Min))
		}
	}

	return util.Clamp(v, e.Min, e.Max), nil
}

// OnChange registers fn to run synchronously whenever name changes value
func (s *Store) OnChange(name string, fn ChangeFunc) error {
	if _, ok := s.entries[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	s.handlers[name] = append(s.handlers[name], fn)
	return nil
}

// Lookup returns a copy of the entry
func (s *Store) Lookup(name string) (Entry, bool) {
	e, ok := s.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Get returns the numeric value of name, or 0 when it does not exist
func (s *Store) Get(name string) float64 {
	if e, ok := s.entries[name]; ok {
		return e.Value
	}
	return 0
}

// Int returns the value of an int entry
func (s *Store) Int(name string) int {
	return int(s.Get(name))
}

// Bool returns the state of a toggle
func (s *Store) Bool(name string) bool {
	return s.Get(name) != 0
}

// Set assigns a numeric value. Out-of-range values are clamped, not rejected.
// The stored value is returned.
func (s *Store) Set(name string, value float64) (float64, error) {
	e, ok := s.entries[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	if e.Kind == KindBool {
		return e.Value, fmt.Errorf("%w: %s is a toggle", ErrKindMismatch, name)
	}
	return s.assign(e, value)
}

// SetBool assigns a toggle
func (s *Store) SetBool(name string, value bool) error {
	e, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	if e.Kind != KindBool {
		return fmt.Errorf("%w: %s is not a toggle", ErrKindMismatch, name)
	}
	_, err := s.assign(e, boolValue(value))
	return err
}

// Toggle flips a bool entry and returns its new state
func (s *Store) Toggle(name string) (bool, error) {
	next := !s.Bool(name)
	if err := s.SetBool(name, next); err != nil {
		return false, err
	}
	return next, nil
}

// SetAny assigns a value of any kind. Bool entries accept bool or a number.
func (s *Store) SetAny(name string, value interface{}) error {
	e, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}

	switch v := value.(type) {
	case bool:
		if e.Kind != KindBool {
			return fmt.Errorf("%w: %s expects a number", ErrKindMismatch, name)
		}
		_, err := s.assign(e, boolValue(v))
		return err
	case float64:
		_, err := s.assign(e, v)
		return err
	case int:
		_, err := s.assign(e, float64(v))
		return err
	default:
		return fmt.Errorf("%w: %s got %T", ErrInvalidValue, name, value)
	}
}

func (s *Store) assign(e *Entry, value float64) (float64, error) {
	v, err := e.coerce(value)
	if err != nil {
		return e.Value, fmt.Errorf("parameter %q: %w", e.Name, err)
	}
	if v == e.Value {
		return v, nil
	}

	e.Value = v
	snapshot := *e
	for _, fn := range s.handlers[e.Name] {
		fn(snapshot)
	}
	return v, nil
}

// Entries returns copies of all entries in definition order
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.entries[name])
	}
	return out
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
