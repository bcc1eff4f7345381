// Package session holds the mutable state of the password screen: the
// selected length, the enabled character classes and the last generated
// password. All computation is delegated to package generator.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vaultpass/batpass-go/internal/generator"
)

// Class names one of the four character groups.
type Class int

const (
	Upper Class = iota
	Lower
	Digits
	Symbols
)

var classNames = [...]string{"upper", "lower", "digits", "symbols"}

var ErrUnknownClass = errors.New("unknown character class")

func (c Class) String() string {
	if c < Upper || c > Symbols {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

// ParseClass maps a name such as "upper" or "Symbols" to a Class.
func ParseClass(s string) (Class, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range classNames {
		if s == name {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// Clipboard receives copied passwords.
type Clipboard interface {
	WriteAll(text string) error
}

// Session is the state behind one password screen. It is not safe for
// concurrent use.
type Session struct {
	gen      *generator.Generator
	length   int
	classes  generator.Classes
	password string
}

// New returns a session with the screen defaults. A nil gen uses the
// package-level generator source.
func New(gen *generator.Generator) *Session {
	if gen == nil {
		gen = generator.New(nil)
	}
	return &Session{
		gen:     gen,
		length:  generator.DefaultLength,
		classes: generator.DefaultClasses(),
	}
}

func (s *Session) Length() int                { return s.length }
func (s *Session) Classes() generator.Classes { return s.classes }

// Password returns the last generated password, or "" before the first Generate.
func (s *Session) Password() string { return s.password }

// SetLength sets the length, clamped to [generator.MinLength, generator.MaxLength].
func (s *Session) SetLength(n int) {
	s.length = max(generator.MinLength, min(n, generator.MaxLength))
}

func (s *Session) Increment() { s.SetLength(s.length + 1) }
func (s *Session) Decrement() { s.SetLength(s.length - 1) }

// Set enables or disables one class.
func (s *Session) Set(c Class, on bool) {
	switch c {
	case Upper:
		s.classes.Upper = on
	case Lower:
		s.classes.Lower = on
	case Digits:
		s.classes.Digits = on
	case Symbols:
		s.classes.Symbols = on
	}
}

// Enabled reports whether a class is on.
func (s *Session) Enabled(c Class) bool {
	switch c {
	case Upper:
		return s.classes.Upper
	case Lower:
		return s.classes.Lower
	case Digits:
		return s.classes.Digits
	case Symbols:
		return s.classes.Symbols
	}
	return false
}

// Toggle flips one class.
func (s *Session) Toggle(c Class) {
	s.Set(c, !s.Enabled(c))
}

// Strength scores the current configuration.
func (s *Session) Strength() int {
	return generator.Estimate(s.length, s.classes)
}

// Generate replaces the stored password with a fresh one and returns it.
func (s *Session) Generate() string {
	s.password = s.gen.Generate(s.length, s.classes)
	return s.password
}

// Copy writes the stored password to cb. With nothing generated yet it
// does not touch the clipboard and reports false.
func (s *Session) Copy(ctx context.Context, cb Clipboard) (bool, error) {
	if s.password == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := cb.WriteAll(s.password); err != nil {
		return false, fmt.Errorf("writing clipboard: %w", err)
	}
	return true, nil
}
