package generator

import (
	"strings"
)

const (
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	DigitChars     = "0123456789"
	SymbolChars    = "!@#$%^&*()-_=+[]{};:,.<>/?"

	MinLength     = 6
	MaxLength     = 32
	DefaultLength = 12
)

// Classes selects which character groups make up the alphabet.
// All four may be false; see Alphabet.
type Classes struct {
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

// AllClasses returns a Classes value with every group enabled.
func AllClasses() Classes {
	return Classes{Upper: true, Lower: true, Digits: true, Symbols: true}
}

// DefaultClasses returns the classes enabled on a fresh screen: letters and digits, no symbols.
func DefaultClasses() Classes {
	return Classes{Upper: true, Lower: true, Digits: true}
}

// Count returns the number of enabled groups.
func (c Classes) Count() int {
	n := 0
	for _, on := range []bool{c.Upper, c.Lower, c.Digits, c.Symbols} {
		if on {
			n++
		}
	}
	return n
}

// Alphabet concatenates the enabled groups in canonical order
// (upper, lower, digits, symbols). With nothing enabled it falls back to
// the lowercase group so generation always has something to draw from.
func Alphabet(c Classes) string {
	var b strings.Builder
	if c.Upper {
		b.WriteString(UppercaseChars)
	}
	if c.Lower {
		b.WriteString(LowercaseChars)
	}
	if c.Digits {
		b.WriteString(DigitChars)
	}
	if c.Symbols {
		b.WriteString(SymbolChars)
	}
	if b.Len() == 0 {
		return LowercaseChars
	}
	return b.String()
}

// Generator draws passwords from an alphabet using its Source.
type Generator struct {
	src Source
}

// New returns a Generator bound to src. A nil src uses the package default.
func New(src Source) *Generator {
	if src == nil {
		src = defaultSource{}
	}
	return &Generator{src: src}
}

// Generate returns a password of exactly length characters, each drawn
// independently and uniformly from Alphabet(c). Non-positive lengths yield "".
func (g *Generator) Generate(length int, c Classes) string {
	if length <= 0 {
		return ""
	}

	alphabet := Alphabet(c)

	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(alphabet[g.src.IntN(len(alphabet))])
	}
	return sb.String()
}

var std = New(nil)

// Generate is Generator.Generate using the default non-cryptographic source.
func Generate(length int, c Classes) string {
	return std.Generate(length, c)
}
