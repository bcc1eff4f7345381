package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultpass/batpass-go/internal/generator"
	"github.com/vaultpass/batpass-go/internal/session"
)

// clipboardWriter is replaced in tests.
var clipboardWriter session.Clipboard = session.SystemClipboard{}

type classFlags struct {
	length  int
	upper   bool
	lower   bool
	digits  bool
	symbols bool
	only    []string
}

func (f *classFlags) register(cmd *cobra.Command) {
	def := generator.DefaultClasses()
	cmd.Flags().IntVarP(&f.length, "length", "l", generator.DefaultLength,
		fmt.Sprintf("Password length (%d-%d)", generator.MinLength, generator.MaxLength))
	cmd.Flags().BoolVar(&f.upper, "upper", def.Upper, "Include uppercase letters")
	cmd.Flags().BoolVar(&f.lower, "lower", def.Lower, "Include lowercase letters")
	cmd.Flags().BoolVar(&f.digits, "digits", def.Digits, "Include digits")
	cmd.Flags().BoolVar(&f.symbols, "symbols", def.Symbols, "Include symbols")
	cmd.Flags().StringSliceVar(&f.only, "class", nil,
		"Use only these classes (upper, lower, digits, symbols); repeatable, overrides the class toggles")
}

// apply copies the flags onto s. The length goes through the session's
// clamp, as the stepper buttons would.
func (f *classFlags) apply(s *session.Session) error {
	s.SetLength(f.length)
	if len(f.only) == 0 {
		s.Set(session.Upper, f.upper)
		s.Set(session.Lower, f.lower)
		s.Set(session.Digits, f.digits)
		s.Set(session.Symbols, f.symbols)
		return nil
	}

	selected := make(map[session.Class]bool, len(f.only))
	for _, name := range f.only {
		c, err := session.ParseClass(name)
		if err != nil {
			return err
		}
		selected[c] = true
	}
	for _, c := range []session.Class{session.Upper, session.Lower, session.Digits, session.Symbols} {
		s.Set(c, selected[c])
	}
	return nil
}

func newGenerateCmd() *cobra.Command {
	var (
		flags  classFlags
		seed   uint64
		count  int
		copyIt bool
		secure bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate passwords",
		Long:  "Generates one or more passwords and prints the strength of the configuration. Lengths outside 6-32 are clamped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			if secure && cmd.Flags().Changed("seed") {
				return fmt.Errorf("--seed and --secure are mutually exclusive")
			}

			var src generator.Source
			switch {
			case secure:
				src = generator.CryptoSource{}
			case cmd.Flags().Changed("seed"):
				src = generator.NewSeededSource(seed)
			}

			s := session.New(generator.New(src))
			if err := flags.apply(s); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				fmt.Fprintln(out, s.Generate())
			}

			score := s.Strength()
			fmt.Fprintf(cmd.ErrOrStderr(), "strength %s %d/%d (%s)\n",
				generator.Bar(score), score, generator.MaxScore, generator.Label(score))

			if copyIt {
				copied, err := s.Copy(cmd.Context(), clipboardWriter)
				if err != nil {
					return err
				}
				if copied {
					fmt.Fprintln(cmd.ErrOrStderr(), "copied to clipboard")
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible output")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of passwords to generate")
	cmd.Flags().BoolVarP(&copyIt, "copy", "c", false, "Copy the last password to the clipboard")
	cmd.Flags().BoolVar(&secure, "secure", false, "Draw from crypto/rand instead of math/rand")
	return cmd
}
