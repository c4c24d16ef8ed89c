package main

import (
	"os"
	"regexp"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdfraven/pdfraven/internal/domain"
	"github.com/pdfraven/pdfraven/internal/pattern"
)

func newWordlistCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "wordlist <path>",
		Short: "Dictionary attack from a wordlist file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := pattern.Wordlist(args[0])
			if err != nil {
				return err
			}
			return runAttack(cmd, o, spec)
		},
	}
}

func newRangeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "range <min> <max>",
		Short: "Numeric range attack",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			min, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return err
			}
			max, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return err
			}
			spec, err := pattern.NumericRange(min, max)
			if err != nil {
				return err
			}
			return runAttack(cmd, o, spec)
		},
	}
}

func newNumericCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "numeric <length>",
		Short: "Fixed-length zero-padded numeric attack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			spec, err := pattern.FixedNumeric(length)
			if err != nil {
				return err
			}
			return runAttack(cmd, o, spec)
		},
	}
}

func newDateCmd(o *options) *cobra.Command {
	var layout, separator string
	cmd := &cobra.Command{
		Use:   "date <start-year> <end-year>",
		Short: "Calendar date attack",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			end, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			spec, err := pattern.Date(start, end, layout, separator)
			if err != nil {
				return err
			}
			return runAttack(cmd, o, spec)
		},
	}
	cmd.Flags().StringVar(&layout, "format", "DDMMYYYY", "date layout (e.g. DDMMYYYY, YYMMDD)")
	cmd.Flags().StringVar(&separator, "separator", "", "separator between date components")
	return cmd
}

func newQueryCmd(o *options) *cobra.Command {
	var zeroPad bool
	cmd := &cobra.Command{
		Use:   "custom-query <template>",
		Short: "Pattern attack like 'EMP{0-999}'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := pattern.Query(args[0], zeroPad)
			if err != nil {
				return err
			}
			return runAttack(cmd, o, spec)
		},
	}
	cmd.Flags().BoolVar(&zeroPad, "add-preceding-zeros", false, "pad numbers with leading zeros")
	return cmd
}

func newMaskCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "brute <mask>",
		Short: "Mask attack with symbolic charsets, e.g. 'w{4}d{2}'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := pattern.Mask(args[0])
			if err != nil {
				return err
			}
			return runAttack(cmd, o, spec)
		},
	}
}

func newHybridCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hybrid <left> <right>",
		Short: "Concatenate two attacks (wordlist path, range, or mask each)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := hybridPart(args[0])
			if err != nil {
				return err
			}
			right, err := hybridPart(args[1])
			if err != nil {
				return err
			}
			spec, err := pattern.Hybrid(left, right)
			if err != nil {
				return err
			}
			return runAttack(cmd, o, spec)
		},
	}
}

func newBruteCmd(o *options) *cobra.Command {
	var charset string
	var minLen, maxLen int
	cmd := &cobra.Command{
		Use:   "custom-brute",
		Short: "Brute force over a literal charset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := pattern.Brute(charset, minLen, maxLen)
			if err != nil {
				return err
			}
			return runAttack(cmd, o, spec)
		},
	}
	cmd.Flags().StringVar(&charset, "charset", "", "characters to enumerate")
	cmd.Flags().IntVar(&minLen, "min-length", 1, "minimum password length")
	cmd.Flags().IntVar(&maxLen, "max-length", 0, "maximum password length")
	_ = cmd.MarkFlagRequired("charset")
	_ = cmd.MarkFlagRequired("max-length")
	return cmd
}

var rangeArgRe = regexp.MustCompile(`^\d+-\d+$`)

// hybridPart resolves one side of a hybrid attack the way the attack
// modes are usually written: an existing file is a wordlist, MIN-MAX is a
// numeric range, anything else is a mask.
func hybridPart(s string) (*domain.AttackSpec, error) {
	if st, err := os.Stat(s); err == nil && !st.IsDir() {
		return pattern.Wordlist(s)
	}
	if rangeArgRe.MatchString(s) {
		return pattern.RangeString(s)
	}
	return pattern.Mask(s)
}
