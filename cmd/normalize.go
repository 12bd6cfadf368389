package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ijma-tools/typeset/affiliation"
)

var (
	normalizeInput   string
	normalizeOutput  string
	normalizeVocab   string
	normalizeDetails bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [affiliation...]",
	Short: "Normalize author affiliations",
	Long: `Normalize free-text author affiliations into the canonical
"Department, Faculty, University, City, Country" form.

Affiliations can be passed as arguments, or one per line on stdin or an
input file.

Examples:
  typeset normalize "Psychology department, Damietta, alazhar"
  cat affiliations.txt | typeset normalize
  typeset normalize -i affiliations.txt --details
  typeset normalize --vocab vocab.yaml "Dept of Comp Sci, Cairo Univ"`,
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeInput, "input", "i", "", "Input file, one affiliation per line (default: stdin)")
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "Output file (default: stdout)")
	normalizeCmd.Flags().StringVar(&normalizeVocab, "vocab", "", "Affiliation vocabulary YAML file (default: built-in)")
	normalizeCmd.Flags().BoolVar(&normalizeDetails, "details", false, "Show per-field extraction details")
}

func runNormalize(cmd *cobra.Command, args []string) (err error) {
	var vocab *affiliation.Vocabulary
	if normalizeVocab != "" {
		vocab, err = affiliation.LoadVocabulary(normalizeVocab)
		if err != nil {
			return fmt.Errorf("loading vocabulary: %w", err)
		}
	}
	norm := affiliation.NewNormalizer(vocab)

	var out io.Writer = os.Stdout
	if normalizeOutput != "" {
		f, createErr := os.Create(normalizeOutput)
		if createErr != nil {
			return fmt.Errorf("creating output file: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		out = f
	}

	if len(args) > 0 {
		for _, arg := range args {
			printNormalized(out, norm, arg)
		}
		return nil
	}

	var input io.Reader
	if normalizeInput != "" {
		f, openErr := os.Open(normalizeInput)
		if openErr != nil {
			return fmt.Errorf("opening input file: %w", openErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing input file: %w", cerr)
			}
		}()
		input = f
	} else {
		input = os.Stdin
	}

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		printNormalized(out, norm, scanner.Text())
	}
	if serr := scanner.Err(); serr != nil {
		return fmt.Errorf("reading input: %w", serr)
	}
	return nil
}

func printNormalized(out io.Writer, norm *affiliation.Normalizer, raw string) {
	if !normalizeDetails {
		fmt.Fprintln(out, norm.Normalize(raw))
		return
	}

	result := norm.NormalizeDetailed(raw)
	fmt.Fprintln(out, result.Normalized)
	for _, field := range []struct {
		name  string
		field affiliation.Field
	}{
		{"department", result.Department},
		{"faculty", result.Faculty},
		{"university", result.University},
		{"city", result.City},
		{"country", result.Country},
	} {
		fmt.Fprintf(out, "  %-10s %-9s %s\n", field.name, field.field.Provenance, field.field.Value)
	}
}
