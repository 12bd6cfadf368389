package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ijma-tools/typeset/affiliation"
	"github.com/ijma-tools/typeset/format"
)

var (
	inputFile    string
	outputFile   string
	templateFile string
	vocabFile    string
	strict       bool
	pretty       bool
	rawAffil     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <from> <to>",
	Short: "Convert manuscripts between formats",
	Long: `Convert a manuscript from one format to another.

Arguments:
  from    Source format (submission, yaml, json)
  to      Target format (yaml, json, docx)

Input defaults to stdin, output defaults to stdout.

Examples:
  # Extract a manuscript record from a submission page
  typeset convert submission yaml -i submission.html -o record.yaml

  # Fill a Word article template from a record
  typeset convert yaml docx -i record.yaml -o article.docx --template template.docx

  # Keep affiliations as the authors wrote them
  typeset convert yaml docx -i record.yaml -o article.docx --template template.docx --raw-affiliations`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	convertCmd.Flags().StringVarP(&templateFile, "template", "t", "", "Word template file (required for docx output)")
	convertCmd.Flags().StringVar(&vocabFile, "vocab", "", "Affiliation vocabulary YAML file (default: built-in)")
	convertCmd.Flags().BoolVar(&strict, "strict", false, "Fail on records with missing required fields")
	convertCmd.Flags().BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")
	convertCmd.Flags().BoolVar(&rawAffil, "raw-affiliations", false, "Skip affiliation normalization")
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	fromFormat := args[0]
	toFormat := args[1]

	// Determine input source
	var input io.Reader
	var inputName string

	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing input file: %w", cerr)
			}
		}()
		input = f
		inputName = inputFile
	} else {
		input = os.Stdin
		inputName = "stdin"
	}

	// Determine output destination
	var output io.Writer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	} else {
		output = os.Stdout
	}

	parser, err := format.GetParser(fromFormat)
	if err != nil {
		return fmt.Errorf("unknown source format %q: %w", fromFormat, err)
	}

	serializer, err := format.GetSerializer(toFormat)
	if err != nil {
		return fmt.Errorf("unknown target format %q: %w", toFormat, err)
	}

	vocab, err := loadVocabulary()
	if err != nil {
		return err
	}

	parseOpts := &format.ParseOptions{
		Strict:     strict,
		SourceName: inputName,
	}

	records, err := parser.Parse(input, parseOpts)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	slog.Debug("parsed input", "format", fromFormat, "records", len(records))

	serializeOpts := &format.SerializeOptions{
		TemplateFile:          templateFile,
		Vocabulary:            vocab,
		NormalizeAffiliations: !rawAffil,
		Pretty:                pretty,
	}

	if err := serializer.Serialize(output, records, serializeOpts); err != nil {
		return fmt.Errorf("serializing output: %w", err)
	}

	return nil
}

// loadVocabulary returns the vocabulary named by --vocab, or nil so the
// built-in default applies.
func loadVocabulary() (*affiliation.Vocabulary, error) {
	if vocabFile == "" {
		return nil, nil
	}
	vocab, err := affiliation.LoadVocabulary(vocabFile)
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary: %w", err)
	}
	return vocab, nil
}
