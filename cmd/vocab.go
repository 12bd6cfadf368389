package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ijma-tools/typeset/affiliation"
)

var vocabFileFlag string

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect the affiliation vocabulary",
	Long:  `Show the vocabulary used to normalize author affiliations.`,
}

var vocabShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active vocabulary as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		vocab, err := activeVocabulary()
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(vocab)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var vocabStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize vocabulary coverage",
	RunE: func(cmd *cobra.Command, args []string) error {
		vocab, err := activeVocabulary()
		if err != nil {
			return err
		}

		fmt.Printf("countries:          %d\n", len(vocab.Countries))
		fmt.Printf("cities:             %d\n", len(vocab.CityToCountry))
		fmt.Printf("city corrections:   %d\n", len(vocab.CityCorrections))
		fmt.Printf("departments:        %d\n", len(vocab.DeptToFaculty))
		fmt.Printf("university aliases: %d\n", len(vocab.UnivAliases))
		return nil
	},
}

func activeVocabulary() (*affiliation.Vocabulary, error) {
	if vocabFileFlag != "" {
		vocab, err := affiliation.LoadVocabulary(vocabFileFlag)
		if err != nil {
			return nil, fmt.Errorf("loading vocabulary: %w", err)
		}
		return vocab, nil
	}
	return affiliation.DefaultVocabulary(), nil
}

func init() {
	vocabCmd.PersistentFlags().StringVar(&vocabFileFlag, "vocab", "", "Affiliation vocabulary YAML file (default: built-in)")
	vocabCmd.AddCommand(vocabShowCmd)
	vocabCmd.AddCommand(vocabStatsCmd)
}
