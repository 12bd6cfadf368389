// Package cmd provides CLI commands for typeset.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "typeset",
	Short: "Prepare journal manuscripts for publication",
	Long: `Typeset converts manuscript submissions into publication-ready artifacts.

It parses submission pages and record files into a manuscript
representation, normalizes author affiliations against a vocabulary of
institutions, and fills Word article templates.

Examples:
  typeset convert submission yaml -i submission.html -o record.yaml
  typeset convert yaml docx -i record.yaml -o article.docx --template template.docx
  typeset normalize "Psychology department, Damietta, alazhar"
  cat affiliations.txt | typeset normalize`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger()
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(formatsCmd)
}
