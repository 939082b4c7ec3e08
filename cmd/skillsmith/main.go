// Package main provides the skillsmith CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/skillsmith/skillsmith/cli"
)

var (
	// Global flags
	provider  string
	modelName string
	dbPath    string
	verbose   bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "skillsmith",
		Short: "Turn an idea into a ready-to-use skill",
		Long: `Skillsmith turns a prose description into a skill: a SKILL.md plus any
supporting files, generated by an LLM, streamed as it is written.

Generations are recorded locally and can be exported as a zip or saved
straight into your project's skills directory.`,
	}

	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "LLM provider (openai, anthropic, deepseek, gemini)")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Model override for the provider")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path for history storage")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(saveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func options() cli.Options {
	return cli.Options{
		Provider: provider,
		Model:    modelName,
		DBPath:   dbPath,
		Verbose:  verbose,
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server with accounts, streamed generation, history,
settings, and zip export. Requires JWT_SECRET to be set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Serve(options(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from SKILLSMITH_ADDR)")
	return cmd
}

func generateCmd() *cobra.Command {
	var name string
	var save bool

	cmd := &cobra.Command{
		Use:   "generate [idea]",
		Short: "Generate a skill from an idea",
		Long: `Generate a skill from a prose idea. The model's output streams to
stdout; the parsed result is recorded in history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Generate(context.Background(), args[0], name, options(), save)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Suggested skill name")
	cmd.Flags().BoolVar(&save, "save", false, "Also write the files into the workspace skills directory")
	return cmd
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recorded generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.History(context.Background(), options())
		},
	}
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a recorded generation as a zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Export(context.Background(), args[0], out, options())
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default <skill-name>.zip)")
	return cmd
}

func saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [id]",
		Short: "Write a recorded generation into the workspace skills directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Save(context.Background(), args[0], options())
		},
	}
}
