// Command execution for CLI commands.
//
// Information Hiding:
// - Provider and storage setup hidden
// - Output formatting hidden

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/skillsmith/skillsmith/artifact"
	"github.com/skillsmith/skillsmith/auth"
	"github.com/skillsmith/skillsmith/config"
	"github.com/skillsmith/skillsmith/export"
	"github.com/skillsmith/skillsmith/llm"
	"github.com/skillsmith/skillsmith/model"
	"github.com/skillsmith/skillsmith/prompt"
	"github.com/skillsmith/skillsmith/server"
	"github.com/skillsmith/skillsmith/storage"
	"github.com/skillsmith/skillsmith/workspace"
)

// localUserID owns CLI-created history. The CLI has no accounts; the HTTP
// API does.
const localUserID = "local"

// Options holds CLI execution options.
type Options struct {
	Provider string
	Model    string
	DBPath   string
	Verbose  bool
}

func (o Options) dbPath() string {
	if o.DBPath != "" {
		return o.DBPath
	}
	return config.DefaultDBPath
}

func (o Options) createProvider() (llm.Provider, error) {
	name := o.Provider
	if name == "" {
		name = "anthropic"
	}
	providerType, err := llm.ParseProviderType(name)
	if err != nil {
		return nil, err
	}
	builder := llm.NewProviderBuilder(providerType)
	if o.Model != "" {
		builder = builder.Model(o.Model)
	}
	return builder.FromEnv()
}

func (o Options) openStore() (*storage.SqliteStore, error) {
	return storage.OpenSqlite(o.dbPath())
}

// Serve runs the HTTP API server.
func Serve(opts Options, addr string) error {
	settings, err := config.New(opts.Provider)
	if err != nil {
		return err
	}
	if addr != "" {
		settings.Server.Addr = addr
	}
	if opts.DBPath != "" {
		settings.DBPath = opts.DBPath
	}
	if settings.Server.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required to serve")
	}

	store, err := storage.OpenSqlite(settings.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	tokens, err := auth.NewTokenManager(settings.Server.JWTSecret, settings.Server.TokenTTL)
	if err != nil {
		return err
	}

	fmt.Printf("Listening on %s (provider: %s)\n", settings.Server.Addr, settings.LLM.Provider)
	return server.New(store, tokens, settings, nil).Run()
}

// Generate streams a skill for the idea to stdout, records it in history,
// and optionally writes the files into the detected workspace.
func Generate(ctx context.Context, idea, name string, opts Options, save bool) error {
	provider, err := opts.createProvider()
	if err != nil {
		return err
	}

	if opts.Verbose {
		fmt.Printf("Using %s (%s)\n\n", provider.Name(), provider.Model())
	}

	system, user, err := prompt.Build(prompt.Request{Idea: idea, Name: name})
	if err != nil {
		return err
	}

	client := llm.NewClient(provider)
	full, usage, err := client.StreamTo(ctx, llm.GenerateRequest{System: system, Prompt: user}, func(chunk string) {
		fmt.Print(chunk)
	})
	fmt.Println()
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	if opts.Verbose && usage != nil {
		fmt.Printf("\nTokens: %d prompt, %d completion\n", usage.PromptTokens, usage.CompletionTokens)
	}

	result := artifact.Parse(full)
	entry := model.HistoryEntry{
		ID:        uuid.New().String(),
		UserID:    localUserID,
		Idea:      idea,
		SkillName: artifact.SkillName(result),
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}

	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	fmt.Printf("\nRecorded %q (%d files, id %s)\n", entry.SkillName, len(result.Files), entry.ID)

	if save {
		return saveEntry(entry)
	}
	return nil
}

func saveEntry(entry model.HistoryEntry) error {
	target, err := workspace.Detect("")
	if err != nil {
		return err
	}
	name := entry.SkillName
	if name == "" {
		name = entry.ID
	}
	root := filepath.Join(target.Path, name)
	if err := export.SaveAll(root, entry.Result.Files); err != nil {
		return err
	}
	fmt.Printf("Saved to %s (%s)\n", root, target.Label)
	return nil
}

// History lists recorded generations, newest first.
func History(ctx context.Context, opts Options) error {
	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(ctx, localUserID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No generations recorded yet.")
		return nil
	}

	for _, entry := range entries {
		name := entry.SkillName
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("%s  %s  %-24s %s\n",
			entry.ID,
			entry.CreatedAt.Local().Format("2006-01-02 15:04"),
			name,
			truncate(entry.Idea, 60))
	}
	return nil
}

// Export writes a history entry to disk: the file itself for a single-file
// artifact, a zip archive otherwise.
func Export(ctx context.Context, id, outPath string, opts Options) error {
	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Entry(ctx, id)
	if err != nil {
		return fmt.Errorf("entry %s: %w", id, err)
	}

	if !entry.Result.MultiFile() {
		primary := entry.Result.Primary()
		if outPath == "" {
			outPath = filepath.Base(primary.Path)
		}
		if err := export.WriteFile(outPath, primary.Content); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", outPath)
		return nil
	}

	if outPath == "" {
		outPath = export.ArchiveName(entry.SkillName)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.Archive(f, entry.Result.Files); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d files)\n", outPath, len(entry.Result.Files))
	return nil
}

// Save writes a history entry's files into the detected workspace.
func Save(ctx context.Context, id string, opts Options) error {
	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Entry(ctx, id)
	if err != nil {
		return fmt.Errorf("entry %s: %w", id, err)
	}
	return saveEntry(entry)
}

// truncate shortens s to at most n runes. Rune-based so multi-byte input
// is never cut mid-character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
