package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/habuhtat/habuhtat/internal/config"
	"github.com/habuhtat/habuhtat/internal/database"
	"github.com/habuhtat/habuhtat/internal/generate"
	"github.com/habuhtat/habuhtat/internal/llm"
	"github.com/habuhtat/habuhtat/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "habuhtat",
	Short:   "Habuhtat Media backend",
	Long:    "Habuhtat serves the hero story workflow: nominations, claims, story drafts, AI content generation, and publishing.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("habuhtat", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/habuhtat/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure the model and API key env var.")
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		gen := generate.New(db, newProvider())
		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, gen, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

// --- seed command ---

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo heroes and stories",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Seed(); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
		fmt.Println("Demo data loaded.")
		return nil
	},
}

// --- status command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Println("Heroes:")
		fmt.Printf("  Total: %d\n", stats.TotalHeroes)

		statuses := make([]string, 0, len(stats.HeroesByStatus))
		for status := range stats.HeroesByStatus {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			fmt.Printf("  %s: %d\n", status, stats.HeroesByStatus[status])
		}

		fmt.Println("\nStories:")
		fmt.Printf("  Total: %d\n", stats.TotalStories)
		fmt.Println("\nAI content:")
		fmt.Printf("  Total: %d\n", stats.TotalContent)
		fmt.Printf("  Pending review: %d\n", stats.PendingContent)

		if !newProvider().IsConfigured() {
			fmt.Printf("\nWarning: %s is not set; generation is disabled.\n", cfg.OpenAI.APIKeyEnv)
		}
		return nil
	},
}

// --- generate command ---

var generateCmd = &cobra.Command{
	Use:   "generate [heroProfileId] [platform] [contentType]",
	Short: "Generate one content variant for a hero",
	Long:  "Generate runs the same path as the API endpoint: it loads the hero and its latest story, prompts the model, and stores the result as pending content.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		gen := generate.New(db, newProvider())
		record, err := gen.Generate(context.Background(), generate.Request{
			HeroProfileID: args[0],
			Platform:      args[1],
			ContentType:   args[2],
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func newProvider() llm.Provider {
	return llm.NewOpenAIClient(cfg.OpenAI.Model, cfg.OpenAI.APIKey(), cfg.OpenAI.Temperature)
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "habuhtat.db")
	return database.Open(dbPath)
}
