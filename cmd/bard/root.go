// bard turns a GitHub repository's README into song lyrics.
//
// Usage:
//
//	bard <repository-url> [style]
//	bard readme <repository-url> [--summary]
//	bard doctor
//	bard serve
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoidbergclawd/bard/internal/config"
	"github.com/zoidbergclawd/bard/internal/logging"
	"github.com/zoidbergclawd/bard/internal/readme"
	"github.com/zoidbergclawd/bard/internal/songwriter"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	output     string
}

var rootCmd = &cobra.Command{
	Use:   "bard <repository-url> [style]",
	Short: "Turn a GitHub repository's README into song lyrics",
	Long: "Bard fetches a project's README from GitHub and asks an AI songwriter\n" +
		"to turn it into Suno-ready lyrics in the style of your choosing.",
	Args:          cobra.RangeArgs(1, 2),
	RunE:          runSing,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "",
		"explicit config file (default: ~/.bard/config.yaml, then ./.bard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "",
		"override the configured log level (debug, info, warn, error)")
	rootCmd.Flags().StringVarP(&rootFlags.output, "output", "o", "",
		"also write the song to a file")

	rootCmd.AddCommand(readmeCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func runSing(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url := args[0]
	style := songwriter.DefaultStyle
	if len(args) > 1 {
		style = args[1]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "🎵 Tuning instruments for %s...\n", readme.DisplayName(url))
	fmt.Fprintln(out, "📜 Reading the sacred texts (README)...")

	ref, err := readme.ParseRef(url)
	if err != nil {
		return err
	}
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	doc, err := fetcher.Fetch(cmd.Context(), ref)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "🎸 Composing in the style of: %s...\n", style)

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	prompt := songwriter.BuildPrompt(doc.Text, style, readme.DisplayName(url))
	song, err := gen.Generate(cmd.Context(), prompt)
	if err != nil {
		return err
	}

	printSong(out, song)

	if rootFlags.output != "" {
		if err := os.WriteFile(rootFlags.output, []byte(song), 0o644); err != nil {
			return fmt.Errorf("write song: %w", err)
		}
		fmt.Fprintf(out, "Song written to %s\n", rootFlags.output)
	}
	return nil
}

// printSong frames the song verbatim between separator lines.
func printSong(w io.Writer, song string) {
	sep := strings.Repeat("=", 40)
	fmt.Fprintln(w)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, song)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w)
}

// loadConfig resolves configuration and installs the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if rootFlags.logLevel != "" {
		level = rootFlags.logLevel
	}
	logging.Init(level, "text")
	return cfg, nil
}

// resolveConfig loads config without side effects on global logging.
func resolveConfig() (*config.Config, error) {
	if rootFlags.configPath != "" {
		return config.LoadFrom(rootFlags.configPath)
	}
	return config.Load()
}

func newFetcher(cfg *config.Config) (*readme.Fetcher, error) {
	timeout, err := cfg.Fetch.TimeoutValue()
	if err != nil {
		return nil, err
	}
	opts := []readme.Option{
		readme.WithBranches(cfg.Fetch.Branches),
		readme.WithFilenames(cfg.Fetch.Filenames),
		readme.WithLogger(logging.New("fetch")),
	}
	if cfg.Fetch.BaseURL != "" {
		opts = append(opts, readme.WithBaseURL(cfg.Fetch.BaseURL))
	}
	if timeout > 0 {
		opts = append(opts, readme.WithTimeout(timeout))
	}
	return readme.NewFetcher(opts...), nil
}

func newGenerator(cfg *config.Config) (songwriter.Generator, error) {
	switch cfg.Generator.Provider {
	case config.ProviderOpenAI:
		return songwriter.NewOpenAIGenerator(cfg.Generator.Model, cfg.Generator.APIKey(), cfg.Generator.BaseURL)
	default:
		timeout, err := cfg.Generator.TimeoutValue()
		if err != nil {
			return nil, err
		}
		return songwriter.NewCLIGenerator(cfg.Generator.Command,
			songwriter.WithCLITimeout(timeout),
			songwriter.WithCLILogger(logging.New("generate")),
		), nil
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
