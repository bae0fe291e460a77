package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoidbergclawd/bard/internal/logging"
	"github.com/zoidbergclawd/bard/internal/readme"
)

var readmeFlags struct {
	summary bool
}

var readmeCmd = &cobra.Command{
	Use:   "readme <repository-url>",
	Short: "Fetch a repository's README and print it",
	Args:  cobra.ExactArgs(1),
	RunE:  runReadme,
}

func init() {
	readmeCmd.Flags().BoolVar(&readmeFlags.summary, "summary", false,
		"print only the README's title and first paragraph")
}

func runReadme(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ref, err := readme.ParseRef(args[0])
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
	logging.New("readme").Debug("fetched", "branch", doc.Branch, "filename", doc.Filename, "url", doc.URL)

	out := cmd.OutOrStdout()
	if readmeFlags.summary {
		title, digest := readme.Excerpt(doc.Text)
		if title == "" {
			title = readme.DisplayName(args[0])
		}
		fmt.Fprintln(out, title)
		if digest != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, digest)
		}
		return nil
	}

	fmt.Fprint(out, doc.Text)
	return nil
}
