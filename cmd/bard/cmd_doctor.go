package main

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zoidbergclawd/bard/internal/config"
	"github.com/zoidbergclawd/bard/internal/format"
	"github.com/zoidbergclawd/bard/internal/readme"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that bard's environment is ready",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

type checkResult struct {
	name   string
	ok     bool
	detail string
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	results := make([]checkResult, 3)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(4)
	g.Go(func() error { results[0] = checkConfig(); return nil })
	g.Go(func() error { results[1] = checkGenerator(); return nil })
	g.Go(func() error { results[2] = checkRawHost(ctx); return nil })
	_ = g.Wait()

	rows := make([][]string, 0, len(results))
	failed := 0
	for _, r := range results {
		if !r.ok {
			failed++
		}
		rows = append(rows, []string{r.name, format.Status(r.ok), format.Truncate(r.detail, 60)})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, format.Table([]string{"CHECK", "STATUS", "DETAIL"}, rows, 60))
	if failed > 0 {
		fmt.Fprintf(out, "%d of %d checks failed.\n", failed, len(results))
	} else {
		fmt.Fprintln(out, "All checks passed. Ready to sing.")
	}
	return nil
}

func checkConfig() checkResult {
	r := checkResult{name: "config"}
	if _, err := resolveConfig(); err != nil {
		r.detail = err.Error()
		return r
	}
	r.ok = true
	if rootFlags.configPath != "" {
		r.detail = rootFlags.configPath
	} else {
		r.detail = "defaults + ~/.bard + ./.bard"
	}
	return r
}

func checkGenerator() checkResult {
	r := checkResult{name: "generator"}
	cfg, err := resolveConfig()
	if err != nil {
		r.detail = "config unreadable"
		return r
	}
	switch cfg.Generator.Provider {
	case config.ProviderOpenAI:
		if cfg.Generator.APIKey() == "" {
			r.detail = "api key env is empty (see generator.api_key_env)"
			return r
		}
		r.ok = true
		r.detail = fmt.Sprintf("openai model %s", cfg.Generator.Model)
	default:
		path, err := exec.LookPath(cfg.Generator.Command)
		if err != nil {
			r.detail = fmt.Sprintf("%s not found in PATH", cfg.Generator.Command)
			return r
		}
		r.ok = true
		r.detail = path
	}
	return r
}

func checkRawHost(ctx context.Context) checkResult {
	base := readme.DefaultBaseURL
	if cfg, err := resolveConfig(); err == nil && cfg.Fetch.BaseURL != "" {
		base = cfg.Fetch.BaseURL
	}
	r := checkResult{name: "raw content host"}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/", nil)
	if err != nil {
		r.detail = err.Error()
		return r
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		r.detail = err.Error()
		return r
	}
	resp.Body.Close()

	// Any HTTP response means the host is reachable; the status itself
	// does not matter for a bare "/" probe.
	r.ok = true
	r.detail = fmt.Sprintf("%s, HTTP %d in %s", base, resp.StatusCode, format.FmtDuration(time.Since(start)))
	return r
}
