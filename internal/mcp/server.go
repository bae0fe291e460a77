// Package mcp exposes bard's README-to-song pipeline as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/zoidbergclawd/bard/internal/logging"
	"github.com/zoidbergclawd/bard/internal/readme"
	"github.com/zoidbergclawd/bard/internal/songwriter"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultMaxConcurrent bounds simultaneous generations when no limit is
// configured. Fetches are not gated, only generator calls.
const DefaultMaxConcurrent = 2

// Server wraps the MCP SDK server around the fetch and compose pipeline.
type Server struct {
	MCPServer *sdkmcp.Server

	fetcher   *readme.Fetcher
	generator songwriter.Generator
	sem       *semaphore.Weighted
}

// Option configures the Server during construction.
type Option func(*Server)

// WithMaxConcurrent bounds how many generations may run at once.
func WithMaxConcurrent(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(n)
		}
	}
}

// NewServer creates an MCP server exposing the compose_song and fetch_readme
// tools on top of the given fetcher and generator.
func NewServer(fetcher *readme.Fetcher, generator songwriter.Generator, opts ...Option) *Server {
	s := &Server{fetcher: fetcher, generator: generator}
	for _, opt := range opts {
		opt(s)
	}
	if s.sem == nil {
		s.sem = semaphore.NewWeighted(DefaultMaxConcurrent)
	}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "bard", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "compose_song",
		Description: "Fetch a GitHub repository's README and compose song lyrics about the project in the given style.",
	}, s.handleComposeSong)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "fetch_readme",
		Description: "Fetch a GitHub repository's README, probing the main and master branches and common filename variants.",
	}, s.handleFetchReadme)
}

// --- Tool input/output types ---

type composeSongInput struct {
	URL   string `json:"url" jsonschema:"GitHub repository URL (github.com/<owner>/<repo>)"`
	Style string `json:"style,omitempty" jsonschema:"musical style description (default: Epic Power Metal)"`
}

type composeSongOutput struct {
	Repo     string `json:"repo"`
	Style    string `json:"style"`
	Branch   string `json:"branch"`
	Filename string `json:"filename"`
	Song     string `json:"song"`
}

type fetchReadmeInput struct {
	URL string `json:"url" jsonschema:"GitHub repository URL (github.com/<owner>/<repo>)"`
}

type fetchReadmeOutput struct {
	Repo     string `json:"repo"`
	Branch   string `json:"branch"`
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
	Content  string `json:"content"`
}

func (s *Server) handleComposeSong(ctx context.Context, _ *sdkmcp.CallToolRequest, input composeSongInput) (*sdkmcp.CallToolResult, composeSongOutput, error) {
	style := input.Style
	if style == "" {
		style = songwriter.DefaultStyle
	}

	ref, err := readme.ParseRef(input.URL)
	if err != nil {
		return nil, composeSongOutput{}, err
	}
	doc, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, composeSongOutput{}, err
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, composeSongOutput{}, err
	}
	defer s.sem.Release(1)

	logging.New("mcp").Info("composing song", "repo", ref.String(), "style", style)
	prompt := songwriter.BuildPrompt(doc.Text, style, readme.DisplayName(input.URL))
	song, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, composeSongOutput{}, fmt.Errorf("compose song: %w", err)
	}

	return nil, composeSongOutput{
		Repo:     ref.String(),
		Style:    style,
		Branch:   doc.Branch,
		Filename: doc.Filename,
		Song:     song,
	}, nil
}

func (s *Server) handleFetchReadme(ctx context.Context, _ *sdkmcp.CallToolRequest, input fetchReadmeInput) (*sdkmcp.CallToolResult, fetchReadmeOutput, error) {
	ref, err := readme.ParseRef(input.URL)
	if err != nil {
		return nil, fetchReadmeOutput{}, err
	}
	doc, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, fetchReadmeOutput{}, err
	}

	title, _ := readme.Excerpt(doc.Text)
	return nil, fetchReadmeOutput{
		Repo:     ref.String(),
		Branch:   doc.Branch,
		Filename: doc.Filename,
		Title:    title,
		Content:  doc.Text,
	}, nil
}
