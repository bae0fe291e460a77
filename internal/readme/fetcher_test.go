package readme

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// rawServer fakes the raw content host: content maps candidate paths to
// bodies, status maps paths to non-200 statuses, and every request path is
// recorded in order.
func rawServer(t *testing.T, content map[string]string, status map[string]int) (*Fetcher, *[]string) {
	t.Helper()
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if code, ok := status[r.URL.Path]; ok {
			http.Error(w, http.StatusText(code), code)
			return
		}
		if body, ok := content[r.URL.Path]; ok {
			fmt.Fprint(w, body)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	f := NewFetcher(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	return f, &paths
}

func testRef() Ref {
	return Ref{Owner: "foo", Name: "bar", URL: "https://github.com/foo/bar"}
}

func TestFetch_FirstCandidateWins(t *testing.T) {
	f, paths := rawServer(t, map[string]string{
		"/foo/bar/main/README.md": "# Bar\n\nHello.",
	}, nil)

	doc, err := f.Fetch(context.Background(), testRef())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if doc.Text != "# Bar\n\nHello." {
		t.Errorf("Text = %q", doc.Text)
	}
	if doc.Branch != "main" || doc.Filename != "README.md" {
		t.Errorf("provenance = %s/%s, want main/README.md", doc.Branch, doc.Filename)
	}
	if len(*paths) != 1 {
		t.Errorf("requests = %d, want 1 (no probing past a hit)", len(*paths))
	}
}

func TestFetch_ThirdCandidateWins(t *testing.T) {
	f, paths := rawServer(t, map[string]string{
		"/foo/bar/main/README.txt": "plain text readme",
	}, nil)

	doc, err := f.Fetch(context.Background(), testRef())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if doc.Filename != "README.txt" || doc.Branch != "main" {
		t.Errorf("provenance = %s/%s, want main/README.txt", doc.Branch, doc.Filename)
	}
	if len(*paths) != 3 {
		t.Errorf("requests = %d, want 3", len(*paths))
	}
}

func TestFetch_FallbackBranch(t *testing.T) {
	f, paths := rawServer(t, map[string]string{
		"/foo/bar/master/README.md": "# old default branch",
	}, nil)

	doc, err := f.Fetch(context.Background(), testRef())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if doc.Branch != "master" || doc.Filename != "README.md" {
		t.Errorf("provenance = %s/%s, want master/README.md", doc.Branch, doc.Filename)
	}
	if len(*paths) != 5 {
		t.Errorf("requests = %d, want 5 (all four main candidates first)", len(*paths))
	}
}

func TestFetch_AllCandidatesMiss(t *testing.T) {
	f, paths := rawServer(t, nil, nil)

	_, err := f.Fetch(context.Background(), testRef())
	if err == nil {
		t.Fatal("expected error when every candidate misses")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}
	if !strings.Contains(err.Error(), "https://github.com/foo/bar") {
		t.Errorf("error %q does not name the repository URL", err)
	}
	if !strings.Contains(err.Error(), "main, master") {
		t.Errorf("error %q does not name the branches checked", err)
	}

	want := []string{
		"/foo/bar/main/README.md",
		"/foo/bar/main/README.rst",
		"/foo/bar/main/README.txt",
		"/foo/bar/main/readme.md",
		"/foo/bar/master/README.md",
		"/foo/bar/master/README.rst",
		"/foo/bar/master/README.txt",
		"/foo/bar/master/readme.md",
	}
	if diff := cmp.Diff(want, *paths); diff != "" {
		t.Errorf("probe order mismatch (-want +got):\n%s", diff)
	}
}

func TestFetch_SkipsClientAndServerErrors(t *testing.T) {
	f, paths := rawServer(t,
		map[string]string{"/foo/bar/main/README.txt": "survived"},
		map[string]int{
			"/foo/bar/main/README.md":  http.StatusForbidden,
			"/foo/bar/main/README.rst": http.StatusInternalServerError,
		})

	doc, err := f.Fetch(context.Background(), testRef())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if doc.Text != "survived" {
		t.Errorf("Text = %q, want 'survived'", doc.Text)
	}
	if len(*paths) != 3 {
		t.Errorf("requests = %d, want 3", len(*paths))
	}
}

func TestFetch_SkipsTransportErrors(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/foo/bar/main/README.md" {
			// Drop the connection mid-request.
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("server does not support hijacking")
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Fatalf("hijack: %v", err)
			}
			conn.Close()
			return
		}
		fmt.Fprint(w, "second candidate")
	}))
	t.Cleanup(server.Close)

	f := NewFetcher(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	doc, err := f.Fetch(context.Background(), testRef())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if doc.Text != "second candidate" {
		t.Errorf("Text = %q", doc.Text)
	}
	if len(paths) != 2 {
		t.Errorf("requests = %d, want 2", len(paths))
	}
}

func TestFetch_CustomCandidates(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		fmt.Fprint(w, "adoc")
	}))
	t.Cleanup(server.Close)

	f := NewFetcher(
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithBranches([]string{"trunk"}),
		WithFilenames([]string{"README.adoc"}),
	)
	doc, err := f.Fetch(context.Background(), testRef())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if doc.Branch != "trunk" || doc.Filename != "README.adoc" {
		t.Errorf("provenance = %s/%s, want trunk/README.adoc", doc.Branch, doc.Filename)
	}
	if len(paths) != 1 || paths[0] != "/foo/bar/trunk/README.adoc" {
		t.Errorf("paths = %v", paths)
	}
}

func TestFetch_EmptyOverridesKeepDefaults(t *testing.T) {
	f := NewFetcher(WithBranches(nil), WithFilenames([]string{}))
	if diff := cmp.Diff(DefaultBranches, f.branches); diff != "" {
		t.Errorf("branches (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultFilenames, f.filenames); diff != "" {
		t.Errorf("filenames (-want +got):\n%s", diff)
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	f, _ := rawServer(t, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, testRef())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if IsNotFound(err) {
		t.Error("a canceled fetch must not masquerade as not-found")
	}
}
