package poemdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	githubAPIBase = "https://api.github.com"
	repoOwner     = "norn-uio"
	repoName      = "norn-poems"
	repoPath      = "TEI"

	fetchTimeout = 10 * time.Second

	// maxDocumentSize bounds how much of a response body is read.
	maxDocumentSize = 4 << 20
)

// repoFile is the slice of the GitHub contents API response the
// fetcher needs.
type repoFile struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

// Fetcher loads TEI collections from the norn-poems repository over
// the GitHub contents API.
type Fetcher struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher with a bounded request timeout.
func NewFetcher(logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: fetchTimeout},
		baseURL: githubAPIBase,
		logger:  logger.With("component", "poem_fetcher"),
	}
}

// NewFetcherWithBaseURL creates a Fetcher against a custom API base.
// Tests use this to point at a local server.
func NewFetcherWithBaseURL(baseURL string, logger *slog.Logger) *Fetcher {
	f := NewFetcher(logger)
	f.baseURL = baseURL
	return f
}

// ListXMLFiles returns the XML files under the repository's TEI path,
// capped at maxFiles when maxFiles is positive.
func (f *Fetcher) ListXMLFiles(ctx context.Context, maxFiles int) ([]repoFile, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", f.baseURL, repoOwner, repoName, repoPath)

	body, err := f.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to list repository contents: %w", err)
	}

	var files []repoFile
	if err := json.Unmarshal(body, &files); err != nil {
		return nil, fmt.Errorf("failed to decode repository listing: %w", err)
	}

	xmlFiles := make([]repoFile, 0, len(files))
	for _, file := range files {
		if strings.HasSuffix(file.Name, ".xml") {
			xmlFiles = append(xmlFiles, file)
		}
	}

	if maxFiles > 0 && len(xmlFiles) > maxFiles {
		xmlFiles = xmlFiles[:maxFiles]
	}

	return xmlFiles, nil
}

// FetchCatalog downloads and parses up to maxFiles TEI collections.
// Files that fail to download or parse, or that contain no poems, are
// logged and skipped rather than failing the whole catalog.
func (f *Fetcher) FetchCatalog(ctx context.Context, maxFiles int) (Catalog, error) {
	files, err := f.ListXMLFiles(ctx, maxFiles)
	if err != nil {
		return nil, err
	}

	catalog := make(Catalog, len(files))
	for _, file := range files {
		if file.Name == "" || file.DownloadURL == "" {
			continue
		}

		content, err := f.get(ctx, file.DownloadURL)
		if err != nil {
			f.logger.Warn("failed to download TEI file",
				"file", file.Name,
				"error", err)
			continue
		}

		collection, err := ParseTEI(content)
		if err != nil {
			f.logger.Warn("failed to parse TEI file",
				"file", file.Name,
				"error", err)
			continue
		}
		if len(collection.Poems) == 0 {
			continue
		}

		catalog[file.Name] = *collection
		f.logger.Info("parsed poem collection",
			"file", file.Name,
			"author", collection.Author,
			"poem_count", len(collection.Poems))
	}

	return catalog, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
