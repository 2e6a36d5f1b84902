// Package ingest pulls RSS/Atom feeds and pushes their items into the
// backend through the article upsert operation.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/ndhoang/newsdesk/internal/api"
	"github.com/ndhoang/newsdesk/internal/config"
)

// Upserter is the slice of the gateway ingest needs.
type Upserter interface {
	UpsertArticle(ctx context.Context, article api.ArticleUpsert) (*api.Article, error)
}

type Fetcher struct {
	parser *gofeed.Parser
}

func NewFetcher() *Fetcher {
	return &Fetcher{parser: gofeed.NewParser()}
}

// Fetch parses one feed into upsert payloads. Items without a link
// are skipped; the server keys articles by URL.
func (f *Fetcher) Fetch(ctx context.Context, feed config.Feed) ([]api.ArticleUpsert, error) {
	parsed, err := f.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", feed.Name, err)
	}

	now := time.Now()
	articles := make([]api.ArticleUpsert, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		pub := now
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		summary = truncate(stripHTML(summary), 300)

		articles = append(articles, api.ArticleUpsert{
			Headline:        item.Title,
			Summary:         summary,
			URL:             item.Link,
			Source:          feed.Name,
			PublicationDate: pub,
			CategoryID:      feed.Category,
		})
	}
	return articles, nil
}

// Result accumulates one ingest run.
type Result struct {
	Fetched int
	Pushed  int
	Errors  []error
}

// Run fetches all feeds concurrently, then upserts the items one by
// one. Per-feed and per-item failures are collected, not fatal.
func Run(ctx context.Context, client Upserter, feeds []config.Feed) Result {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		result   Result
		articles []api.ArticleUpsert
	)

	fetcher := NewFetcher()

	for _, feed := range feeds {
		wg.Add(1)
		go func(f config.Feed) {
			defer wg.Done()
			items, err := fetcher.Fetch(ctx, f)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, err)
				return
			}
			articles = append(articles, items...)
		}(feed)
	}
	wg.Wait()

	result.Fetched = len(articles)
	for _, a := range articles {
		if ctx.Err() != nil {
			result.Errors = append(result.Errors, ctx.Err())
			return result
		}
		if _, err := client.UpsertArticle(ctx, a); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("upserting %s: %w", a.URL, err))
			continue
		}
		result.Pushed++
	}
	return result
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
