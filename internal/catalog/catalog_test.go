package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/ndhoang/newsdesk/internal/api"
)

type fakeClient struct {
	categories []api.Category
	articles   map[string][]api.Article
	err        error
}

func (f *fakeClient) Categories(ctx context.Context) ([]api.Category, error) {
	return f.categories, f.err
}

func (f *fakeClient) TopArticles(ctx context.Context, categoryID string) ([]api.Article, error) {
	return f.articles[categoryID], f.err
}

func TestDedupeByName(t *testing.T) {
	tests := []struct {
		name  string
		input []api.Category
		want  []string // expected ids, in order
	}{
		{
			name: "exact duplicate",
			input: []api.Category{
				{ID: "c1", Name: "Technology"},
				{ID: "c2", Name: "Technology"},
			},
			want: []string{"c1"},
		},
		{
			name: "case-insensitive duplicate keeps first",
			input: []api.Category{
				{ID: "c1", Name: "Technology"},
				{ID: "c2", Name: "technology"},
				{ID: "c3", Name: "TECHNOLOGY"},
			},
			want: []string{"c1"},
		},
		{
			name: "distinct names preserved in order",
			input: []api.Category{
				{ID: "c1", Name: "Science"},
				{ID: "c2", Name: "Technology"},
				{ID: "c3", Name: "science"},
				{ID: "c4", Name: "Business"},
			},
			want: []string{"c1", "c2", "c4"},
		},
		{
			name:  "empty input",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupeByName(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d categories, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("position %d: got id %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestCategoriesDedupes(t *testing.T) {
	fake := &fakeClient{categories: []api.Category{
		{ID: "c1", Name: "Tech"},
		{ID: "c2", Name: "tech"},
		{ID: "c3", Name: "Science"},
	}}

	cats, err := New(fake).Categories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("got %d categories, want 2", len(cats))
	}
	if cats[0].ID != "c1" || cats[1].ID != "c3" {
		t.Errorf("got ids %q, %q; want c1, c3", cats[0].ID, cats[1].ID)
	}
}

func TestCategoriesPropagatesError(t *testing.T) {
	fake := &fakeClient{err: errors.New("backend down")}
	if _, err := New(fake).Categories(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestTopArticles(t *testing.T) {
	fake := &fakeClient{articles: map[string][]api.Article{
		"c1": {{ID: "a1", Headline: "Hello"}},
	}}

	articles, err := New(fake).TopArticles(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 || articles[0].Headline != "Hello" {
		t.Errorf("unexpected articles: %+v", articles)
	}
}
