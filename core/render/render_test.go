package render

import (
	"strings"
	"testing"
	"time"

	"newsdigest/core/domain"
)

var renderTime = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

func TestRenderMarkdown_GroupsByTopicInFirstSeenOrder(t *testing.T) {
	articles := []domain.Article{
		{Title: "AI one", Link: "https://example.com/a1", Source: "Feed A", Topic: "ai", Score: 9.0, AISummary: "First AI story."},
		{Title: "Biz one", Link: "https://example.com/b1", Source: "Feed B", Topic: "business", Score: 8.0, AISummary: "First business story."},
		{Title: "AI two", Link: "https://example.com/a2", Source: "Feed A", Topic: "ai", Score: 7.0, AISummary: "Second AI story."},
	}

	md := RenderMarkdown(articles, renderTime)

	aiIdx := strings.Index(md, "## AI")
	bizIdx := strings.Index(md, "## BUSINESS")
	if aiIdx < 0 || bizIdx < 0 {
		t.Fatalf("missing topic headings:\n%s", md)
	}
	if aiIdx > bizIdx {
		t.Error("topics must appear in first-seen order")
	}

	aiSection := md[aiIdx:bizIdx]
	if !strings.Contains(aiSection, "AI one") || !strings.Contains(aiSection, "AI two") {
		t.Errorf("both ai articles should sit under ## AI:\n%s", aiSection)
	}
}

func TestRenderMarkdown_ArticleBlock(t *testing.T) {
	articles := []domain.Article{
		{Title: "Big Story", Link: "https://example.com/big", Source: "The Feed", Topic: "tech", Score: 8.55, AISummary: "It happened."},
	}

	md := RenderMarkdown(articles, renderTime)

	for _, want := range []string{
		"# Daily News Digest",
		"*Monday, March 04, 2024*",
		"### [Big Story](https://example.com/big)",
		"*The Feed* | Score: 8.5",
		"It happened.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("digest missing %q:\n%s", want, md)
		}
	}
}

func TestRenderMarkdown_FallsBackToTruncatedSummary(t *testing.T) {
	long := strings.Repeat("w", 300)
	articles := []domain.Article{
		{Title: "No AI summary", Link: "https://example.com/x", Source: "Feed", Topic: "tech", Score: 7, Summary: long},
	}

	md := RenderMarkdown(articles, renderTime)

	if strings.Contains(md, strings.Repeat("w", 201)) {
		t.Error("raw summary should be capped at 200 characters")
	}
	if !strings.Contains(md, strings.Repeat("w", 200)) {
		t.Error("capped raw summary should still be present")
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	md := RenderMarkdown(nil, renderTime)

	if md != EmptyDigestMarkdown {
		t.Errorf("empty digest = %q", md)
	}
}

func TestRenderMarkdown_Deterministic(t *testing.T) {
	articles := []domain.Article{
		{Title: "A", Link: "https://example.com/a", Source: "S", Topic: "one", Score: 9, AISummary: "a"},
		{Title: "B", Link: "https://example.com/b", Source: "S", Topic: "two", Score: 8, AISummary: "b"},
		{Title: "C", Link: "https://example.com/c", Source: "S", Topic: "one", Score: 7, AISummary: "c"},
	}

	first := RenderMarkdown(articles, renderTime)
	for i := 0; i < 20; i++ {
		if got := RenderMarkdown(articles, renderTime); got != first {
			t.Fatal("identical input must render identically")
		}
	}
}

func TestMarkdownToHTML(t *testing.T) {
	articles := []domain.Article{
		{Title: "Big Story", Link: "https://example.com/big", Source: "The Feed", Topic: "tech", Score: 8.5, AISummary: "It happened."},
	}
	md := RenderMarkdown(articles, renderTime)

	html := MarkdownToHTML(md)

	for _, want := range []string{
		"<h1>Daily News Digest</h1>",
		"<h2>TECH</h2>",
		"<h3><a href='https://example.com/big'>Big Story</a></h3>",
		"<em>The Feed</em>",
		"<!DOCTYPE html>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q:\n%s", want, html)
		}
	}

	if strings.Contains(html, "### [") {
		t.Error("linked heading survived conversion")
	}
}

func TestMarkdownToHTML_Pure(t *testing.T) {
	md := "# Title\n*today*\n\n## TOPIC\n\n### [A](https://example.com)\n*S* | Score: 9.0\n\nsummary\n"

	first := MarkdownToHTML(md)
	if second := MarkdownToHTML(md); second != first {
		t.Error("conversion must be byte-identical for identical input")
	}
}
