// ABOUTME: Markdown to HTML conversion for the email body
// ABOUTME: Fixed substitution rules inside a styled document shell

package render

import (
	"fmt"
	"regexp"
)

var (
	h1Re            = regexp.MustCompile(`(?m)^# (.+)$`)
	h2Re            = regexp.MustCompile(`(?m)^## (.+)$`)
	linkedHeadingRe = regexp.MustCompile(`(?m)^### \[(.+?)\]\((.+?)\)$`)
	boldRe          = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe        = regexp.MustCompile(`\*(.+?)\*`)
	linkRe          = regexp.MustCompile(`\[(.+?)\]\((.+?)\)`)
	paragraphRe     = regexp.MustCompile(`\n\n+`)
)

const htmlShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8">
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; line-height: 1.6; }
h1 { color: #333; } h2 { color: #555; border-bottom: 1px solid #ddd; } h3 { margin-bottom: 5px; }
a { color: #0066cc; } em { color: #666; }
</style>
</head>
<body><p>%s</p></body>
</html>`

// EmptyDigestHTML is the delivered body when no article passed the filter.
const EmptyDigestHTML = "<h1>Daily News Digest</h1><p>No relevant articles found.</p>"

// MarkdownToHTML converts a rendered digest to an inline-styled HTML
// document. The rules cover exactly the constructs RenderMarkdown emits
// (headings, linked headings, emphasis, links, paragraph breaks); this is
// not a general Markdown converter. Identical input yields identical
// output.
func MarkdownToHTML(md string) string {
	html := md

	// Heading order matters: the linked h3 rule must run before the
	// generic link rule or the heading link loses its wrapper.
	html = h1Re.ReplaceAllString(html, "<h1>$1</h1>")
	html = h2Re.ReplaceAllString(html, "<h2>$1</h2>")
	html = linkedHeadingRe.ReplaceAllString(html, "<h3><a href='$2'>$1</a></h3>")

	html = boldRe.ReplaceAllString(html, "<strong>$1</strong>")
	html = italicRe.ReplaceAllString(html, "<em>$1</em>")
	html = linkRe.ReplaceAllString(html, "<a href='$2'>$1</a>")

	html = paragraphRe.ReplaceAllString(html, "</p><p>")

	return fmt.Sprintf(htmlShell, html)
}
