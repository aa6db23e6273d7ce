package docsync

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Page is one documentation page extracted from the source archive.
type Page struct {
	// Path is the archive path with the leading component stripped,
	// e.g. "docs/guides/sessions.md".
	Path string
	// Slug is the path without directory or extension.
	Slug string
	// Title comes from front-matter, falling back to a title-cased slug.
	Title string
	// Hidden pages are skipped by the sync.
	Hidden bool
	// Body is the markdown content after the front-matter fence.
	Body string
}

// frontMatter is the YAML block between "---" fences at the top of a page.
type frontMatter struct {
	Title  string `yaml:"title"`
	Hidden bool   `yaml:"hidden"`
}

var titleCaser = cases.Title(language.English)

// collectPages walks a gzip'd tar stream and parses every markdown file
// under the given prefix. Entries are returned sorted by path so diffing is
// deterministic.
func collectPages(r io.Reader, prefix string) ([]Page, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("docsync: open archive: %w", err)
	}
	defer gz.Close()

	var pages []Page
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("docsync: read archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		// Archive entries carry a leading "repo-ref/" component.
		name := hdr.Name
		if i := strings.IndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".md") {
			continue
		}

		content, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("docsync: read %s: %w", hdr.Name, err)
		}

		pages = append(pages, parsePage(name, content))
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })
	return pages, nil
}

// parsePage splits front-matter from markdown body and fills in defaults.
func parsePage(name string, content []byte) Page {
	slug := strings.TrimSuffix(path.Base(name), ".md")
	page := Page{
		Path: name,
		Slug: slug,
	}

	var fm frontMatter
	body := content
	if fence, rest, ok := cutFrontMatter(content); ok {
		// Unparseable front-matter degrades to defaults; the page still syncs.
		_ = yaml.Unmarshal(fence, &fm)
		body = rest
	}

	page.Title = fm.Title
	if page.Title == "" {
		page.Title = titleCaser.String(strings.ReplaceAll(slug, "-", " "))
	}
	page.Hidden = fm.Hidden
	page.Body = strings.TrimSpace(string(body))
	return page
}

// cutFrontMatter splits "---\n...\n---\n" fences off the top of a page.
func cutFrontMatter(content []byte) (fence, rest []byte, ok bool) {
	const delim = "---"

	trimmed := bytes.TrimLeft(content, "\uFEFF\r\n")
	if !bytes.HasPrefix(trimmed, []byte(delim+"\n")) && !bytes.HasPrefix(trimmed, []byte(delim+"\r\n")) {
		return nil, nil, false
	}

	after := trimmed[len(delim):]
	after = bytes.TrimPrefix(after, []byte("\r"))
	after = bytes.TrimPrefix(after, []byte("\n"))

	// The closing fence must be a line that is exactly "---". A longer run
	// like "----" is a thematic break, and "---foo" is body content.
	for end := 0; ; end++ {
		i := bytes.Index(after[end:], []byte("\n"+delim))
		if i < 0 {
			return nil, nil, false
		}
		end += i
		tail := after[end+1+len(delim):]
		if !closesFence(tail) {
			continue
		}

		fence = after[:end]
		rest = bytes.TrimPrefix(tail, []byte("\r"))
		rest = bytes.TrimPrefix(rest, []byte("\n"))
		return fence, rest, true
	}
}

// closesFence reports whether the bytes following "---" end its line.
func closesFence(tail []byte) bool {
	if len(tail) == 0 || tail[0] == '\n' {
		return true
	}
	return tail[0] == '\r' && (len(tail) == 1 || tail[1] == '\n')
}

// excerptPolicy strips every tag goldmark produced, leaving plain text.
var excerptPolicy = bluemonday.StrictPolicy()

// Excerpt renders the page's markdown and returns the first plain-text
// line, clipped at a word boundary. Headings are not prose and are skipped.
func (p Page) Excerpt(limit int) string {
	var md strings.Builder
	for _, line := range strings.Split(p.Body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		md.WriteString(line)
		md.WriteString("\n")
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(md.String()), &html); err != nil {
		return ""
	}

	text := excerptPolicy.Sanitize(html.String())
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return clipWords(line, limit)
	}
	return ""
}

// clipWords truncates s to at most limit runes, cutting on a word boundary
// with a trailing ellipsis.
func clipWords(s string, limit int) string {
	if limit <= 0 || len([]rune(s)) <= limit {
		return s
	}

	runes := []rune(s)[:limit]
	if i := strings.LastIndexByte(string(runes), ' '); i > 0 {
		return string(runes)[:i] + "…"
	}
	return string(runes) + "…"
}
