package catalog

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

var leadingHash = regexp.MustCompile(`^#\s*`)

// IDFromFileName strips the extension from a note's file name.
func IDFromFileName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

type titleMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// Title derives the display title of a note. A front matter title wins;
// otherwise the first line of the body with one leading "#" and the
// whitespace after it removed. Blank results fall back to id.
func Title(content []byte, id string) string {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	if hasFrontMatter(content) {
		var meta titleMatter
		if body, err := frontmatter.Parse(bytes.NewReader(content), &meta); err == nil {
			if t := strings.TrimSpace(meta.Title); t != "" {
				return t
			}
			content = body
		}
	}

	firstLine, _, _ := strings.Cut(string(content), "\n")
	title := strings.TrimSpace(leadingHash.ReplaceAllString(firstLine, ""))
	if title == "" {
		return id
	}
	return title
}

// hasFrontMatter reports whether content opens with a YAML, TOML or JSON
// front matter delimiter line.
func hasFrontMatter(content []byte) bool {
	line, _, _ := bytes.Cut(content, []byte("\n"))
	switch string(bytes.TrimRight(line, " \t\r")) {
	case "---", "+++", ";;;":
		return true
	}
	return false
}

// StripFrontMatter returns content without its front matter block, if any.
// A leading byte order mark is dropped as well.
func StripFrontMatter(content []byte) []byte {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if !hasFrontMatter(content) {
		return content
	}
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return content
	}
	return body
}
