package knowledge

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const bullet = "• "

// Topic is one builtin knowledge base entry. Key is a compound term whose
// "_"-separated parts are matched against questions.
type Topic struct {
	Key     string
	Title   string
	Bullets []string
}

// Keywords returns the parts of the topic key.
func (t Topic) Keywords() []string {
	return strings.Split(t.Key, "_")
}

// Format renders the topic as the answer text: the title followed by one
// bulleted line per item.
func (t Topic) Format() string {
	var b strings.Builder
	b.WriteString(t.Title)
	for _, item := range t.Bullets {
		b.WriteByte('\n')
		if !hasMarker(item) {
			b.WriteString(bullet)
		}
		b.WriteString(item)
	}
	return b.String()
}

func hasMarker(item string) bool {
	return strings.HasPrefix(item, "•") || strings.HasPrefix(item, "✗")
}

// LoadTopics parses every .md file under dir in lexical path order.
func LoadTopics(fsys fs.FS, dir string) ([]Topic, error) {
	var topics []Topic
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", p, err)
		}
		if d.IsDir() || path.Ext(p) != ".md" {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read topic file %s: %w", p, err)
		}
		parsed, err := ParseTopics(content)
		if err != nil {
			return fmt.Errorf("failed to parse topic file %s: %w", p, err)
		}
		topics = append(topics, parsed...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return topics, nil
}

var markdown = goldmark.New()

// ParseTopics reads topics from markdown. Each level 1 heading starts a
// topic and gives its key, the first paragraph after it is the title and
// every list item is a bullet.
func ParseTopics(content []byte) ([]Topic, error) {
	doc := markdown.Parser().Parse(text.NewReader(content))

	var topics []Topic
	var current *Topic
	flush := func() {
		if current != nil {
			topics = append(topics, *current)
		}
	}

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level != 1 {
				return ast.WalkSkipChildren, nil
			}
			flush()
			current = &Topic{Key: strings.ToLower(nodeText(node, content))}
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			if current != nil && current.Title == "" && node.Parent() == doc {
				current.Title = nodeText(node, content)
			}
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if current == nil {
				return ast.WalkSkipChildren, nil
			}
			if item := nodeText(node, content); item != "" {
				current.Bullets = append(current.Bullets, item)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	flush()

	for _, t := range topics {
		if t.Key == "" {
			return nil, fmt.Errorf("topic with empty heading")
		}
	}
	return topics, nil
}

// nodeText concatenates the text segments below n.
func nodeText(n ast.Node, content []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
			if v.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
