package corpus

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrMalformedTags is returned when a tag cell is not a literal string list.
var ErrMalformedTags = errors.New("malformed tag list")

// ParseTags parses a bracketed list of quoted string literals such as
// ['diabetes', "dieta"]. Only string literals separated by commas are
// accepted, with an optional trailing comma. Escapes: \\ \' \" \n \t.
func ParseTags(s string) ([]string, error) {
	p := tagParser{src: s}
	return p.parse()
}

// Tags reads a tag cell leniently: bracketed cells go through ParseTags,
// a bare non-empty cell is a single tag.
func Tags(cell string) ([]string, error) {
	trimmed := strings.TrimSpace(cell)
	switch {
	case trimmed == "":
		return nil, nil
	case strings.HasPrefix(trimmed, "["):
		return ParseTags(trimmed)
	default:
		return []string{trimmed}, nil
	}
}

type tagParser struct {
	src string
	pos int
}

func (p *tagParser) parse() ([]string, error) {
	p.skipSpace()
	if !p.consume('[') {
		return nil, p.errorf("expected '['")
	}

	tags := []string{}
	for {
		p.skipSpace()
		if p.consume(']') {
			break
		}
		tag, err := p.str()
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			break
		}
		return nil, p.errorf("expected ',' or ']'")
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected trailing input")
	}
	return tags, nil
}

func (p *tagParser) str() (string, error) {
	if p.pos >= len(p.src) {
		return "", p.errorf("expected string literal")
	}
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", p.errorf("expected string literal")
	}
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\':
			if p.pos+1 >= len(p.src) {
				return "", p.errorf("unterminated escape")
			}
			switch e := p.src[p.pos+1]; e {
			case '\\', '\'', '"':
				b.WriteByte(e)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return "", p.errorf("unknown escape \\%c", e)
			}
			p.pos += 2
		case c == '\n':
			return "", p.errorf("newline in string literal")
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf("unterminated string literal")
}

func (p *tagParser) skipSpace() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *tagParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *tagParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrMalformedTags, p.pos, fmt.Sprintf(format, args...))
}
