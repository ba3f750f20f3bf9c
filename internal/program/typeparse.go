package program

import (
	"fmt"
	"strings"

	"loom/internal/decl"
)

// ParseTypeAnn parses a snapshot type string like "Map<String, List<int>>?"
// into a decl.TypeAnn. The empty string is the omitted annotation.
func ParseTypeAnn(s string) (decl.TypeAnn, error) {
	if strings.TrimSpace(s) == "" {
		return decl.TypeAnn{}, nil
	}
	p := &annParser{src: s}
	ann, err := p.parse()
	if err != nil {
		return decl.TypeAnn{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return decl.TypeAnn{}, fmt.Errorf("type %q: trailing %q", s, p.src[p.pos:])
	}
	return ann, nil
}

type annParser struct {
	src string
	pos int
}

func (p *annParser) parse() (decl.TypeAnn, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("<>,?", rune(p.src[p.pos])) {
		p.pos++
	}
	name := strings.TrimSpace(p.src[start:p.pos])
	if name == "" {
		return decl.TypeAnn{}, fmt.Errorf("type %q: missing name at offset %d", p.src, start)
	}
	if strings.ContainsAny(name, " \t") {
		return decl.TypeAnn{}, fmt.Errorf("type %q: name %q contains spaces", p.src, name)
	}
	ann := decl.TypeAnn{Name: name}

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '<' {
		p.pos++
		for {
			arg, err := p.parse()
			if err != nil {
				return decl.TypeAnn{}, err
			}
			ann.Args = append(ann.Args, arg)
			p.skipSpace()
			if p.pos >= len(p.src) {
				return decl.TypeAnn{}, fmt.Errorf("type %q: unterminated argument list", p.src)
			}
			if p.src[p.pos] == ',' {
				p.pos++
				continue
			}
			if p.src[p.pos] == '>' {
				p.pos++
				break
			}
			return decl.TypeAnn{}, fmt.Errorf("type %q: unexpected %q at offset %d", p.src, p.src[p.pos], p.pos)
		}
	}

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '?' {
		p.pos++
		ann.Nullable = true
	}
	return ann, nil
}

func (p *annParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}
