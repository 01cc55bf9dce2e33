package translator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/958877748/Filtration/internal/domain/filter"
	filtrationerrors "github.com/958877748/Filtration/pkg/errors"
)

const byteOrderMark = "\uFEFF"

var (
	// ErrNoBlock is wrapped by ParseBlock when the text holds no block.
	ErrNoBlock = errors.New("text does not contain a block")
	// ErrMultipleBlocks is wrapped by ParseBlock when the text holds more
	// than one block.
	ErrMultipleBlocks = errors.New("text contains more than one block")
)

type line struct {
	number int
	text   string
}

type parsedBlock struct {
	block filter.Block
	line  int
}

// ParseBlock parses text holding exactly one block. Any failure returns a
// *errors.ParseError and a nil block.
func ParseBlock(text string) (filter.Block, error) {
	p := &parser{script: filter.NewScript()}

	var found []parsedBlock
	for _, chunk := range splitChunks(splitLines(text)) {
		blocks, err := p.parseChunk(chunk)
		if err != nil {
			return nil, err
		}
		found = append(found, blocks...)
		if len(found) > 1 {
			return nil, filtrationerrors.NewParseError("", found[1].line, ErrMultipleBlocks)
		}
	}

	if len(found) == 0 {
		return nil, filtrationerrors.NewParseError("", 0, ErrNoBlock)
	}
	return found[0].block, nil
}

// ParseScript parses a whole filter file. A leading comment paragraph that
// is not a section becomes the script description. Groups are created in
// the new script and theme component names are registered with the color
// they are first seen with.
func ParseScript(text string) (*filter.Script, error) {
	script := filter.NewScript()
	p := &parser{script: script}

	for i, chunk := range splitChunks(splitLines(text)) {
		if i == 0 && commentOnly(chunk) {
			if _, ok := sectionDescription(chunk[0].text); !ok {
				script.Description = joinComments(chunk)
				continue
			}
		}

		blocks, err := p.parseChunk(chunk)
		if err != nil {
			return nil, err
		}
		for _, parsed := range blocks {
			script.Blocks = append(script.Blocks, parsed.block)
			script.RegisterThemeComponents(parsed.block)
		}
	}

	return script, nil
}

type parser struct {
	script *filter.Script
}

// parseChunk parses one paragraph of non-blank lines. A paragraph may hold
// several rule blocks when the file omits the separating blank line.
// Comment-only paragraphs yield a section or nothing.
func (p *parser) parseChunk(chunk []line) ([]parsedBlock, error) {
	if commentOnly(chunk) {
		first, ok := sectionDescription(chunk[0].text)
		if !ok {
			return nil, nil
		}
		description := first
		if len(chunk) > 1 {
			description += "\n" + joinComments(chunk[1:])
		}
		return []parsedBlock{{block: filter.NewSectionBlock(description), line: chunk[0].number}}, nil
	}

	var (
		blocks      []parsedBlock
		current     *filter.RuleBlock
		pending     []string
		pendingLine int
	)

	for _, l := range chunk {
		if comment, ok := commentText(l.text); ok {
			if len(pending) == 0 {
				pendingLine = l.number
			}
			pending = append(pending, comment)
			continue
		}

		keyword, rest := splitKeyword(strings.TrimSpace(l.text))
		if action, ok := filter.ParseAction(keyword); ok {
			group, err := p.parseGroup(rest, l.number)
			if err != nil {
				return nil, err
			}
			start := l.number
			if len(pending) > 0 {
				start = pendingLine
			}
			current = &filter.RuleBlock{
				Action:      action,
				Description: strings.Join(pending, "\n"),
				Group:       group,
			}
			blocks = append(blocks, parsedBlock{block: current, line: start})
			pending = nil
			continue
		}

		if current == nil {
			return nil, newParseError(l.number, "%s must follow a Show or Hide line", keyword)
		}

		// comments inside a block body are not kept
		pending = nil

		item, err := parseItem(keyword, rest, l.number)
		if err != nil {
			return nil, err
		}
		if err := current.AddItem(item); err != nil {
			return nil, filtrationerrors.NewParseError("", l.number, err)
		}
	}

	return blocks, nil
}

func (p *parser) parseGroup(rest string, number int) (*filter.BlockGroup, error) {
	if rest == "" {
		return p.script.RootGroup(), nil
	}
	if !strings.HasPrefix(rest, "#") {
		return nil, newParseError(number, "unexpected %q after action", rest)
	}
	return p.script.EnsureGroup(filter.SplitGroupPath(rest[1:])...), nil
}

func parseItem(keyword, rest string, number int) (filter.Item, error) {
	kind, ok := filter.ColorKindForKeyword(keyword)
	if !ok {
		return filter.NewDirective(keyword, rest), nil
	}

	values, component := rest, ""
	if idx := strings.Index(rest, "#"); idx >= 0 {
		values = rest[:idx]
		component = strings.TrimSpace(rest[idx+1:])
	}

	fields := strings.Fields(values)
	if len(fields) != 3 && len(fields) != 4 {
		return nil, newParseError(number, "%s expects 3 or 4 color values, got %d", kind.Keyword(), len(fields))
	}

	channels := [4]uint8{255, 255, 255, 255}
	for i, field := range fields {
		n, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			return nil, newParseError(number, "%s: invalid color value %q", kind.Keyword(), field)
		}
		channels[i] = uint8(n)
	}

	item := filter.NewColorItem(kind, filter.RGBA(channels[0], channels[1], channels[2], channels[3]))
	item.ThemeComponent = component
	return item, nil
}

func splitLines(text string) []line {
	text = strings.TrimPrefix(text, byteOrderMark)
	raw := strings.Split(text, "\n")
	lines := make([]line, len(raw))
	for i, r := range raw {
		lines[i] = line{number: i + 1, text: strings.TrimSuffix(r, "\r")}
	}
	return lines
}

func splitChunks(lines []line) [][]line {
	var (
		chunks  [][]line
		current []line
	)
	for _, l := range lines {
		if strings.TrimSpace(l.text) == "" {
			if len(current) > 0 {
				chunks = append(chunks, current)
				current = nil
			}
			continue
		}
		current = append(current, l)
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

func commentOnly(chunk []line) bool {
	for _, l := range chunk {
		if _, ok := commentText(l.text); !ok {
			return false
		}
	}
	return true
}

// commentText strips the '#' and one following space from a comment line.
func commentText(text string) (string, bool) {
	trimmed := strings.TrimLeft(text, " \t")
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	return strings.TrimPrefix(trimmed[1:], " "), true
}

func joinComments(chunk []line) string {
	comments := make([]string, 0, len(chunk))
	for _, l := range chunk {
		comment, _ := commentText(l.text)
		comments = append(comments, comment)
	}
	return strings.Join(comments, "\n")
}

// sectionDescription reports whether text opens a section and returns the
// rest of the line after the marker and one separating space.
func sectionDescription(text string) (string, bool) {
	comment, ok := commentText(text)
	if !ok {
		return "", false
	}
	comment = strings.TrimLeft(comment, " \t")
	if len(comment) < len(sectionMarker) || !strings.EqualFold(comment[:len(sectionMarker)], sectionMarker) {
		return "", false
	}
	return strings.TrimPrefix(comment[len(sectionMarker):], " "), true
}

func splitKeyword(text string) (string, string) {
	idx := strings.IndexAny(text, " \t")
	if idx < 0 {
		return text, ""
	}
	return text[:idx], strings.TrimSpace(text[idx+1:])
}

func newParseError(number int, format string, args ...interface{}) error {
	return filtrationerrors.NewParseError("", number, fmt.Errorf(format, args...))
}
