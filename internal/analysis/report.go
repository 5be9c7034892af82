package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

var sectionHeader = regexp.MustCompile(`SECTION ([A-E]) — (.*)`)

type Section struct {
	Letter string
	Title  string
	Body   string
}

// SplitSections splits a report at each "SECTION X — " header. A reply with fewer than
// five sections is returned whole as one untitled section.
func SplitSections(text string) []Section {
	locs := sectionHeader.FindAllStringIndex(text, -1)
	if len(locs) < 5 {
		return []Section{{Body: strings.TrimSpace(text)}}
	}

	sections := make([]Section, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		raw := text[loc[0]:end]
		header, body, _ := strings.Cut(raw, "\n")
		m := sectionHeader.FindStringSubmatch(header)
		sections = append(sections, Section{
			Letter: m[1],
			Title:  strings.TrimSpace(m[2]),
			Body:   strings.TrimSpace(body),
		})
	}
	return sections
}

// Markdown lays the sections out as a markdown document.
func Markdown(sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		if s.Letter != "" {
			fmt.Fprintf(&b, "## %s — %s\n\n", s.Letter, s.Title)
		}
		b.WriteString(s.Body)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Render formats a report for the terminal at the given width.
func Render(text string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(Markdown(SplitSections(text)))
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}
