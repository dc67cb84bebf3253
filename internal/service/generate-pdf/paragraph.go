package generate_pdf

import (
	"strings"

	"golang.org/x/net/html"
)

// run is a span of text sharing one font style.
type run struct {
	text string
	bold bool
}

// paragraph is a small rich-text unit. Markup supports <b>/<strong> and <br>;
// everything else is text and must arrive escaped.
type paragraph struct {
	runs []run
}

// Text escapes s so it renders verbatim.
func Text(s string) string {
	return html.EscapeString(s)
}

// Bold escapes s and marks it bold.
func Bold(s string) string {
	return "<b>" + html.EscapeString(s) + "</b>"
}

func parseParagraph(markup string) paragraph {
	var (
		p    paragraph
		bold int
	)

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return p
		case html.TextToken:
			p.runs = append(p.runs, run{text: string(z.Text()), bold: bold > 0})
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "b", "strong":
				bold++
			case "br":
				p.runs = append(p.runs, run{text: "\n", bold: bold > 0})
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if (string(name) == "b" || string(name) == "strong") && bold > 0 {
				bold--
			}
		case html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				p.runs = append(p.runs, run{text: "\n", bold: bold > 0})
			}
		}
	}
}

// plain drops the styling.
func (p paragraph) plain() string {
	var b strings.Builder
	for _, r := range p.runs {
		b.WriteString(r.text)
	}
	return b.String()
}

func (p paragraph) bold() bool {
	for _, r := range p.runs {
		if r.bold && strings.TrimSpace(r.text) != "" {
			return true
		}
	}
	return false
}
