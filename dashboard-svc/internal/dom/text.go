package dom

import (
	"html/template"
	"strings"

	"golang.org/x/net/html"
)

var blockTags = map[string]bool{
	"div": true, "p": true, "li": true, "br": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"span": true, "img": true,
}

// Text extracts readable text from a fragment. Block level tags start a new
// line; images contribute their alt text.
func Text(f Fragment) string {
	return htmlText(template.HTML(f))
}

func htmlText(h template.HTML) string {
	z := html.NewTokenizer(strings.NewReader(string(h)))

	var lines []string
	var cur strings.Builder
	flush := func() {
		if line := strings.Join(strings.Fields(cur.String()), " "); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			flush()
			return strings.Join(lines, "\n")
		case html.TextToken:
			cur.Write(z.Text())
			cur.WriteString(" ")
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if !blockTags[tag] {
				continue
			}
			flush()
			if tag == "img" && hasAttr {
				for {
					key, val, more := z.TagAttr()
					if string(key) == "alt" && len(val) > 0 {
						lines = append(lines, "["+string(val)+"]")
					}
					if !more {
						break
					}
				}
			}
		}
	}
}
