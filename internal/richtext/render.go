package richtext

import (
	"html"
	"strings"
)

var styleTags = map[string]string{
	"normal":     "p",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"blockquote": "blockquote",
}

// RenderHTML converts a document to HTML for the server-rendered reader
// pages. Text is escaped; html blocks are emitted as-is because they come
// from trusted legacy documents, not user input.
func RenderHTML(doc Document) string {
	var b strings.Builder
	for _, blk := range doc {
		switch blk.Type {
		case BlockText:
			tag := styleTags[blk.Style]
			if tag == "" {
				tag = "p"
			}
			b.WriteString("<" + tag + ">")
			for _, s := range blk.Spans {
				writeSpan(&b, s)
			}
			b.WriteString("</" + tag + ">")
		case BlockImage:
			b.WriteString(`<figure><img src="` + html.EscapeString(blk.URL) + `" alt="` + html.EscapeString(blk.Alt) + `"></figure>`)
		case BlockHTML:
			b.WriteString(blk.HTML)
		}
	}
	return b.String()
}

func writeSpan(b *strings.Builder, s Span) {
	open, closing := markTags(s.Marks)
	b.WriteString(open)
	b.WriteString(html.EscapeString(s.Text))
	b.WriteString(closing)
}

func markTags(marks []string) (string, string) {
	var open, closing string
	for _, m := range marks {
		switch m {
		case "strong":
			open += "<strong>"
			closing = "</strong>" + closing
		case "em":
			open += "<em>"
			closing = "</em>" + closing
		case PlaceholderMark:
			open += `<span class="upload-placeholder">`
			closing = "</span>" + closing
		}
	}
	return open, closing
}
