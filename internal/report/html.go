package report

import (
	"bytes"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// writeHTML renders the markdown form as a standalone HTML page.
func (d *Document) writeHTML(w io.Writer) error {
	var md bytes.Buffer
	if err := d.writeMarkdown(&md); err != nil {
		return err
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	title := "statsctl " + d.Command
	if d.Source != "" {
		title += ": " + d.Source
	}
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: title,
	})
	_, err := w.Write(markdown.ToHTML(md.Bytes(), p, r))
	return err
}
