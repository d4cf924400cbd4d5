// Package render converts the lightweight markdown of replies and reports
// to HTML for clients that cannot render it themselves.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	// replies separate bullet lines with single newlines
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// HTML renders markdown text. Raw HTML in the input is escaped.
func HTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Document wraps rendered markdown in a minimal HTML page, used for emails.
func Document(title, text string) (string, error) {
	body, err := HTML(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
	buf.WriteString(escape(title))
	buf.WriteString("</title></head><body>\n")
	buf.WriteString(body)
	buf.WriteString("</body></html>\n")
	return buf.String(), nil
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
