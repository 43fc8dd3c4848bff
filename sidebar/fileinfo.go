// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sidebar

import (
	"html"
	"strings"

	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/store"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	strip "github.com/grokify/html-strip-tags-go"
)

// FileInfo is the content of the file information section.
type FileInfo struct {
	Name        string
	Description string

	// HTML is the description rendered from markdown.
	HTML string

	// Summary is the plain text of the rendered description.
	Summary string
}

// FileInfoController renders the name and description of the document.
type FileInfoController struct {
	section
}

// NewFileInfo returns a new file information controller
// subscribed to the given store.
func NewFileInfo(st *store.Store, view View) *FileInfoController {
	fc := &FileInfoController{}
	fc.init(st, view, FileInfoSection, fc.Render)
	return fc
}

// Render renders the file information of the given document.
func (fc *FileInfoController) Render(doc *arch.Document) {
	fc.view.Render(fc.kind, NewFileInfoContent(doc.Info))
}

// NewFileInfoContent returns the file information for the given info.
func NewFileInfoContent(info arch.Info) *FileInfo {
	h := RenderMarkdown(info.Description)
	return &FileInfo{Name: info.Name, Description: info.Description, HTML: h, Summary: PlainText(h)}
}

// RenderMarkdown renders the given markdown to HTML.
func RenderMarkdown(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	return string(markdown.ToHTML([]byte(md), p, nil))
}

// PlainText returns the text of the given HTML, without tags
// and with runs of white space collapsed.
func PlainText(h string) string {
	return strings.Join(strings.Fields(html.UnescapeString(strip.StripTags(h))), " ")
}

// SetName sets the name of the document.
func (fc *FileInfoController) SetName(name string) {
	fc.edit(func(doc *arch.Document) bool {
		doc.Info.Name = name
		return true
	})
}

// SetDescription sets the markdown description of the document.
func (fc *FileInfoController) SetDescription(desc string) {
	fc.edit(func(doc *arch.Document) bool {
		doc.Info.Description = desc
		return true
	})
}
