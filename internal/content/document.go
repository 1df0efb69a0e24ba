package content

import (
	"fmt"
	"strings"
)

// Block is one file's contribution to the exported prompt.
type Block struct {
	RelativePath string
	Language     string
	Text         string
}

// Render writes a block as
//
//	File: <path>
//
//	```<language>
//	<text>
//	```
//
// followed by a blank separator line.
func (b Block) Render(sb *strings.Builder) {
	fmt.Fprintf(sb, "File: %s\n\n```%s\n%s\n```\n\n", b.RelativePath, b.Language, b.Text)
}

// RenderDocument concatenates blocks in order.
func RenderDocument(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		b.Render(&sb)
	}
	return sb.String()
}
