package diag

import "strings"

// Flatten joins the head message and its chain with newLine, indenting each
// chain level by two spaces.
func (d *Diagnostic) Flatten(newLine string) string {
	if len(d.Chain) == 0 {
		return d.Message
	}
	var sb strings.Builder
	sb.WriteString(d.Message)
	flattenChain(&sb, d.Chain, newLine, 1)
	return sb.String()
}

func flattenChain(sb *strings.Builder, chain []MessageChain, newLine string, depth int) {
	for _, c := range chain {
		sb.WriteString(newLine)
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(c.Message)
		flattenChain(sb, c.Next, newLine, depth+1)
	}
}
