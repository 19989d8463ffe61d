package inequality

import (
	"html"
	"strings"
)

// RenderHTML renders each node's entries as an HTML fragment keyed by node.
// Every inequality is escaped and followed by `<br><br>`; shared ones are
// wrapped in `<span class="shared">`.
func RenderHTML(c Consolidated) map[string]string {
	out := make(map[string]string, len(c.Nodes))
	for _, node := range c.Nodes {
		var b strings.Builder
		for _, e := range node.Entries {
			text := html.EscapeString(e.String())
			if e.Shared {
				b.WriteString(`<span class="shared">`)
				b.WriteString(text)
				b.WriteString(`</span>`)
			} else {
				b.WriteString(text)
			}
			b.WriteString("<br><br>")
		}
		out[node.Key] = b.String()
	}
	return out
}
