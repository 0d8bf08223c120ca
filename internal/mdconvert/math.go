package mdconvert

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"golang.org/x/net/html"
)

// mathPlugin renders <var> elements as $...$ with their text untouched.
type mathPlugin struct{}

func newMathPlugin() converter.Plugin {
	return &mathPlugin{}
}

func (p *mathPlugin) Name() string {
	return "math"
}

func (p *mathPlugin) Init(conv *converter.Converter) error {
	conv.Register.RendererFor("var", converter.TagTypeInline, p.renderVar, converter.PriorityEarly)
	return nil
}

func (p *mathPlugin) renderVar(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	text := strings.TrimSpace(collectText(n))
	if text == "" {
		return converter.RenderSuccess
	}
	w.WriteString("$")
	w.WriteString(text)
	w.WriteString("$")
	return converter.RenderSuccess
}

func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
