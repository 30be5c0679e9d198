// Package markdown turns model replies into terminal output and pulls the
// fenced code blocks out of them for the clipboard.
package markdown

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const defaultWrap = 80

// Renderer renders markdown with glamour. The underlying term renderer is
// built on first use; if it cannot be built the text is returned as is.
type Renderer struct {
	width int

	once sync.Once
	term *glamour.TermRenderer
}

// NewRenderer returns a renderer that word-wraps at width columns.
func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = defaultWrap
	}
	return &Renderer{width: width}
}

// Render returns text formatted for the terminal.
func (r *Renderer) Render(text string) string {
	r.once.Do(func() {
		term, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(r.width),
		)
		if err != nil {
			slog.Warn("markdown_renderer_init_failed", "error", err)
			return
		}
		r.term = term
	})
	if r.term == nil {
		return text
	}

	out, err := r.term.Render(text)
	if err != nil {
		slog.Debug("markdown_render_failed", "error", err)
		return text
	}
	return strings.TrimRight(out, "\n")
}

// CodeBlock is a fenced code block found in a reply. Code is the fence body
// exactly as written, including its final newline.
type CodeBlock struct {
	Language string
	Code     string
}

// Preview returns the code without trailing blank lines, for display.
func (b CodeBlock) Preview() string {
	return strings.TrimRight(b.Code, "\n")
}

// Label is a short single-line description used in menus.
func (b CodeBlock) Label() string {
	first := strings.TrimSpace(b.Code)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = strings.TrimSpace(first[:i])
	}
	lang := b.Language
	if lang == "" {
		lang = "text"
	}
	if first == "" {
		return "[" + lang + "]"
	}
	return "[" + lang + "] " + first
}

// CodeBlocks returns the fenced code blocks of source in document order.
// Indented code blocks are ignored.
func CodeBlocks(source string) []CodeBlock {
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var blocks []CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var code strings.Builder
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			code.Write(segment.Value(src))
		}
		blocks = append(blocks, CodeBlock{
			Language: string(fenced.Language(src)),
			Code:     code.String(),
		})
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// Highlight returns code with terminal syntax colouring. The lexer is chosen
// by language, then by content; on any failure the code is returned plain.
func Highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
