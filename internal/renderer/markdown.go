package renderer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rs/zerolog"

	"github.com/mmarkdown/mmark/v2/lang"
	"github.com/mmarkdown/mmark/v2/mast"
	"github.com/mmarkdown/mmark/v2/mparser"
	"github.com/mmarkdown/mmark/v2/render/mhtml"

	"github.com/inkdraft/inkdraft/internal/cache"
	"github.com/inkdraft/inkdraft/internal/util"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

const (
	VariantClassic = "classic"
	VariantMmark   = "mmark"
)

// Markdown is the production gateway, backed by the gomarkdown pipeline with
// chroma code highlighting. Renders are cached by content hash; the cache is
// transparent since rendering is pure.
type Markdown struct {
	variant     string
	syntaxTheme string

	// protects the check-render-set sequence on cache miss
	mu sync.Mutex
}

func NewMarkdown(variant, syntaxTheme string) *Markdown {
	if variant != VariantMmark {
		variant = VariantClassic
	}
	return &Markdown{variant: variant, syntaxTheme: syntaxTheme}
}

func (m *Markdown) Render(text string) string {
	contentHash := util.ContentHashString(text)
	variantKey := m.variant + ":" + m.syntaxTheme

	if cached, found := cache.GetRenderedMarkdown(contentHash, variantKey); found {
		return cached
	}

	renderLogger.Debug().Str("contentHash", contentHash).Str("variant", variantKey).Msg("Cache miss for rendered markdown")
	m.mu.Lock()
	defer m.mu.Unlock()

	html := m.render([]byte(text))
	cache.SetRenderedMarkdown(contentHash, variantKey, html)
	return html
}

func (m *Markdown) render(md []byte) string {
	switch m.variant {
	case VariantMmark:
		return string(renderMmark(md, m.syntaxTheme))
	default:
		return string(renderClassic(md, m.syntaxTheme))
	}
}

func highlightCode(code, language, highlightTheme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	style := styles.Get(highlightTheme)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(false),
		chromahtml.PreventSurroundingPre(true),
	)

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

func codeBlockHook(highlightTheme string) func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	return func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
		if code, ok := node.(*ast.CodeBlock); ok && entering {
			var lang string
			if info := code.Info; info != nil {
				lang = string(info)
			}
			highlighted := highlightCode(string(code.Literal), lang, highlightTheme)
			fmt.Fprintf(w, "<pre class=\"highlight\">%s</pre>", highlighted)
			return ast.GoToNext, true
		}
		return ast.GoToNext, false
	}
}

func renderClassic(md []byte, highlightTheme string) []byte {
	opts := md_html.RendererOptions{
		Flags:          md_html.CommonFlags | md_html.HrefTargetBlank | md_html.FootnoteReturnLinks,
		RenderNodeHook: codeBlockHook(highlightTheme),
	}

	doc := parser.NewWithExtensions(
		parser.Tables | parser.FencedCode | parser.Autolink | parser.Strikethrough | parser.SpaceHeadings |
			parser.HeadingIDs | parser.BackslashLineBreak | parser.DefinitionLists |
			parser.AutoHeadingIDs | parser.Footnotes | parser.OrderedListStart,
	).Parse(md)

	return markdown.Render(doc, md_html.NewRenderer(opts))
}

func renderMmark(md []byte, highlightTheme string) []byte {
	md = markdown.NormalizeNewlines(md)

	mparser.Extensions |= parser.NoIntraEmphasis

	p := parser.NewWithExtensions(mparser.Extensions)

	init := mparser.NewInitial("")
	var info *mast.TitleData
	p.Opts = parser.Options{
		ParserHook: func(data []byte) (ast.Node, []byte, int) {
			node, data, consumed := mparser.Hook(data)
			if t, ok := node.(*mast.Title); ok {
				info = t.TitleData
			}
			return node, data, consumed
		},
		ReadIncludeFn: init.ReadInclude,
		Flags:         parser.FlagsNone,
	}

	doc := markdown.Parse(md, p)

	if info == nil {
		info = &mast.TitleData{
			Title:    "Untitled",
			Language: "en",
		}
	}

	mhtmlOpts := mhtml.RendererOptions{
		Language: lang.New(info.Language),
	}

	codeHook := codeBlockHook(highlightTheme)
	opts := md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.FootnoteNoHRTag | md_html.FootnoteReturnLinks,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if status, handled := codeHook(w, node, entering); handled {
				return status, handled
			}
			return mhtmlOpts.RenderHook(w, node, entering)
		},
	}

	return markdown.Render(doc, md_html.NewRenderer(opts))
}
