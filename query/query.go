package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/wordspan/edit"
	"github.com/revelaction/wordspan/match"
	"github.com/revelaction/wordspan/render"
	"github.com/revelaction/wordspan/search"
	"github.com/revelaction/wordspan/topic"
)

const (
	// maximum number of rendered results per query
	resultLimit = 2000

	quit = "quit"
)

type Handler struct {
	Search       *search.Search
	TopicLibrary topic.Library
	Renderer     *render.Renderer
	Out          io.Writer
}

func NewHandler(s *search.Search, tl topic.Library, r *render.Renderer, out io.Writer) *Handler {
	return &Handler{
		Search:       s,
		TopicLibrary: tl,
		Renderer:     r,
		Out:          out,
	}
}

func (h *Handler) Run(ctx context.Context) error {

	fmt.Fprintln(h.Out, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, ✏️  !topic expr[/], 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		in := prompt.Input("      🔖 ", h.completer(h.TopicLibrary.Names()),
			prompt.OptionTitle("wordspan query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Out, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.Out, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		if strings.TrimSpace(in) == quit {
			return nil
		}

		history = append(history, in)

		if edit.IsEdit(in) {
			if err := h.Edit(in); err != nil {
				fmt.Fprintf(h.Out, "❌ %s\n", err)
			}
			continue
		}

		if err := h.Query(ctx, in); err != nil {
			fmt.Fprintf(h.Out, "%s%v%s\n", render.Red, err, render.Off)
		}
	}
}

// Query runs one line of input: an optional topic name followed by an
// optional expression. The results are sorted and rendered.
func (h *Handler) Query(ctx context.Context, in string) error {
	tp, expr, err := h.parse(in)
	if err != nil {
		return err
	}

	s := h.Search.WithTopic(tp)

	var results []*match.PhraseMatch
	collect := func(pm *match.PhraseMatch) error {
		if len(results) >= resultLimit {
			return errLimit
		}
		results = append(results, pm)
		return nil
	}

	if len(expr) == 0 {
		err = s.Topic(ctx, collect)
	} else {
		err = s.All(ctx, expr, collect)
	}

	if err != nil && !errors.Is(err, errLimit) {
		return err
	}

	match.Sort(results)
	h.Renderer.Render(results)
	return nil
}

var errLimit = errors.New("result limit reached")

// Edit adds an expression to a topic of the session library, or removes it
// when the line ends with a slash.
func (h *Handler) Edit(in string) error {
	e, err := edit.Parse(in)
	if err != nil {
		return err
	}

	lib, err := edit.Apply(h.TopicLibrary, e)
	if err != nil {
		return err
	}

	h.TopicLibrary = lib
	fmt.Fprintf(h.Out, "✏️  %s %s %s\n", e.Expr, e.Action, e.Topic)
	return nil
}

func (h *Handler) completer(topicNames []string) func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		if befCursor == "" {
			return s
		}

		tokens := strings.Split(befCursor, " ")
		firstToken := tokens[0]

		if len(tokens) == 1 {
			s = append(s, h.completeTopic(firstToken)...)
			s = append(s, h.completeExpressionItem(firstToken)...)
			return s
		}

		isFirstTopic := false
		for _, name := range topicNames {
			if name == firstToken {
				isFirstTopic = true
				break
			}
		}

		// len = 2 and first is topic
		if len(tokens) == 2 {
			if isFirstTopic {
				s = append(s, h.completeExpressionItem(tokens[1])...)
			}

			return s
		}

		// len > 2, complete as expr string
		rest := befCursor
		if isFirstTopic {
			rest = befCursor[len(firstToken)+1:]
		}

		for _, tp := range h.TopicLibrary {
			for _, expr := range tp.Exprs {
				exprStr := expr.String()
				if len(rest) > len(exprStr) || !strings.HasPrefix(exprStr, rest) {
					continue
				}

				start := len(rest) - len(in.GetWordBeforeCursor())
				s = append(s, prompt.Suggest{Text: exprStr[start:], Description: tp.Name})
			}
		}

		return s
	}
}

func (h *Handler) completeTopic(token string) (s []prompt.Suggest) {
	for _, tp := range h.TopicLibrary {
		if strings.HasPrefix(tp.Name, token) {
			s = append(s, prompt.Suggest{Text: tp.Name, Description: "🔖 " + tp.Name})
		}
	}

	return s
}

func (h *Handler) completeExpressionItem(token string) (s []prompt.Suggest) {
	for _, tp := range h.TopicLibrary {
		for _, expr := range tp.Exprs {
			for _, item := range expr {
				if itemHasPrefix(item, token) {
					s = append(s, prompt.Suggest{Text: expr.String(), Description: tp.Name})
					break
				}
			}
		}
	}

	return s
}

func itemHasPrefix(item topic.TopicExprItem, token string) bool {
	for _, l := range item.Lemmas {
		if strings.HasPrefix(l, token) {
			return true
		}
	}

	return item.Tag != "" && strings.HasPrefix(item.Tag, token)
}

func (h *Handler) parse(in string) (topic.Topic, topic.TopicExpr, error) {

	tp := topic.Topic{}

	tokens := strings.Fields(in)
	if len(tokens) == 0 {
		return tp, nil, errors.New("no topic and no expression given")
	}

	isFirstTopic := false
	for _, t := range h.TopicLibrary {
		if t.Name == tokens[0] {
			isFirstTopic = true
			tp = t
			break
		}
	}

	args := tokens
	if isFirstTopic {
		args = tokens[1:]
	}

	if len(args) == 0 {
		return tp, nil, nil
	}

	expr, err := topic.Parse(args)
	if err != nil {
		return tp, nil, err
	}

	return tp, expr, nil
}
