// Package edit refines the topics of a library for the length of a session.
// Changes are kept in memory only.
package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/revelaction/wordspan/topic"
)

// Marker starts an edit line in the query REPL.
const Marker = "!"

// Action tells whether an expression is added to or removed from a topic.
type Action int

const (
	Add Action = iota
	Delete
)

func (a Action) String() string {
	if a == Delete {
		return "removed from"
	}
	return "added to"
}

// Edit is a parsed edit line.
type Edit struct {
	Topic  string
	Expr   topic.TopicExpr
	Action Action
}

// IsEdit reports whether the input line is an edit line.
func IsEdit(in string) bool {
	return strings.HasPrefix(strings.TrimSpace(in), Marker)
}

// Parse reads an edit line: the marker, a topic name and an expression. A
// trailing slash on the last token removes the expression instead of adding
// it.
func Parse(in string) (Edit, error) {
	in = strings.TrimPrefix(strings.TrimSpace(in), Marker)
	tokens := strings.Fields(in)

	e := Edit{Action: Add}
	if len(tokens) == 0 {
		return e, errors.New("no topic given to refine")
	}

	last := tokens[len(tokens)-1]
	if strings.HasSuffix(last, "/") {
		e.Action = Delete
		tokens[len(tokens)-1] = strings.TrimSuffix(last, "/")
		if tokens[len(tokens)-1] == "" {
			tokens = tokens[:len(tokens)-1]
		}
	}

	e.Topic = tokens[0]
	if len(tokens) == 1 {
		return e, errors.New("no expression given")
	}

	expr, err := topic.Parse(tokens[1:])
	if err != nil {
		return e, err
	}

	e.Expr = expr
	return e, nil
}

// Apply returns a copy of the library with the edit applied. A topic that
// does not exist is created when adding.
func Apply(l topic.Library, e Edit) (topic.Library, error) {
	idx := -1
	for i, tp := range l {
		if tp.Name == e.Topic {
			idx = i
			break
		}
	}

	out := make(topic.Library, len(l))
	copy(out, l)

	if idx == -1 {
		if e.Action == Delete {
			return l, fmt.Errorf("there is no such topic: %s", e.Topic)
		}
		return append(out, topic.Assemble(e.Topic, []topic.TopicExpr{e.Expr})), nil
	}

	tp := l[idx]
	exists := exprExistInTopic(tp, e.Expr)

	switch e.Action {
	case Add:
		if exists {
			return l, errors.New("expression already exists")
		}
		exprs := append(cloneExprs(tp.Exprs), e.Expr)
		out[idx] = topic.Assemble(tp.Name, exprs)
	case Delete:
		if !exists {
			return l, errors.New("expression does not exist")
		}
		out[idx] = removeExprFromTopic(tp, e.Expr)
	}

	return out, nil
}

func exprExistInTopic(tp topic.Topic, expr topic.TopicExpr) bool {
	for _, e := range tp.Exprs {
		if topic.EqualExpr(e, expr) {
			return true
		}
	}

	return false
}

func removeExprFromTopic(tp topic.Topic, expr topic.TopicExpr) topic.Topic {
	exprs := make([]topic.TopicExpr, 0, len(tp.Exprs))

	for _, e := range cloneExprs(tp.Exprs) {
		if topic.EqualExpr(e, expr) {
			continue
		}
		exprs = append(exprs, e)
	}

	return topic.Assemble(tp.Name, exprs)
}

// Assemble rewrites the items in place, so the library passed to Apply must
// not share them with the result.
func cloneExprs(exprs []topic.TopicExpr) []topic.TopicExpr {
	out := make([]topic.TopicExpr, len(exprs))
	for i, e := range exprs {
		out[i] = append(topic.TopicExpr(nil), e...)
	}
	return out
}
