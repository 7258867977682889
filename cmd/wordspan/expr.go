package main

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/wordspan/match"
	"github.com/revelaction/wordspan/render"
	"github.com/revelaction/wordspan/topic"
)

func exprCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "expr",
		Usage:     "print the phrases of the text matching the expression",
		ArgsUsage: "<file|-> <expr>...",
		Description: `The expression is a list of items. Numbers set the maximum distance,
in words, of the next item to the previous one.

   wordspan expr doc.txt NNP* 2 be
   wordspan expr doc.txt VB*:see|look
   wordspan expr doc.txt when 4 VB*`,
		Flags: renderFlags(),
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return errors.New("usage: expr <file|-> <expr>...")
			}

			// parse the expr expression before the costly annotation
			expr, err := topic.Parse(c.Args().Slice()[1:])
			if err != nil {
				return err
			}

			p, err := newPipeline(c, ui)
			if err != nil {
				return err
			}

			doc, err := loadDoc(c, ui, p, c.Args().First(), 0)
			if err != nil {
				return err
			}

			s, release, err := newSearch(c.Context, doc)
			if err != nil {
				return err
			}
			defer release()

			var results []*match.PhraseMatch
			err = s.All(c.Context, expr, func(pm *match.PhraseMatch) error {
				results = append(results, pm)
				return nil
			})
			if err != nil {
				return err
			}

			match.Sort(results)

			r := newRenderer(c, ui)
			r.PrefixTopicFunc = render.PrefixFuncEmpty
			r.AddDocName(doc.Id, doc.Name)
			resultRenderer(c, ui, r).Render(results)
			return nil
		},
	}
}
