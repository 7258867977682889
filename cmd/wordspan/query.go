package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/wordspan/query"
	"github.com/revelaction/wordspan/render"
	"github.com/revelaction/wordspan/topic"
)

func queryCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "query the phrases of the text interactively with topics and expressions",
		ArgsUsage: "<file>",
		Flags:     renderFlags()[:3],
		Action: func(c *cli.Context) error {
			path, err := fileArg(c)
			if err != nil {
				return err
			}

			// topics are optional in the REPL
			var lib topic.Library
			if c.String(flagTopicPath) != "" {
				lib, err = topicLibrary(c)
				if err != nil {
					return err
				}
			}

			p, err := newPipeline(c, ui)
			if err != nil {
				return err
			}

			doc, err := loadDoc(c, ui, p, path, 0)
			if err != nil {
				return err
			}

			s, release, err := newSearch(c.Context, doc)
			if err != nil {
				return err
			}
			defer release()

			r := newRenderer(c, ui)
			r.PrefixTopicFunc = render.PrefixFuncEmpty
			r.AddDocName(doc.Id, doc.Name)

			// now present the REPL and prepare for topic in the REPL
			return query.NewHandler(s, lib, r, ui.Out).Run(c.Context)
		},
	}
}
