package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/wordspan/match"
	"github.com/revelaction/wordspan/render"
)

func topicsCommand(ui UI) *cli.Command {
	flags := append(renderFlags(), &cli.IntFlag{
		Name:    flagPhrase,
		Aliases: []string{"p"},
		Value:   -1,
		Usage:   "match only the phrase with this id",
	})

	return &cli.Command{
		Name:      "topics",
		Usage:     "print the phrases of the text matching each topic of the topic path",
		ArgsUsage: "<file|->",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			path, err := fileArg(c)
			if err != nil {
				return err
			}

			lib, err := topicLibrary(c)
			if err != nil {
				return err
			}

			p, err := newPipeline(c, ui)
			if err != nil {
				return err
			}

			doc, err := loadDoc(c, ui, p, path, 0)
			if err != nil {
				return err
			}

			phraseId := c.Int(flagPhrase)
			if phraseId >= len(doc.Phrases) {
				return fmt.Errorf("phrase %d not found, the text has %d phrases", phraseId, len(doc.Phrases))
			}

			s, release, err := newSearch(c.Context, doc)
			if err != nil {
				return err
			}
			defer release()

			r := newRenderer(c, ui)
			r.AddDocName(doc.Id, doc.Name)
			r.PrefixDocFunc = render.PrefixFuncIconHand

			if phraseId >= 0 && !c.Bool(flagJSON) {
				r.Phrase(doc.Phrases[phraseId], fmt.Sprintf("%2d ✍  ", phraseId))
				fmt.Fprintln(ui.Out)
				s = s.WithDocID(doc.Id)
			}

			var all []*match.PhraseMatch
			for _, tp := range lib {
				var results []*match.PhraseMatch
				err := s.WithTopic(tp).Topic(c.Context, func(pm *match.PhraseMatch) error {
					if phraseId < 0 || pm.PhraseId == phraseId {
						results = append(results, pm)
					}
					return nil
				})
				if err != nil {
					return fmt.Errorf("topic %s: %w", tp.Name, err)
				}

				if len(results) == 0 {
					continue
				}

				match.Sort(results)
				if c.Bool(flagJSON) {
					all = append(all, results...)
					continue
				}

				r.Render(results)
			}

			if c.Bool(flagJSON) {
				render.NewJSONRenderer(ui.Out).Render(all)
			}

			return nil
		},
	}
}
