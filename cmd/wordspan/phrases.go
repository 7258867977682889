package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/wordspan/file"
	"github.com/revelaction/wordspan/render"
)

func phrasesCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "phrases",
		Usage:     "print the phrases of the text, one word per line",
		ArgsUsage: "<file|->",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagRaw,
				Usage: "do not merge adjacent proper nouns",
			},
			&cli.BoolFlag{
				Name:  flagJSON,
				Usage: "print the phrases as JSON",
			},
			&cli.BoolFlag{
				Name:  flagNoPrefix,
				Usage: "do not prefix the phrases with their id and bounds",
			},
		},
		Action: func(c *cli.Context) error {
			path, err := fileArg(c)
			if err != nil {
				return err
			}

			p, err := newPipeline(c, ui)
			if err != nil {
				return err
			}

			text, err := file.ReadText(path, ui.In)
			if err != nil {
				return err
			}

			phrases, err := p.Aligned(c.Context, text)
			if err != nil {
				return err
			}

			if !c.Bool(flagRaw) {
				for i, ph := range phrases {
					phrases[i] = ph.Compress()
				}
			}

			if c.Bool(flagJSON) {
				return render.NewJSONRenderer(ui.Out).Phrases(phrases)
			}

			r := newRenderer(c, ui)
			for i, ph := range phrases {
				r.Words(ph, i)
			}

			verbosef(c, ui, "%s: %d phrases", file.Name(path), len(phrases))
			return nil
		},
	}
}
