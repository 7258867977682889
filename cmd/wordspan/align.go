package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/wordspan/file"
	"github.com/revelaction/wordspan/render"
)

func alignCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "align",
		Usage:     "print the sentences of the text with the offsets, chunk and entity of each token as JSON",
		ArgsUsage: "<file|->",
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

			msg, err := p.Message(c.Context, text)
			if err != nil {
				return err
			}

			return render.NewJSONRenderer(ui.Out).Message(msg)
		},
	}
}
