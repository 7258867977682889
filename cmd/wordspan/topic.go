package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/wordspan/render"
)

// topicCommand prints the expressions of a topic, or the topic names
func topicCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "topic",
		Usage:     "list the topics of the topic path, or print the expressions of one",
		ArgsUsage: "[name]",
		Action: func(c *cli.Context) error {
			store, err := topicStore(c)
			if err != nil {
				return err
			}

			// No name provided (list all)
			if c.NArg() == 0 {
				names, err := store.Names()
				if err != nil {
					return err
				}

				for topicId, name := range names {
					fmt.Fprintf(ui.Out, "📖 %d %s\n", topicId, name)
				}

				return nil
			}

			tp, err := store.Read(c.Args().First())
			if err != nil {
				return err
			}

			render.NewRenderer(ui.Out).Topic(tp.Exprs)
			return nil
		},
	}
}
