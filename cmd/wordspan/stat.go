package main

import (
	"errors"
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/wordspan/file"
	"github.com/revelaction/wordspan/phrase"
	"github.com/revelaction/wordspan/stat"
)

// number of POS tags printed
const statTopTags = 10

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print phrase, word and POS tag statistics of the texts",
		ArgsUsage: "<file|->...",
		Action: func(c *cli.Context) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return errors.New("missing file argument (use - for stdin)")
			}

			if err := checkTokens(c, len(paths)); err != nil {
				return err
			}

			p, err := newPipeline(c, ui)
			if err != nil {
				return err
			}

			// Start progress indicator
			progress := uiprogress.New()
			progress.SetOut(ui.Err)
			progress.Start()
			bar := progress.AddBar(len(paths))
			bar.AppendCompleted()
			bar.PrependElapsed()
			// Append file name to the progress bar
			bar.AppendFunc(func(b *uiprogress.Bar) string {
				if b.Current() == 0 {
					return ""
				}
				return file.Name(paths[b.Current()-1])
			})

			hdl := stat.NewHandler()
			for _, path := range paths {
				text, err := file.ReadText(path, ui.In)
				if err != nil {
					progress.Stop()
					return err
				}

				raw, err := p.Aligned(c.Context, text)
				if err != nil {
					progress.Stop()
					return fmt.Errorf("%s: %w", file.Name(path), err)
				}

				compressed := make([]*phrase.Phrase, len(raw))
				for i, ph := range raw {
					compressed[i] = ph.Compress()
				}

				hdl.Aggregate(raw, compressed)
				bar.Incr()
			}

			// stop rendering
			progress.Stop()

			printStats(ui, hdl.Get())
			return nil
		},
	}
}

func printStats(ui UI, s stat.Stats) {
	fmt.Fprintf(ui.Out, "Num docs %d, num phrases %d, num words %d, num words per phrase %d\n",
		s.NumDocs, s.NumPhrases, s.NumWords, s.WordsPerPhraseMean)
	fmt.Fprintf(ui.Out, "Num proper nouns %d, compound proper nouns %d, num words after merging %d\n",
		s.NumProperNouns, s.NumCompoundProperNoun, s.NumCompressedWords)

	tags := s.Tags()
	if len(tags) > statTopTags {
		tags = tags[:statTopTags]
	}

	for _, tc := range tags {
		fmt.Fprintf(ui.Out, "%8s %6d\n", tc.Tag, tc.Count)
	}
}
