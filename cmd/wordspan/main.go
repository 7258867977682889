package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/wordspan/render"
)

// set at build time with -ldflags "-X main.BuildTag=... -X main.BuildCommit=..."
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the input and output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "wordspan: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:                 "wordspan",
		Usage:                "align annotated words with their text and query them",
		HideVersion:          true,
		EnableBashCompletion: true,
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		Flags:                globalFlags(),
		Commands: []*cli.Command{
			alignCommand(ui),
			phrasesCommand(ui),
			exprCommand(ui),
			topicsCommand(ui),
			topicCommand(ui),
			queryCommand(ui),
			statCommand(ui),
			versionCommand(ui),
		},
	}
}

const (
	flagTopicPath = "topic-path"
	flagTokens    = "tokens"
	flagNoColor   = "no-color"
	flagVerbose   = "verbose"
	flagFormat    = "format"
	flagNoPrefix  = "no-prefix"
	flagMatches   = "matches"
	flagJSON      = "json"
	flagRaw       = "raw"
	flagPhrase    = "phrase"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagTopicPath,
			Aliases: []string{"t"},
			Usage:   "directory of topic JSON files",
			EnvVars: []string{"WORDSPAN_TOPIC_PATH"},
		},
		&cli.StringFlag{
			Name:    flagTokens,
			Usage:   "pre-annotated JSON file used instead of the English tagger",
			EnvVars: []string{"WORDSPAN_TOKENS"},
		},
		&cli.BoolFlag{
			Name:    flagNoColor,
			Usage:   "do not color the matched words",
			EnvVars: []string{"WORDSPAN_NO_COLOR", "NO_COLOR"},
		},
		&cli.BoolFlag{
			Name:    flagVerbose,
			Aliases: []string{"v"},
			Usage:   "print progress to stderr",
		},
	}
}

// renderFlags are the flags of the commands printing phrase matches
func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagFormat,
			Aliases: []string{"f"},
			Value:   render.Defaultformat,
			Usage:   fmt.Sprintf("output format, one of %v", render.SupportedFormats()),
			Action: func(c *cli.Context, v string) error {
				for _, f := range render.SupportedFormats() {
					if f == v {
						return nil
					}
				}
				return fmt.Errorf("invalid format %q: allowed values are %v", v, render.SupportedFormats())
			},
		},
		&cli.BoolFlag{
			Name:  flagNoPrefix,
			Usage: "do not prefix the results with document and phrase",
		},
		&cli.IntFlag{
			Name:    flagMatches,
			Aliases: []string{"n"},
			Usage:   "show only phrases matching at least this number of topic expressions",
		},
		&cli.BoolFlag{
			Name:  flagJSON,
			Usage: "print the results as JSON",
		},
	}
}

func newRenderer(c *cli.Context, ui UI) *render.Renderer {
	r := render.NewRenderer(ui.Out)
	r.HasColor = !c.Bool(flagNoColor)
	r.HasPrefix = !c.Bool(flagNoPrefix)
	r.Format = c.String(flagFormat)
	r.NumMatches = c.Int(flagMatches)
	return r
}

// resultRenderer returns the JSON renderer if requested.
func resultRenderer(c *cli.Context, ui UI, r *render.Renderer) render.ResultRenderer {
	if c.Bool(flagJSON) {
		return render.NewJSONRenderer(ui.Out)
	}
	return r
}

func verbosef(c *cli.Context, ui UI, format string, a ...any) {
	if c.Bool(flagVerbose) {
		fmt.Fprintf(ui.Err, format+"\n", a...)
	}
}
