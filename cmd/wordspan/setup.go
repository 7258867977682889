package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/wordspan/annotate"
	"github.com/revelaction/wordspan/annotate/prose"
	"github.com/revelaction/wordspan/file"
	"github.com/revelaction/wordspan/phrase"
	"github.com/revelaction/wordspan/search"
	"github.com/revelaction/wordspan/storage/filesystem"
	"github.com/revelaction/wordspan/storage/sqlite/zombiezen"
	"github.com/revelaction/wordspan/topic"
)

// document is an aligned input file
type document struct {
	Id      int
	Name    string
	Text    string
	Phrases []*phrase.Phrase
}

// newPipeline returns the pipeline over the pre-annotated tokens if given,
// over the English tagger otherwise.
func newPipeline(c *cli.Context, ui UI) (*annotate.Pipeline, error) {
	if path := c.String(flagTokens); path != "" {
		fixed, err := file.ReadTokens(path)
		if err != nil {
			return nil, err
		}

		verbosef(c, ui, "using tokens from %s", path)
		return annotate.New(fixed), nil
	}

	verbosef(c, ui, "loading the English tagger")
	src, err := prose.New()
	if err != nil {
		return nil, err
	}

	return annotate.New(src), nil
}

// checkTokens rejects a tokens file for more than one input: the records
// are replayed for every text and only align with the one they came from.
func checkTokens(c *cli.Context, numFiles int) error {
	if c.String(flagTokens) != "" && numFiles > 1 {
		return fmt.Errorf("--%s annotates a single file, got %d files", flagTokens, numFiles)
	}

	return nil
}

// fileArg returns the first argument, the input file.
func fileArg(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		return "", errors.New("missing file argument (use - for stdin)")
	}

	return c.Args().First(), nil
}

func loadDoc(c *cli.Context, ui UI, p *annotate.Pipeline, path string, id int) (document, error) {
	text, err := file.ReadText(path, ui.In)
	if err != nil {
		return document{}, err
	}

	phrases, err := p.Phrases(c.Context, text)
	if err != nil {
		return document{}, fmt.Errorf("%s: %w", file.Name(path), err)
	}

	verbosef(c, ui, "%s: %d phrases", file.Name(path), len(phrases))

	return document{
		Id:      id,
		Name:    file.Name(path),
		Text:    text,
		Phrases: phrases,
	}, nil
}

// newSearch indexes the documents in an in-memory database. The returned
// function releases it.
func newSearch(ctx context.Context, docs ...document) (*search.Search, func(), error) {
	pool, err := zombiezen.NewMemoryPool(ctx)
	if err != nil {
		return nil, nil, err
	}

	s := search.New(topic.Topic{}, zombiezen.NewPhraseIndex(pool))
	for _, d := range docs {
		if err := s.Add(ctx, d.Id, d.Phrases); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}

	return s, func() { pool.Close() }, nil
}

func topicStore(c *cli.Context) (*filesystem.TopicStore, error) {
	path := c.String(flagTopicPath)
	if path == "" {
		return nil, errors.New("topic path must be specified via -t or WORDSPAN_TOPIC_PATH")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("topic path not found: %s", path)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("topic path is not a directory: %s", path)
	}

	return filesystem.NewTopicStore(path), nil
}

// topicLibrary retrieves all expressions of all topic files
func topicLibrary(c *cli.Context) (topic.Library, error) {
	store, err := topicStore(c)
	if err != nil {
		return nil, err
	}

	return store.ReadAll()
}
