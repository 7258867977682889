package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/wordspan/annotate"
)

// Stdin is the path argument that reads from the standard input.
const Stdin = "-"

// ReadText reads the text at path, or from stdin if path is Stdin.
func ReadText(path string, stdin io.Reader) (string, error) {
	if path == Stdin {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// ReadTokens reads a pre-annotated JSON file.
func ReadTokens(path string) (annotate.Fixed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fixed, err := annotate.ReadFixed(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return fixed, nil
}

// Name returns the document name of the path: the file name without
// extension, "stdin" for Stdin.
func Name(path string) string {
	if path == Stdin {
		return "stdin"
	}

	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
