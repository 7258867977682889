package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("Zürich ist schön."), 0o644))

	text, err := ReadText(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Zürich ist schön.", text)

	text, err = ReadText(Stdin, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)

	_, err = ReadText(filepath.Join(dir, "missing.txt"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadTokens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`[[{"text":"Hi","tag":"UH","lemma":"hi"}]]`), 0o644))

	fixed, err := ReadTokens(path)
	require.NoError(t, err)
	require.Len(t, fixed, 1)
	assert.Equal(t, "Hi", fixed[0][0].Form)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[[`), 0o644))
	_, err = ReadTokens(bad)
	assert.ErrorContains(t, err, "bad.json")
}

func TestName(t *testing.T) {
	assert.Equal(t, "stdin", Name(Stdin))
	assert.Equal(t, "report", Name("/tmp/texts/report.txt"))
	assert.Equal(t, "notes", Name("notes"))
}
