// Package reader loads the whole corpus from a file or from stdin
package reader

import (
	"io"
	"os"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// StdinName - имя источника, при котором корпус читается из stdin
const StdinName = "-"

func ReadCorpus(stdin io.Reader, fileName string) (string, error) {
	switch fileName {
	case StdinName:
		return readStdIn(stdin)
	default:
		return readFile(fileName)
	}
}

func readStdIn(stdin io.Reader) (string, error) {
	if stdin == nil {
		return "", errors.New("stdin is not available")
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Errorf("error reading stdin: %w", err)
	}
	return toText("stdin", raw)
}

func readFile(fileName string) (string, error) {
	// проверяем открывается ли файл
	info, err := os.Stat(fileName)
	if err != nil {
		return "", errors.Errorf("error opening file %q: %w", fileName, err)
	}
	// проверяем не папка ли это
	if info.IsDir() {
		return "", errors.Errorf("specified source filename %q is a directory", fileName)
	}

	raw, err := os.ReadFile(fileName)
	if err != nil {
		return "", errors.Errorf("couldn't read file %q: %w", fileName, err)
	}
	return toText(fileName, raw)
}

func toText(source string, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", errors.Errorf("content of %q is not valid UTF-8 text", source)
	}
	return string(raw), nil
}
