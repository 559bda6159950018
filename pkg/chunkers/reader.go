package chunkers

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ragtext/ragtext/pkg/errors"
)

// ReadTextFile reads path and decodes it tolerantly: valid UTF-8 is used
// as-is, invalid sequences fall back to a Latin-1 decode so the read never
// fails on malformed bytes. A source that is missing or unreadable is a
// source-not-found error.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewSourceNotFoundError(path).WithDetail("cause", err.Error())
	}

	text, err := DecodeText(data)
	if err != nil {
		return "", errors.NewFileError("failed to decode source file", err).WithDetail("path", path)
	}
	return text, nil
}

// DecodeText decodes raw bytes tolerantly: valid UTF-8 passes through,
// anything else is decoded as Latin-1.
func DecodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Latin-1 maps every byte; a decoder failure means a corrupt file.
		return "", err
	}
	return string(decoded), nil
}
