package storage

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// TextMode selects how WriteText treats an existing file.
type TextMode int

const (
	TextOverwrite TextMode = iota // truncate, then write
	TextAppend                    // write after the existing content
)

func (m TextMode) String() string {
	if m == TextAppend {
		return "append"
	}
	return "overwrite"
}

// ParseTextMode accepts "overwrite" / "w" and "append" / "a".
func ParseTextMode(s string) (TextMode, error) {
	switch strings.ToLower(s) {
	case "overwrite", "w":
		return TextOverwrite, nil
	case "append", "a":
		return TextAppend, nil
	default:
		return TextOverwrite, errors.Errorf("unknown text mode '%s'", s)
	}
}

func (m TextMode) openFlags() int {
	if m == TextAppend {
		return os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	return os.O_CREATE | os.O_WRONLY | os.O_TRUNC
}
