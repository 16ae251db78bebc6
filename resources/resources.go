package resources

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/mylxsw/asteria/log"
	"github.com/pkg/errors"
)

// StdinPath is the input path that selects standard input.
const StdinPath = "-"

// ReadText
// Reads the whole input text from path, or from stdin when path is `-`.
// Files are memory mapped while they are copied out. The text must be
// valid UTF-8.
func ReadText(path string, stdin io.Reader) (string, error) {
	var text string
	if path == StdinPath || path == "" {
		textBytes, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading standard input")
		}
		text = string(textBytes)
		path = "<stdin>"
	} else {
		var err error
		if text, err = readFile(path); err != nil {
			return "", err
		}
	}
	if !utf8.ValidString(text) {
		return "", errors.Errorf("input `%s` is not valid UTF-8", path)
	}
	log.Debugf("Read %s from %s", humanize.Bytes(uint64(len(text))), path)
	return text, nil
}

func readFile(path string) (string, error) {
	handle, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "opening input `%s`", path)
	}
	defer handle.Close()

	stat, err := handle.Stat()
	if err != nil {
		return "", errors.Wrapf(err, "reading input `%s`", path)
	}
	if stat.IsDir() {
		return "", errors.Errorf("input `%s` is a directory", path)
	}
	if stat.Size() == 0 {
		return "", nil
	}

	mapped, release, err := readMmap(handle)
	if err != nil {
		return "", errors.Wrapf(err, "error trying to mmap `%s`", path)
	}
	text := string(mapped)
	if releaseErr := release(); releaseErr != nil {
		log.Warningf("unmapping `%s`: %v", path, releaseErr)
	}
	return text, nil
}
