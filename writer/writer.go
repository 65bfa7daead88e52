// Package writer serializes domain sets to flat blocklist files.
package writer

import (
	"bufio"
	"os"

	"github.com/go-faster/errors"

	"threatfeed/parser"
)

// WriteDomains truncates path and writes the members of domains in
// ascending order, one per newline-terminated line.
func WriteDomains(path string, domains parser.DomainSet) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output file")
	}

	w := bufio.NewWriter(f)
	for _, d := range domains.Sorted() {
		if _, err := w.WriteString(d + "\n"); err != nil {
			f.Close()
			return errors.Wrapf(err, "write %s", path)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "flush %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	return nil
}
