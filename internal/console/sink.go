package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteCandidates replaces the file at path with a "Possible Words" header
// followed by one candidate per line. The file is written to a temporary
// name first and renamed, so readers never see a half-written list.
func WriteCandidates(path string, words []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".candidates-*")
	if err != nil {
		return fmt.Errorf("create candidates file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeCandidates(tmp, words); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeCandidates(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("Possible Words\n"); err != nil {
		return err
	}
	for _, word := range words {
		if _, err := bw.WriteString(word + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
