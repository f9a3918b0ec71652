// Package assets embeds the default word list and alphabet so the solver
// runs without any configured files.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed dictionary.txt alphabet.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// DictionaryList returns the embedded dictionary, lowercased, comments dropped.
func DictionaryList() ([]string, error) {
	return readLines("dictionary.txt")
}

// AlphabetLetters returns the embedded alphabet as one string.
func AlphabetLetters() (string, error) {
	lines, err := readLines("alphabet.txt")
	if err != nil {
		return "", err
	}
	return strings.Join(lines, ""), nil
}
