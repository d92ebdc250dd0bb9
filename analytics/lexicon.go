// ABOUTME: AFINN-165 word valence list used by the sentiment scorer
// ABOUTME: Scores range from -5 (very negative) to +5 (very positive)
package analytics

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//go:embed data/AFINN-en-165.txt
var afinn165 string

var lexicon = mustParseLexicon(strings.NewReader(afinn165))

// parseLexicon reads tab separated "word<TAB>score" lines. Multi-word
// entries are skipped since the scorer works on single tokens.
func parseLexicon(r io.Reader) (map[string]int, error) {
	words := make(map[string]int)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		word, raw, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("lexicon line %d: missing tab", line)
		}
		score, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		if score < -5 || score > 5 {
			return nil, fmt.Errorf("lexicon line %d: score %d out of range", line, score)
		}
		if strings.ContainsRune(word, ' ') {
			continue
		}
		words[word] = score
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return words, nil
}

func mustParseLexicon(r io.Reader) map[string]int {
	words, err := parseLexicon(r)
	if err != nil {
		panic(err)
	}
	return words
}

// negators flip the valence of the word that follows them.
var negators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"don't":   true,
	"dont":    true,
	"didn't":  true,
	"didnt":   true,
	"doesn't": true,
	"doesnt":  true,
	"isn't":   true,
	"isnt":    true,
	"wasn't":  true,
	"wasnt":   true,
	"won't":   true,
	"wont":    true,
	"can't":   true,
	"cant":    true,
	"cannot":  true,
	"aren't":  true,
	"arent":   true,
}
