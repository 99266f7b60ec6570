package analysis

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

// PoetryResult is the annotation envelope for a poem, covering the three
// lyrical repetition patterns the service detects.
type PoetryResult struct {
	Text         string             `json:"text"`
	EndRhymes    []EndRhyme         `json:"end_rhymes"`
	Alliteration []LineAlliteration `json:"alliteration"`
	Anaphora     []Anaphora         `json:"anaphora"`
}

// EndRhyme tags the final word of one line with a rhyme scheme letter.
// Lines that rhyme with nothing else carry the tag "-".
type EndRhyme struct {
	Line int    `json:"line"`
	Word string `json:"word"`
	Tag  string `json:"tag"`
}

// LineAlliteration records a run of consecutive words in one line that
// share an initial letter.
type LineAlliteration struct {
	Line   int      `json:"line"`
	Letter string   `json:"letter"`
	Words  []string `json:"words"`
}

// Anaphora records a phrase repeated at the start of two or more lines.
type Anaphora struct {
	Phrase string `json:"phrase"`
	Lines  []int  `json:"lines"`
}

// AnalyzePoetry annotates the input text with end rhymes, alliteration
// and anaphora. Line numbers are 1-based over the raw input, blank
// lines included, so annotations can be mapped back onto the original.
func AnalyzePoetry(ctx context.Context, input string) (any, error) {
	lines := strings.Split(input, "\n")

	return &PoetryResult{
		Text:         input,
		EndRhymes:    tagEndRhymes(lines),
		Alliteration: extractAlliteration(lines),
		Anaphora:     extractAnaphora(lines),
	}, nil
}

// tagEndRhymes assigns rhyme scheme letters to line-final words.
// Words rhyme when their normalized endings (last vowel group to the end
// of the word) match; groups get letters in order of first appearance.
func tagEndRhymes(lines []string) []EndRhyme {
	type lineEnd struct {
		line int
		word string
		key  string
	}

	var ends []lineEnd
	for i, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		word := trimNonLetters(words[len(words)-1])
		if word == "" {
			continue
		}
		ends = append(ends, lineEnd{
			line: i + 1,
			word: word,
			key:  rhymeKey(word),
		})
	}

	// Count group sizes first; only groups of two or more rhyme.
	groupSize := make(map[string]int)
	for _, e := range ends {
		groupSize[e.key]++
	}

	tags := make(map[string]string)
	next := 'a'

	rhymes := make([]EndRhyme, 0, len(ends))
	for _, e := range ends {
		tag := "-"
		if groupSize[e.key] >= 2 {
			if _, seen := tags[e.key]; !seen {
				tags[e.key] = string(next)
				next++
			}
			tag = tags[e.key]
		}
		rhymes = append(rhymes, EndRhyme{Line: e.line, Word: e.word, Tag: tag})
	}

	return rhymes
}

// extractAlliteration finds runs of two or more consecutive words
// sharing an initial letter within each line.
func extractAlliteration(lines []string) []LineAlliteration {
	var found []LineAlliteration

	for i, line := range lines {
		words := strings.Fields(line)

		var run []string
		var runLetter rune

		flush := func() {
			if len(run) >= 2 {
				found = append(found, LineAlliteration{
					Line:   i + 1,
					Letter: string(runLetter),
					Words:  append([]string(nil), run...),
				})
			}
			run = run[:0]
		}

		for _, word := range words {
			letter := initialLetter(word)
			if letter == 0 {
				flush()
				continue
			}
			if len(run) > 0 && letter == runLetter {
				run = append(run, word)
				continue
			}
			flush()
			run = append(run, word)
			runLetter = letter
		}
		flush()
	}

	return found
}

// extractAnaphora finds phrases repeated at line starts. Two-word
// openings are preferred over single words; a single word is only
// reported when no longer phrase covers its lines.
func extractAnaphora(lines []string) []Anaphora {
	onePrefix := make(map[string][]int)
	twoPrefix := make(map[string][]int)

	for i, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		first := strings.ToLower(trimNonLetters(words[0]))
		if first == "" {
			continue
		}
		onePrefix[first] = append(onePrefix[first], i+1)

		if len(words) >= 2 {
			second := strings.ToLower(trimNonLetters(words[1]))
			if second != "" {
				phrase := first + " " + second
				twoPrefix[phrase] = append(twoPrefix[phrase], i+1)
			}
		}
	}

	var found []Anaphora
	covered := make(map[int]bool)

	for phrase, phraseLines := range twoPrefix {
		if len(phraseLines) >= 2 {
			found = append(found, Anaphora{Phrase: phrase, Lines: phraseLines})
			for _, l := range phraseLines {
				covered[l] = true
			}
		}
	}

	for word, wordLines := range onePrefix {
		uncovered := make([]int, 0, len(wordLines))
		for _, l := range wordLines {
			if !covered[l] {
				uncovered = append(uncovered, l)
			}
		}
		if len(uncovered) >= 2 {
			found = append(found, Anaphora{Phrase: word, Lines: uncovered})
		}
	}

	sort.Slice(found, func(a, b int) bool {
		if found[a].Lines[0] != found[b].Lines[0] {
			return found[a].Lines[0] < found[b].Lines[0]
		}
		return found[a].Phrase < found[b].Phrase
	})

	return found
}

// rhymeVowels covers the vowel inventory of the Scandinavian source
// texts as well as English.
const rhymeVowels = "aeiouyæøåäö"

// rhymeKey normalizes a word to its rhyming ending: everything from the
// start of the last vowel group to the end of the word, lowercased.
func rhymeKey(word string) string {
	w := strings.ToLower(word)
	runes := []rune(w)

	lastVowelStart := -1
	inVowelGroup := false
	for i, r := range runes {
		if strings.ContainsRune(rhymeVowels, r) {
			if !inVowelGroup {
				lastVowelStart = i
				inVowelGroup = true
			}
		} else {
			inVowelGroup = false
		}
	}

	if lastVowelStart < 0 {
		return w
	}
	return string(runes[lastVowelStart:])
}

// trimNonLetters strips leading and trailing punctuation from a word,
// keeping letters and digits.
func trimNonLetters(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// initialLetter returns the lowercased first letter of a word, or 0 if
// the word does not start with a letter after trimming punctuation.
func initialLetter(word string) rune {
	trimmed := trimNonLetters(word)
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		return 0
	}
	return 0
}
