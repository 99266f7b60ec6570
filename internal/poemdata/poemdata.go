// Package poemdata provides the poem catalog used to seed analysis
// input: TEI XML collections parsed from the norn-uio/norn-poems
// repository, with an embedded sample set for offline operation.
package poemdata

import (
	"sort"
)

// maxPoemsPerBook caps how many poems from a single collection appear
// in the dropdown catalog.
const maxPoemsPerBook = 15

// Collection holds the metadata of one TEI book of poems.
type Collection struct {
	Author    string   `json:"author"`
	BookTitle string   `json:"book_title"`
	Year      string   `json:"year"`
	Poems     []string `json:"poems"`
}

// DropdownEntry locates a single poem within its source collection.
type DropdownEntry struct {
	File      string `json:"file"`
	BookTitle string `json:"book_title"`
	Year      string `json:"year"`
	PoemIndex int    `json:"poem_index"`
}

// Catalog maps TEI file names to their parsed collections.
type Catalog map[string]Collection

// DropdownEntries flattens the catalog into labelled entries keyed by
// "Poem Title - Author". Each collection contributes at most
// maxPoemsPerBook entries, in their order of appearance in the source.
func (c Catalog) DropdownEntries() map[string]DropdownEntry {
	entries := make(map[string]DropdownEntry)

	for fileName, book := range c {
		poems := book.Poems
		if len(poems) > maxPoemsPerBook {
			poems = poems[:maxPoemsPerBook]
		}

		for idx, title := range poems {
			label := title + " - " + book.Author
			entries[label] = DropdownEntry{
				File:      fileName,
				BookTitle: book.BookTitle,
				Year:      book.Year,
				PoemIndex: idx,
			}
		}
	}

	return entries
}

// Labels returns the dropdown labels in sorted order. Useful for
// deterministic listings; the entry map itself is unordered.
func (c Catalog) Labels() []string {
	entries := c.DropdownEntries()
	labels := make([]string, 0, len(entries))
	for label := range entries {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
