package badger

import (
	"fmt"

	"github.com/poiesic/minuteman/core"
)

// Key prefixes for different data types
const (
	documentPrefix = "docrec"
)

// documentCorpusPrefix returns the key prefix covering all documents
// in a corpus.
func documentCorpusPrefix(corpus core.Corpus) []byte {
	return []byte(fmt.Sprintf("%s:%s:", documentPrefix, corpus))
}

// makeDocumentKey generates a key for a document by corpus and ID.
func makeDocumentKey(corpus core.Corpus, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", documentPrefix, corpus, id))
}
