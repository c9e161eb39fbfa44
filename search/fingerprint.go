package search

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/jonwraymond/settingsearch/fuzzy"
)

// computeFingerprint hashes the resolved document set. It changes whenever an
// ID, a field value, a field position or the document order changes, which is
// when a cached index must be rebuilt.
func computeFingerprint(docs []fuzzy.Document) uint64 {
	h := xxhash.New()
	var buf [8]byte

	for _, doc := range docs {
		binary.LittleEndian.PutUint64(buf[:], uint64(doc.ID))
		_, _ = h.Write(buf[:])

		binary.LittleEndian.PutUint64(buf[:], uint64(len(doc.Fields)))
		_, _ = h.Write(buf[:])

		for _, f := range doc.Fields {
			_, _ = h.WriteString(f)
			_, _ = h.Write([]byte{0})
		}
	}

	return h.Sum64()
}
