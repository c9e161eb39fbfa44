package search

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/cockroachdb/errors"

	"github.com/jonwraymond/settingsearch/fuzzy"
)

// BleveOptions configures a BleveRanker.
type BleveOptions struct {
	// Fuzziness is the edit distance allowed per query term (0 to 2).
	// Default: 1
	Fuzziness int

	// DisablePrefix turns off prefix matching of the final query term.
	DisablePrefix bool
}

// BleveRanker ranks documents with an in-memory bleve index. The index is
// rebuilt only when the fingerprint of the resolved documents changes.
type BleveRanker struct {
	mu          sync.Mutex
	opts        BleveOptions
	index       bleve.Index
	fingerprint uint64
	fields      int
}

// NewBleveRanker creates a BleveRanker.
func NewBleveRanker(opts BleveOptions) (*BleveRanker, error) {
	if opts.Fuzziness < 0 || opts.Fuzziness > 2 {
		return nil, errors.Wrapf(ErrInvalidOptions, "bleve fuzziness %d outside [0,2]", opts.Fuzziness)
	}
	if opts.Fuzziness == 0 {
		opts.Fuzziness = 1
	}
	return &BleveRanker{opts: opts}, nil
}

// Rank implements Ranker. Scores are 1 - score/maxScore, so the best bleve hit
// scores 0. Equal scores keep document order.
func (r *BleveRanker) Rank(q string, docs []fuzzy.Document) ([]fuzzy.Hit, error) {
	terms := strings.Fields(strings.ToLower(q))
	if len(terms) == 0 || len(docs) == 0 {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureIndex(docs); err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(r.buildQuery(terms), len(docs), 0, false)
	res, err := r.index.Search(req)
	if err != nil {
		return nil, errors.Wrap(err, "bleve search")
	}

	hits := make([]fuzzy.Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		id, err := strconv.Atoi(h.ID)
		if err != nil {
			continue
		}
		score := 1.0
		if res.MaxScore > 0 {
			score = 1 - h.Score/res.MaxScore
		}
		hits = append(hits, fuzzy.Hit{ID: id, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score < hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	return hits, nil
}

// Close releases the cached index.
func (r *BleveRanker) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index == nil {
		return nil
	}
	err := r.index.Close()
	r.index = nil
	return err
}

func (r *BleveRanker) ensureIndex(docs []fuzzy.Document) error {
	fp := computeFingerprint(docs)
	if r.index != nil && fp == r.fingerprint {
		return nil
	}

	if r.index != nil {
		_ = r.index.Close()
		r.index = nil
	}

	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return errors.Wrap(err, "create bleve index")
	}

	fields := 0
	batch := idx.NewBatch()
	for _, doc := range docs {
		body := make(map[string]any, len(doc.Fields))
		for k, text := range doc.Fields {
			if text == "" {
				continue
			}
			body[fieldName(k)] = text
		}
		if len(doc.Fields) > fields {
			fields = len(doc.Fields)
		}
		if len(body) == 0 {
			continue
		}
		if err := batch.Index(strconv.Itoa(doc.ID), body); err != nil {
			_ = idx.Close()
			return errors.Wrapf(err, "index document %d", doc.ID)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return errors.Wrap(err, "apply bleve batch")
	}

	r.index = idx
	r.fingerprint = fp
	r.fields = fields
	return nil
}

func (r *BleveRanker) buildQuery(terms []string) query.Query {
	var clauses []query.Query
	for k := 0; k < r.fields; k++ {
		field := fieldName(k)
		for i, term := range terms {
			mq := bleve.NewMatchQuery(term)
			mq.SetField(field)
			mq.SetFuzziness(r.opts.Fuzziness)
			clauses = append(clauses, mq)

			// The last term is usually still being typed.
			if !r.opts.DisablePrefix && i == len(terms)-1 {
				pq := bleve.NewPrefixQuery(term)
				pq.SetField(field)
				clauses = append(clauses, pq)
			}
		}
	}
	return bleve.NewDisjunctionQuery(clauses...)
}

func fieldName(k int) string {
	return "f" + strconv.Itoa(k)
}
