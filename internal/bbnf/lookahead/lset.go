// Package lookahead implements the lookahead-set algebra: sets of terminal
// sequences of length at most k, and the k-truncated concatenation operator
// that every other phase of the pipeline is built out of.
package lookahead

import (
	"strconv"
	"strings"

	"github.com/dekarrin/bbnfgen/internal/util"
)

// LSet is a set of terminal sequences, each of length at most some k fixed by
// the caller. The empty-string sequence is represented as the singleton
// []string{""}; it is the only sequence ever allowed to contain "".
//
// LSet is backed by util.SVSet, the same keyed-value set the rest of the
// codebase's generic collections use, keyed by the sequence's encoded form
// (see encode) and mapping to the actual []string sequence. Iteration order
// is stabilized on top of it (Elements sorts by key) since table determinism
// (Testable Property 8) requires reproducible output and SVSet's own
// iteration order is Go's randomized map order.
//
// LSet is a value type; the zero value is not ready to use, callers should
// start from New.
type LSet struct {
	seqs util.SVSet[[]string]
}

// New returns an empty LSet.
func New() LSet {
	return LSet{seqs: util.NewSVSet[[]string]()}
}

// Single returns the LSet containing exactly the one-element sequence [t].
// t must be non-empty; use EmptyString for the epsilon singleton.
func Single(t string) LSet {
	s := New()
	s.Add([]string{t})
	return s
}

// EmptyString returns the LSet containing only the epsilon sequence [""].
func EmptyString() LSet {
	s := New()
	s.Add([]string{""})
	return s
}

// EncodeSeq builds an unambiguous key for a sequence of terminal strings,
// for use by callers (such as the parsing table) that need sequences as map
// keys themselves.
func EncodeSeq(seq []string) string {
	return encode(seq)
}

// encode builds an unambiguous key for a sequence: each element is
// length-prefixed, so no escaping is needed even though terminal lexemes are
// opaque byte sequences that may contain any character.
func encode(seq []string) string {
	var sb strings.Builder
	for _, e := range seq {
		sb.WriteString(strconv.Itoa(len(e)))
		sb.WriteByte(':')
		sb.WriteString(e)
	}
	return sb.String()
}

// Add inserts seq into the set. seq is stored by reference to its slice
// header; callers must not mutate it afterward.
func (s LSet) Add(seq []string) {
	s.seqs.Set(encode(seq), seq)
}

// Has reports whether seq is a member of the set.
func (s LSet) Has(seq []string) bool {
	return s.seqs.Has(encode(seq))
}

// HasEmpty reports whether the epsilon sequence [""] is a member.
func (s LSet) HasEmpty() bool {
	return s.seqs.Has(encode([]string{""}))
}

// Len returns the number of sequences in the set.
func (s LSet) Len() int {
	return s.seqs.Len()
}

// Elements returns the set's sequences, ordered by their encoded key so that
// output is reproducible across runs (the table-determinism property the
// generator is required to uphold).
func (s LSet) Elements() [][]string {
	keys := util.OrderedKeys(map[string][]string(s.seqs))

	out := make([][]string, len(keys))
	for i, k := range keys {
		out[i] = s.seqs.Get(k)
	}
	return out
}

// Copy returns a shallow copy: a new set with the same sequences.
func (s LSet) Copy() LSet {
	out := New()
	for _, k := range s.seqs.Elements() {
		out.seqs.Set(k, s.seqs.Get(k))
	}
	return out
}

// Union returns a new set containing every sequence in s or o.
func (s LSet) Union(o LSet) LSet {
	out := s.Copy()
	for _, k := range o.seqs.Elements() {
		out.seqs.Set(k, o.seqs.Get(k))
	}
	return out
}

// Intersection returns a new set containing every sequence in both s and o.
func (s LSet) Intersection(o LSet) LSet {
	out := New()
	for _, k := range s.seqs.Elements() {
		if o.seqs.Has(k) {
			out.seqs.Set(k, s.seqs.Get(k))
		}
	}
	return out
}

// String renders the set as a brace-delimited, space-joined list of
// sequences, in the same deterministic order Elements uses.
func (s LSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, seq := range s.Elements() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('[')
		sb.WriteString(strings.Join(seq, " "))
		sb.WriteByte(']')
	}
	sb.WriteByte('}')
	return sb.String()
}
