package lookahead

// Concat is ⊕_k: k-truncated concatenation of lookahead sets. If a is empty
// it returns b unchanged (the left-identity that primes the fold-from-nothing
// accumulators used throughout the PFIRST and PFOLLOW engines); otherwise it
// forms, for every pair (u, v) in a × b, the sequence obtained by dropping
// u's "" elements and then appending v's non-empty elements until the result
// has length k (or v is exhausted), falling back to [""] if that leaves
// nothing.
func Concat(k int, a, b LSet) LSet {
	if a.Len() == 0 {
		return b.Copy()
	}

	out := New()
	for _, u := range a.Elements() {
		for _, v := range b.Elements() {
			out.Add(concatOne(k, u, v))
		}
	}
	return out
}

func concatOne(k int, u, v []string) []string {
	w := make([]string, 0, k)
	for _, e := range u {
		if e != "" {
			w = append(w, e)
		}
	}

	for i := 0; i < len(v) && len(w) < k; i++ {
		if v[i] != "" {
			w = append(w, v[i])
		}
	}

	if len(w) == 0 {
		return []string{""}
	}
	return w
}

// SigmaStarK returns Σ*_k: every terminal sequence of length at most k drawn
// from alphabet, including [""]. alphabet may or may not already include
// "".
func SigmaStarK(k int, alphabet []string) LSet {
	seed := New()
	seed.Add([]string{""})
	for _, t := range alphabet {
		if t != "" {
			seed.Add([]string{t})
		}
	}

	set := seed
	for i := 0; i < k; i++ {
		set = Concat(k, set, set)
	}
	return set
}

// SelfExpand computes the fixed point of self-concatenation used when a
// conjunct references the non-terminal it is itself computing PFIRST or
// PFOLLOW for, in a position other than leading. It performs exactly k
// iterations of acc := ⊕_k(acc ∪ {[""]}, acc).
func SelfExpand(k int, acc LSet) LSet {
	for i := 0; i < k; i++ {
		withEps := acc.Copy()
		withEps.Add([]string{""})
		acc = Concat(k, withEps, acc)
	}
	return acc
}
