package cmd

import "testing"

func TestNgramTrieInsertAndTotal(t *testing.T) {
	trie := NewNgramTrie()
	trie.InsertNgram("the", 1)
	trie.InsertNgram("the", 1)
	trie.InsertNgram("thy", 1)

	if got := trie.Total(trie.Root()); got != 3 {
		t.Errorf("root total = %d, want 3", got)
	}

	th := trie.GetChild(trie.Root(), int('t'-'a'))
	th = trie.GetChild(th, int('h'-'a'))
	if got := trie.Total(th); got != 3 {
		t.Errorf("\"th\" prefix total = %d, want 3", got)
	}
}

func TestNgramTrieTraverseLeaves(t *testing.T) {
	trie := NewNgramTrie()
	for _, seq := range []string{"cat", "car", "cat", "dog"} {
		trie.InsertNgram(seq, 1)
	}

	counts := map[string]int64{}
	trie.TraverseLeaves(trie.Root(), func(id int32) {
		counts[trie.Ngram(id)] = trie.Total(id)
	})

	want := map[string]int64{"cat": 2, "car": 1, "dog": 1}
	if len(counts) != len(want) {
		t.Fatalf("got %d leaves, want %d: %v", len(counts), len(want), counts)
	}
	for ngram, n := range want {
		if counts[ngram] != n {
			t.Errorf("count[%q] = %d, want %d", ngram, counts[ngram], n)
		}
	}
}

func TestNgramTrieInsertChildDuplicate(t *testing.T) {
	trie := NewNgramTrie()
	root := trie.Root()
	if _, err := trie.InsertChild(root, 0); err != nil {
		t.Fatalf("unexpected error on first insert: %v", err)
	}
	if _, err := trie.InsertChild(root, 0); err == nil {
		t.Error("expected error inserting into an already-occupied child slot")
	}
}

func TestNgramTrieSize(t *testing.T) {
	trie := NewNgramTrie()
	for _, seq := range []string{"ab", "ac", "ab", "bd"} {
		trie.InsertNgram(seq, 1)
	}
	if got := trie.Size(trie.Root()); got != 3 {
		t.Errorf("Size() = %d, want 3", got)
	}
}
