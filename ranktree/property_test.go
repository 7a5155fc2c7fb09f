package ranktree

import (
	"math/rand"
	"slices"
	"testing"
)

// How to run:
//   - Deterministic randomized property tests:
//     go test ./ranktree -run Randomized -count=1
//   - Fuzz the sequence model:
//     go test ./ranktree -run '^$' -fuzz FuzzSequenceModel -fuzztime=10s

func assertTreeMatchesModel(t *testing.T, tree *Tree[int], model []int) {
	t.Helper()
	if tree.Len() != len(model) {
		t.Fatalf("model length mismatch: got=%d want=%d", tree.Len(), len(model))
	}
	if got := collect(tree); !slices.Equal(got, model) {
		t.Fatalf("model mismatch:\n got=%v\nwant=%v", got, model)
	}
	for i, want := range model {
		if got, ok := tree.Get(i); !ok || got != want {
			t.Fatalf("Get(%d) = (%d, %v), want %d", i, got, ok, want)
		}
	}
	var sum int
	for i, v := range model {
		if got := tree.PrefixSum(0, i); got != sum {
			t.Fatalf("PrefixSum(%d) = %d, want %d", i, got, sum)
		}
		sum += v
	}
	if tree.Sum(0) != sum {
		t.Fatalf("Sum = %d, want %d", tree.Sum(0), sum)
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}

func runSequenceModel(t *testing.T, r *rand.Rand, alpha float64, steps int) {
	weight := DimensionFunc[int](func(v int) int { return v })
	tree, err := NewSequence[int](alpha, weight)
	if err != nil {
		t.Fatal(err)
	}
	var model []int
	for step := range steps {
		switch op := r.Intn(10); {
		case op < 6 || len(model) == 0:
			pos := r.Intn(len(model) + 1)
			v := r.Intn(5)
			if err := tree.InsertAt(pos, v); err != nil {
				t.Fatalf("step %d: InsertAt(%d) failed: %v", step, pos, err)
			}
			model = slices.Insert(model, pos, v)
		case op < 9:
			pos := r.Intn(len(model))
			got, ok := tree.DeleteAt(pos)
			if !ok || got != model[pos] {
				t.Fatalf("step %d: DeleteAt(%d) = (%d, %v), want %d", step, pos, got, ok, model[pos])
			}
			model = slices.Delete(model, pos, pos+1)
		default:
			pos := r.Intn(len(model))
			v := r.Intn(5)
			if !tree.ReplaceAt(pos, v) {
				t.Fatalf("step %d: ReplaceAt(%d) failed", step, pos)
			}
			model[pos] = v
		}
		if step%17 == 0 {
			assertTreeMatchesModel(t, tree, model)
		}
	}
	assertTreeMatchesModel(t, tree, model)
}

func TestSequenceRandomizedProperty(t *testing.T) {
	for seed, alpha := range []float64{0.55, 0.6, 0.7} {
		r := rand.New(rand.NewSource(int64(seed + 1)))
		runSequenceModel(t, r, alpha, 1500)
	}
}

func TestSetRandomizedProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	tree := newIntSet(t, 0.65)
	present := make(map[int]bool)
	for step := range 3000 {
		v := r.Intn(400)
		if r.Intn(3) < 2 {
			err := tree.Insert(v)
			if present[v] != (err != nil) {
				t.Fatalf("step %d: Insert(%d) err=%v, present=%v", step, v, err, present[v])
			}
			present[v] = true
		} else {
			_, ok := tree.Delete(v)
			if ok != present[v] {
				t.Fatalf("step %d: Delete(%d) ok=%v, present=%v", step, v, ok, present[v])
			}
			delete(present, v)
		}
		if _, ok := tree.Search(v); ok != present[v] {
			t.Fatalf("step %d: Search(%d) ok=%v, present=%v", step, v, ok, present[v])
		}
	}
	var want []int
	for v := range present {
		want = append(want, v)
	}
	slices.Sort(want)
	if got := collect(tree); !slices.Equal(got, want) {
		t.Fatalf("set mismatch:\n got=%v\nwant=%v", got, want)
	}
	for i, v := range want {
		if got, _ := tree.Get(i); got != v {
			t.Fatalf("Get(%d) = %d, want %d", i, got, v)
		}
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}

func FuzzSequenceModel(f *testing.F) {
	f.Add(int64(1), uint8(200))
	f.Add(int64(7), uint8(30))
	f.Fuzz(func(t *testing.T, seed int64, steps uint8) {
		runSequenceModel(t, rand.New(rand.NewSource(seed)), 0.6, int(steps))
	})
}
