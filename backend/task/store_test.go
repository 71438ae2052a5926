package task

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStore(t *testing.T) {
	t.Parallel()

	type operation struct {
		Delete      bool
		Name        string
		Description string
	}

	type expectation struct {
		Tasks   []Task
		Applied []bool
	}

	scenarios := []struct {
		Name       string
		Operations []operation
		Expected   expectation
	}{
		{
			Name:     "empty store lists nothing",
			Expected: expectation{Tasks: []Task{}},
		},
		{
			Name: "add keeps insertion order",
			Operations: []operation{
				{Name: "b", Description: "fix Y"},
				{Name: "a", Description: "fix X"},
			},
			Expected: expectation{
				Tasks:   []Task{{Name: "b", Description: "fix Y"}, {Name: "a", Description: "fix X"}},
				Applied: []bool{true, true},
			},
		},
		{
			Name: "add with existing name overwrites in place",
			Operations: []operation{
				{Name: "a", Description: "first"},
				{Name: "b", Description: "other"},
				{Name: "a", Description: "second"},
			},
			Expected: expectation{
				Tasks:   []Task{{Name: "a", Description: "second"}, {Name: "b", Description: "other"}},
				Applied: []bool{true, true, true},
			},
		},
		{
			Name: "add with empty name is rejected",
			Operations: []operation{
				{Name: "", Description: "fix X"},
			},
			Expected: expectation{Tasks: []Task{}, Applied: []bool{false}},
		},
		{
			Name: "add with empty description is rejected",
			Operations: []operation{
				{Name: "a", Description: "fix X"},
				{Name: "a", Description: ""},
			},
			Expected: expectation{
				Tasks:   []Task{{Name: "a", Description: "fix X"}},
				Applied: []bool{true, false},
			},
		},
		{
			Name: "delete removes the task",
			Operations: []operation{
				{Name: "a", Description: "fix X"},
				{Name: "b", Description: "fix Y"},
				{Delete: true, Name: "a"},
			},
			Expected: expectation{
				Tasks:   []Task{{Name: "b", Description: "fix Y"}},
				Applied: []bool{true, true, true},
			},
		},
		{
			Name: "delete of an absent name is a no-op",
			Operations: []operation{
				{Name: "a", Description: "fix X"},
				{Delete: true, Name: "missing"},
			},
			Expected: expectation{
				Tasks:   []Task{{Name: "a", Description: "fix X"}},
				Applied: []bool{true, false},
			},
		},
		{
			Name: "re-adding a deleted name appends it",
			Operations: []operation{
				{Name: "a", Description: "fix X"},
				{Name: "b", Description: "fix Y"},
				{Delete: true, Name: "a"},
				{Name: "a", Description: "fix Z"},
			},
			Expected: expectation{
				Tasks:   []Task{{Name: "b", Description: "fix Y"}, {Name: "a", Description: "fix Z"}},
				Applied: []bool{true, true, true, true},
			},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			t.Parallel()

			store := NewStore()
			var actual expectation
			for _, op := range scenario.Operations {
				if op.Delete {
					actual.Applied = append(actual.Applied, store.Delete(op.Name))
				} else {
					actual.Applied = append(actual.Applied, store.Add(op.Name, op.Description))
				}
			}
			actual.Tasks = store.List()

			if diff := cmp.Diff(scenario.Expected, actual); diff != "" {
				t.Errorf("%s() mismatch (-want +got):\n%s", scenario.Name, diff)
			}
			if store.IsEmpty() != (len(actual.Tasks) == 0) {
				t.Errorf("IsEmpty() = %v with %d tasks", store.IsEmpty(), len(actual.Tasks))
			}
		})
	}
}

func TestStoreMatchesLastWriteWinsMap(t *testing.T) {
	t.Parallel()

	names := []string{"", "a", "b", "c", "d"}
	descriptions := []string{"", "fix X", "fix Y", "explain"}

	for seed := uint64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*7))
		store := NewStore()
		reference := map[string]string{}

		for range 100 {
			name := names[rng.IntN(len(names))]
			sizeBefore := store.Len()

			if rng.IntN(3) == 0 {
				_, present := reference[name]
				delete(reference, name)
				store.Delete(name)
				if !present && store.Len() != sizeBefore {
					t.Fatalf("seed %d: delete of absent %q changed size", seed, name)
				}
				continue
			}

			description := descriptions[rng.IntN(len(descriptions))]
			store.Add(name, description)
			if name == "" || description == "" {
				if store.Len() != sizeBefore {
					t.Fatalf("seed %d: incomplete add changed size", seed)
				}
				continue
			}
			reference[name] = description
		}

		listed := store.List()
		if len(listed) != len(reference) {
			t.Fatalf("seed %d: listed %d tasks, reference has %d", seed, len(listed), len(reference))
		}

		actual := make(map[string]string, len(listed))
		for _, task := range listed {
			actual[task.Name] = task.Description
		}
		if diff := cmp.Diff(reference, actual); diff != "" {
			t.Fatalf("seed %d: store mismatch (-want +got):\n%s", seed, diff)
		}
	}
}

func TestStoreListIsSnapshot(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Add("a", "fix X")

	snapshot := store.List()
	store.Add("b", "fix Y")
	store.Delete("a")

	if diff := cmp.Diff([]Task{{Name: "a", Description: "fix X"}}, snapshot); diff != "" {
		t.Errorf("snapshot changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, store.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}
