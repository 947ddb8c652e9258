// Package storetest holds behaviour tests shared by every CommentStore.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/rsc/pkg/store"
)

// Options tunes the contract for a backend.
type Options struct {
	// RacyAppends skips the concurrent append check for backends whose
	// appends are read-modify-write without a lock.
	RacyAppends bool
}

// RunCommentStoreContract checks s against the CommentStore contract. The
// store must start empty; it is not closed.
func RunCommentStoreContract(t *testing.T, s store.CommentStore, opts Options) {
	t.Helper()
	ctx := context.Background()

	t.Run("EmptySlug", func(t *testing.T) {
		got, err := s.List(ctx, "never-commented")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("List() = %v, want empty", got)
		}
	})

	t.Run("AppendThenList", func(t *testing.T) {
		first := store.NewComment("first")
		second := store.NewComment("second")
		for _, c := range []store.Comment{first, second} {
			if err := s.Append(ctx, "ordered", c); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
		}

		got, err := s.List(ctx, "ordered")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		want := []store.Comment{first, second}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("List() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("SlugsAreIsolated", func(t *testing.T) {
		if err := s.Append(ctx, "a", store.NewComment("for a")); err != nil {
			t.Fatal(err)
		}
		got, err := s.List(ctx, "b")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("List(b) = %v, want empty", got)
		}
	})

	t.Run("InvalidSlug", func(t *testing.T) {
		if err := s.Append(ctx, "", store.NewComment("x")); err == nil {
			t.Error("Append with empty slug should fail")
		}
		if _, err := s.List(ctx, ""); err == nil {
			t.Error("List with empty slug should fail")
		}
	})

	t.Run("ConcurrentAppends", func(t *testing.T) {
		if opts.RacyAppends {
			t.Skip("backend does not serialise appends")
		}
		const n = 8
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- s.Append(ctx, "busy", store.NewComment(fmt.Sprintf("c%d", i)))
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("Append() error = %v", err)
			}
		}

		got, err := s.List(ctx, "busy")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != n {
			t.Errorf("List() len = %d, want %d", len(got), n)
		}
	})
}
