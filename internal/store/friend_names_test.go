package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/joestump/wisaw-links/internal/store"
	"github.com/joestump/wisaw-links/internal/testutil"
)

func newFriendNameStore(t *testing.T) *store.FriendNameStore {
	t.Helper()
	return store.NewFriendNameStore(testutil.NewTestDB(t))
}

func TestFriendNameApply(t *testing.T) {
	fs := newFriendNameStore(t)
	ctx := context.Background()

	steps := []struct {
		name        string
		friendName  string
		timestamp   int64
		wantApplied bool
		wantName    string
	}{
		{name: "first name inserts", friendName: "Sam", timestamp: 100, wantApplied: true, wantName: "Sam"},
		{name: "newer name wins", friendName: "Samantha", timestamp: 200, wantApplied: true, wantName: "Samantha"},
		{name: "older name ignored", friendName: "Old Sam", timestamp: 150, wantApplied: false, wantName: "Samantha"},
		{name: "replay ignored", friendName: "Samantha", timestamp: 200, wantApplied: false, wantName: "Samantha"},
	}

	for _, st := range steps {
		applied, err := fs.Apply(ctx, "uuid-1", st.friendName, st.timestamp)
		if err != nil {
			t.Fatalf("%s: Apply: %v", st.name, err)
		}
		if applied != st.wantApplied {
			t.Errorf("%s: applied = %v, want %v", st.name, applied, st.wantApplied)
		}
		got, err := fs.Get(ctx, "uuid-1")
		if err != nil {
			t.Fatalf("%s: Get: %v", st.name, err)
		}
		if got.FriendName != st.wantName {
			t.Errorf("%s: name = %q, want %q", st.name, got.FriendName, st.wantName)
		}
	}
}

func TestFriendNameListAndDelete(t *testing.T) {
	fs := newFriendNameStore(t)
	ctx := context.Background()

	for uuid, name := range map[string]string{"u-b": "Bea", "u-a": "Al", "u-c": "Cy"} {
		if _, err := fs.Apply(ctx, uuid, name, 1); err != nil {
			t.Fatalf("Apply %s: %v", uuid, err)
		}
	}

	names, err := fs.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 3 {
		t.Fatalf("len(List) = %d, want 3", len(names))
	}
	for i, want := range []string{"Al", "Bea", "Cy"} {
		if names[i].FriendName != want {
			t.Errorf("List[%d] = %q, want %q", i, names[i].FriendName, want)
		}
	}

	if err := fs.Delete(ctx, "u-a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := fs.Get(ctx, "u-a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
	if err := fs.Delete(ctx, "u-a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}
