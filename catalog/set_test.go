package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hugr-lab/mysqlcat-go/mysql"
)

type fakeEntry struct {
	name string
}

func (e *fakeEntry) Name() string { return e.name }

func staticLoad(names ...string) LoadFunc[*fakeEntry] {
	return func(ctx context.Context) ([]*fakeEntry, error) {
		entries := make([]*fakeEntry, len(names))
		for i, n := range names {
			entries[i] = &fakeEntry{name: n}
		}
		return entries, nil
	}
}

func TestSetLookup(t *testing.T) {
	set := NewSet(nil, staticLoad("Users", "orders"))
	ctx := context.Background()

	tests := []struct {
		name      string
		lookup    string
		want      string
		wantFound bool
	}{
		{"exact match", "Users", "Users", true},
		{"case-insensitive fallback", "USERS", "Users", true},
		{"lower-case alias", "users", "Users", true},
		{"missing", "payments", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, found, err := set.GetEntry(ctx, tt.lookup)
			if err != nil {
				t.Fatalf("GetEntry(%q) error: %v", tt.lookup, err)
			}
			if found != tt.wantFound {
				t.Fatalf("GetEntry(%q) found = %v, want %v", tt.lookup, found, tt.wantFound)
			}
			if found && entry.Name() != tt.want {
				t.Errorf("GetEntry(%q) = %q, want %q", tt.lookup, entry.Name(), tt.want)
			}
		})
	}
}

func TestSetExactBeatsAlias(t *testing.T) {
	// Two entries differing only in case: the exact name must win and
	// the other stays reachable by its own exact name.
	set := NewSet(nil, staticLoad("Users", "users"))
	ctx := context.Background()

	entry, found, err := set.GetEntry(ctx, "Users")
	if err != nil || !found {
		t.Fatalf("GetEntry(Users) = %v, %v", found, err)
	}
	if entry.Name() != "Users" {
		t.Errorf("GetEntry(Users) = %q, want exact match", entry.Name())
	}
	entry, found, err = set.GetEntry(ctx, "users")
	if err != nil || !found {
		t.Fatalf("GetEntry(users) = %v, %v", found, err)
	}
	if entry.Name() != "users" {
		t.Errorf("GetEntry(users) = %q, want exact match", entry.Name())
	}
}

func TestSetLoadsExactlyOnce(t *testing.T) {
	var loads atomic.Int32
	set := NewSet(nil, func(ctx context.Context) ([]*fakeEntry, error) {
		loads.Add(1)
		time.Sleep(10 * time.Millisecond)
		return []*fakeEntry{{name: "t"}}, nil
	})

	const goroutines = 16
	var wg sync.WaitGroup
	errs := make([]error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = set.GetEntry(context.Background(), "t")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("goroutine %d: %v", i, err)
		}
	}
	if got := loads.Load(); got != 1 {
		t.Errorf("load ran %d times, want 1", got)
	}
}

func TestSetLoadFailureRetries(t *testing.T) {
	var loads int
	loadErr := errors.New("connection refused")
	set := NewSet(nil, func(ctx context.Context) ([]*fakeEntry, error) {
		loads++
		if loads == 1 {
			return nil, loadErr
		}
		return []*fakeEntry{{name: "t"}}, nil
	})
	ctx := context.Background()

	if _, _, err := set.GetEntry(ctx, "t"); !errors.Is(err, loadErr) {
		t.Fatalf("first lookup error = %v, want %v", err, loadErr)
	}
	if set.Loaded() {
		t.Fatalf("set marked loaded after failed load")
	}
	if _, found, err := set.GetEntry(ctx, "t"); err != nil || !found {
		t.Fatalf("second lookup = %v, %v; want found", found, err)
	}
	if loads != 2 {
		t.Errorf("load ran %d times, want 2", loads)
	}
}

func TestSetCreateEntry(t *testing.T) {
	set := NewSet(nil, staticLoad("a"))
	ctx := context.Background()

	if err := set.CreateEntry(ctx, &fakeEntry{name: "NewTable"}); err != nil {
		t.Fatalf("CreateEntry() error: %v", err)
	}
	if _, found, _ := set.GetEntry(ctx, "newtable"); !found {
		t.Errorf("created entry not reachable case-insensitively")
	}

	if err := set.CreateEntry(ctx, &fakeEntry{name: ""}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("CreateEntry(empty) error = %v, want ErrEmptyName", err)
	}
}

func TestSetClearEntriesReloads(t *testing.T) {
	var loads int
	set := NewSet(nil, func(ctx context.Context) ([]*fakeEntry, error) {
		loads++
		return []*fakeEntry{{name: "t"}}, nil
	})
	ctx := context.Background()

	if _, _, err := set.GetEntry(ctx, "t"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := set.GetEntry(ctx, "t"); err != nil {
		t.Fatal(err)
	}
	if loads != 1 {
		t.Fatalf("load ran %d times before clear, want 1", loads)
	}

	set.ClearEntries()
	if set.Loaded() {
		t.Fatalf("set still loaded after ClearEntries")
	}
	if _, _, err := set.GetEntry(ctx, "t"); err != nil {
		t.Fatal(err)
	}
	if loads != 2 {
		t.Errorf("load ran %d times after clear, want 2", loads)
	}
}

func TestSetCacheEntries(t *testing.T) {
	var loads int
	set := NewSet(nil, func(ctx context.Context) ([]*fakeEntry, error) {
		loads++
		return []*fakeEntry{{name: "t"}}, nil
	})
	ctx := context.Background()

	if err := set.CacheEntries(ctx); err != nil {
		t.Fatalf("CacheEntries() error: %v", err)
	}
	if !set.Loaded() {
		t.Fatalf("set not loaded after CacheEntries")
	}
	if _, _, err := set.GetEntry(ctx, "t"); err != nil {
		t.Fatal(err)
	}
	if loads != 1 {
		t.Errorf("load ran %d times, want 1", loads)
	}
}

func TestDropInfoSQL(t *testing.T) {
	tests := []struct {
		name string
		info DropInfo
		want string
	}{
		{
			"table",
			DropInfo{Type: ObjectTable, Name: "users"},
			"DROP TABLE `users`",
		},
		{
			"if exists",
			DropInfo{Type: ObjectTable, Name: "users", IgnoreNotFound: true},
			"DROP TABLE IF EXISTS `users`",
		},
		{
			"cascade",
			DropInfo{Type: ObjectView, Name: "v", Cascade: true},
			"DROP VIEW `v` CASCADE",
		},
		{
			"schema ignores cascade",
			DropInfo{Type: ObjectSchema, Name: "s", IgnoreNotFound: true, Cascade: true},
			"DROP SCHEMA IF EXISTS `s`",
		},
		{
			"identifier escaping",
			DropInfo{Type: ObjectTable, Name: "we`ird"},
			"DROP TABLE `we``ird`",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.SQL(); got != tt.want {
				t.Errorf("SQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDropEntry(t *testing.T) {
	sess := &fakeSession{}
	set := NewSet[*fakeEntry](sess, staticLoad("Users"))
	ctx := context.Background()

	if _, _, err := set.GetEntry(ctx, "Users"); err != nil {
		t.Fatal(err)
	}
	err := set.DropEntry(ctx, DropInfo{Type: ObjectTable, Name: "Users", IgnoreNotFound: true})
	if err != nil {
		t.Fatalf("DropEntry() error: %v", err)
	}
	if len(sess.execs) != 1 || sess.execs[0] != "DROP TABLE IF EXISTS `Users`" {
		t.Errorf("executed %q", sess.execs)
	}
	if _, found, _ := set.GetEntry(ctx, "users"); found {
		t.Errorf("dropped entry still reachable via alias")
	}
}

func TestDropEntryRemoteFailureKeepsEntry(t *testing.T) {
	sess := &fakeSession{execErr: errors.New("access denied")}
	set := NewSet[*fakeEntry](sess, staticLoad("Users"))
	ctx := context.Background()

	err := set.DropEntry(ctx, DropInfo{Type: ObjectTable, Name: "Users"})
	if err == nil {
		t.Fatalf("DropEntry() succeeded, want error")
	}
	if _, found, _ := set.GetEntry(ctx, "Users"); !found {
		t.Errorf("entry removed although remote drop failed")
	}
}

func TestDropEntryPrefersContextSession(t *testing.T) {
	pooled := &fakeSession{}
	tx := &fakeSession{}
	set := NewSet[*fakeEntry](pooled, staticLoad("t"))
	ctx := mysql.WithSession(context.Background(), tx)

	if err := set.DropEntry(ctx, DropInfo{Type: ObjectTable, Name: "t"}); err != nil {
		t.Fatal(err)
	}
	if len(tx.execs) != 1 {
		t.Errorf("transaction session executed %d statements, want 1", len(tx.execs))
	}
	if len(pooled.execs) != 0 {
		t.Errorf("pooled session executed %q, want nothing", pooled.execs)
	}
}

func TestSetScanOrderAndEarlyStop(t *testing.T) {
	set := NewSet(nil, staticLoad("b", "a", "c"))
	ctx := context.Background()

	var seen []string
	err := set.Scan(ctx, func(e *fakeEntry) bool {
		seen = append(seen, e.Name())
		return len(seen) < 2
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("Scan visited %v, want [a b]", seen)
	}
}
