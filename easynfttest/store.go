package easynfttest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/easynft/easynft/store/iavl"
)

// CommitKVStore returns a disk backed commit store in a temporary
// directory, removed when the test ends.
func CommitKVStore(t testing.TB) *iavl.CommitStore {
	t.Helper()
	dir, err := ioutil.TempDir("", "easynft-store")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := iavl.NewCommitStore(dir, "test")
	if err != nil {
		t.Fatalf("cannot create commit store: %s", err)
	}
	return db
}
