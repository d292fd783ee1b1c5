package offsetgrid_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/hupe1980/offsetgrid"
	"github.com/hupe1980/offsetgrid/blobstore"
	"github.com/hupe1980/offsetgrid/persistence"
)

func ExampleMatrix() {
	m := offsetgrid.New[int](0)

	m.Set(5, 5, 7)
	m.Set(3, 3, 9)

	fmt.Println("rows:", m.Min(), "..", m.Max())
	fmt.Println("m[3][3] =", m.Get(3, 3))
	fmt.Println("m[5][5] =", m.Get(5, 5))
	fmt.Println("m[4][0] =", m.Get(4, 0)) // row exists but is empty
	fmt.Println("m[9][9] =", m.Get(9, 9)) // outside the window
	// Output:
	// rows: 3 .. 5
	// m[3][3] = 9
	// m[5][5] = 7
	// m[4][0] = 0
	// m[9][9] = 0
}

func ExampleVector() {
	v := offsetgrid.NewVector(999)

	v.Set(42, 42)
	v.Set(20, 10)
	v.Set(40, 1)
	v.Set(42, 69)

	fmt.Println("window:", v.Min(), "..", v.Max())
	fmt.Println("v[42] =", v.Get(42))
	fmt.Println("v[30] =", v.Get(30)) // filler cell holds the default
	fmt.Println("v[19] =", v.Get(19)) // outside the window
	// Output:
	// window: 20 .. 42
	// v[42] = 69
	// v[30] = 999
	// v[19] = 999
}

// Persistence round trip through a local file. Written as a test rather
// than an Example because it touches the filesystem.
func TestExample_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.bin")

	m := offsetgrid.New[int32](-1)
	m.Set(-2, 10, 100)
	m.Set(4, -3, 200)

	if err := persistence.SaveFile(path, m); err != nil {
		t.Fatal(err)
	}

	loaded := offsetgrid.New[int32](-1)
	if err := persistence.LoadFile(path, loaded); err != nil {
		t.Fatal(err)
	}

	if got := loaded.Get(-2, 10); got != 100 {
		t.Fatalf("got %d, want 100", got)
	}
	if got := loaded.Get(4, -3); got != 200 {
		t.Fatalf("got %d, want 200", got)
	}
}

// Snapshot transport through a blob store with compression.
func TestExample_StoreSnapshot(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	m := offsetgrid.New[float64](0)
	m.Set(0, 0, 3.14)
	m.Set(1, 100, 2.72)

	err := persistence.SaveToStore(ctx, store, "grids/example.snap", m,
		persistence.WithCompression(persistence.CompressionLZ4))
	if err != nil {
		t.Fatal(err)
	}

	loaded := offsetgrid.New[float64](0)
	if err := persistence.LoadFromStore(ctx, store, "grids/example.snap", loaded); err != nil {
		t.Fatal(err)
	}

	if got := loaded.Get(1, 100); got != 2.72 {
		t.Fatalf("got %v, want 2.72", got)
	}
}
