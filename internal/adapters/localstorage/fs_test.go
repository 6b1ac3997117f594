package localstorage_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizharvest/internal/adapters/localstorage"
	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
)

func record(name string) domain.BusinessRecord {
	return domain.BusinessRecord{
		Name:            name,
		Phone:           "(208) 555-0100",
		Address:         "12 Main St, Boise, ID",
		YearsInBusiness: 12,
		Owner:           "Jane Roe",
		Website:         "https://example.com",
		SearchTerm:      "tree service",
		Location:        "Boise, ID",
	}
}

func TestEncodeRecords(t *testing.T) {
	var buf bytes.Buffer
	rec := record(`Bob's "Best" Trees`)
	rec.Owner = ""

	require.NoError(t, localstorage.EncodeRecords(&buf, []domain.BusinessRecord{rec}))

	want := localstorage.Header + "\n" +
		`"Bob's ""Best"" Trees","(208) 555-0100","12 Main St, Boise, ID","12","","https://example.com","tree service","Boise, ID"` + "\n"
	assert.Equal(t, want, buf.String())

	back, err := localstorage.DecodeRecords(&buf)
	require.NoError(t, err)
	assert.Equal(t, []domain.BusinessRecord{rec}, back)
}

func TestDecodeRecords_RejectsShortRows(t *testing.T) {
	_, err := localstorage.DecodeRecords(bytes.NewBufferString(localstorage.Header + "\n\"a\",\"b\"\n"))
	assert.Error(t, err)
}

func TestLocalStorage_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("no checkpoint in an empty directory", func(t *testing.T) {
		store := localstorage.NewLocalStorage(filepath.Join(t.TempDir(), "missing"))

		_, err := store.Load(ctx)
		assert.True(t, eris.Is(err, ports.ErrNoCheckpoint))
	})

	t.Run("newest progress file wins", func(t *testing.T) {
		dir := t.TempDir()
		store := localstorage.NewLocalStorage(dir)
		base := time.UnixMilli(1700000000000)

		require.NoError(t, store.Save(ctx, domain.Checkpoint{
			Records: []domain.BusinessRecord{record("A")},
			Visited: []string{"u1"},
			SavedAt: base,
		}))
		require.NoError(t, store.Save(ctx, domain.Checkpoint{
			Records: []domain.BusinessRecord{record("A"), record("B")},
			Visited: []string{"u1", "u2"},
			SavedAt: base.Add(time.Second),
		}))

		cp, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.BusinessRecord{record("A"), record("B")}, cp.Records)
		assert.Equal(t, []string{"u1", "u2"}, cp.Visited)
		assert.Equal(t, base.Add(time.Second).UnixMilli(), cp.SavedAt.UnixMilli())

		rolling, err := os.ReadFile(store.GetPath("results.csv"))
		require.NoError(t, err)
		back, err := localstorage.DecodeRecords(bytes.NewReader(rolling))
		require.NoError(t, err)
		assert.Len(t, back, 2)
	})

	t.Run("saves in the same millisecond keep separate files", func(t *testing.T) {
		dir := t.TempDir()
		at := time.UnixMilli(1700000000000)
		store := localstorage.NewLocalStorage(dir)

		require.NoError(t, store.Save(ctx, domain.Checkpoint{Records: []domain.BusinessRecord{record("A")}, SavedAt: at}))
		require.NoError(t, store.Save(ctx, domain.Checkpoint{Records: []domain.BusinessRecord{record("A"), record("B")}, SavedAt: at}))

		assert.FileExists(t, filepath.Join(dir, "progress_1700000000000.csv"))
		assert.FileExists(t, filepath.Join(dir, "progress_1700000000000_1.csv"))

		cp, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, cp.Records, 2)
	})

	t.Run("interrupted write leaves the prior snapshot readable", func(t *testing.T) {
		dir := t.TempDir()
		store := localstorage.NewLocalStorage(dir)
		prior := domain.Checkpoint{
			Records: []domain.BusinessRecord{record("A")},
			Visited: []string{"u1"},
			SavedAt: time.UnixMilli(1700000000000),
		}
		require.NoError(t, store.Save(ctx, prior))

		// A crash mid-save leaves only the temp file behind.
		partial := localstorage.Header + "\n\"B\",\"(208) 555"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".progress_1700000005000.csv.123.tmp"), []byte(partial), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".results.csv.456.tmp"), []byte(partial), 0644))

		cp, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, prior.Records, cp.Records)
		assert.Equal(t, prior.Visited, cp.Visited)
	})

	t.Run("save failing before the commit keeps the prior snapshot whole", func(t *testing.T) {
		dir := t.TempDir()
		store := localstorage.NewLocalStorage(dir)
		base := time.UnixMilli(1700000000000)
		prior := domain.Checkpoint{
			Records: []domain.BusinessRecord{record("A")},
			Visited: []string{"u1"},
			SavedAt: base,
		}
		require.NoError(t, store.Save(ctx, prior))

		// A non-empty directory where the next visited sidecar goes makes its rename fail.
		blocked := filepath.Join(dir, "progress_1700000001000.visited.json")
		require.NoError(t, os.MkdirAll(filepath.Join(blocked, "x"), 0755))

		err := store.Save(ctx, domain.Checkpoint{
			Records: []domain.BusinessRecord{record("A"), record("B")},
			Visited: []string{"u1", "u2"},
			SavedAt: base.Add(time.Second),
		})
		require.Error(t, err)

		cp, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, prior.Records, cp.Records)
		assert.Equal(t, prior.Visited, cp.Visited)
	})

	t.Run("save failing after the commit yields the new snapshot whole", func(t *testing.T) {
		dir := t.TempDir()
		store := localstorage.NewLocalStorage(dir)
		base := time.UnixMilli(1700000000000)
		require.NoError(t, store.Save(ctx, domain.Checkpoint{
			Records: []domain.BusinessRecord{record("A")},
			Visited: []string{"u1"},
			SavedAt: base,
		}))

		// The rolling results file can no longer be replaced.
		require.NoError(t, os.Remove(filepath.Join(dir, "results.csv")))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "results.csv", "x"), 0755))

		err := store.Save(ctx, domain.Checkpoint{
			Records: []domain.BusinessRecord{record("A"), record("B")},
			Visited: []string{"u1", "u2"},
			SavedAt: base.Add(time.Second),
		})
		require.Error(t, err)

		cp, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.BusinessRecord{record("A"), record("B")}, cp.Records)
		assert.Equal(t, []string{"u1", "u2"}, cp.Visited)
	})

	t.Run("each progress file loads with its own visited list", func(t *testing.T) {
		dir := t.TempDir()
		store := localstorage.NewLocalStorage(dir)
		require.NoError(t, store.Save(ctx, domain.Checkpoint{
			Records: []domain.BusinessRecord{record("A")},
			Visited: []string{"u1"},
			SavedAt: time.UnixMilli(1700000000000),
		}))

		// The rolling list running ahead of the newest progress file is ignored.
		require.NoError(t, os.WriteFile(filepath.Join(dir, "visited_urls.json"), []byte(`["u1","u2"]`), 0644))

		cp, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, cp.Visited)
		assert.FileExists(t, filepath.Join(dir, "progress_1700000000000.visited.json"))
	})

	t.Run("visited list alone still seeds a run", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "visited_urls.json"), []byte(`["u1","u2"]`), 0644))

		cp, err := localstorage.NewLocalStorage(dir).Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, cp.Records)
		assert.Equal(t, []string{"u1", "u2"}, cp.Visited)
	})
}

func TestLocalStorage_Finalize(t *testing.T) {
	dir := t.TempDir()
	store := localstorage.NewLocalStorage(dir).WithClock(func() time.Time { return time.UnixMilli(1700000009000) })

	path, err := store.Finalize(context.Background(), domain.Checkpoint{Records: []domain.BusinessRecord{record("A")}})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "final_1700000009000.csv"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	back, err := localstorage.DecodeRecords(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []domain.BusinessRecord{record("A")}, back)
}
