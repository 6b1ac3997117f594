package localstorage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
)

const (
	resultsFile    = "results.csv"
	visitedFile    = "visited_urls.json"
	progressPrefix = "progress_"
	finalPrefix    = "final_"
	csvExt         = ".csv"
	sidecarExt     = ".visited.json"
)

// LocalStorage implements ports.CheckpointStore on the local filesystem.
//
// Layout under BaseDir:
//
//	progress_<unixms>.csv           one file per save, the newest seeds the next run
//	progress_<unixms>.visited.json  the visited list saved with that progress file
//	results.csv, visited_urls.json  rolling copies of the latest save
//	final_<unixms>.csv              written once at normal completion
type LocalStorage struct {
	BaseDir string
	now     func() time.Time
}

var _ ports.CheckpointStore = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir, now: time.Now}
}

// WithClock replaces the clock used to stamp file names.
func (s *LocalStorage) WithClock(now func() time.Time) *LocalStorage {
	s.now = now
	return s
}

// Init creates the output directory.
func (s *LocalStorage) Init(ctx context.Context) error {
	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return eris.Wrapf(err, "failed to create output directory %s", s.BaseDir)
	}
	return nil
}

// Save writes one snapshot. The snapshot's visited list goes to a sidecar next
// to its progress file, and the progress file is renamed into place last: it is
// the commit point, so Load sees either the previous snapshot or this one.
// results.csv and visited_urls.json are rolling copies written after the commit.
func (s *LocalStorage) Save(ctx context.Context, cp domain.Checkpoint) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	name := s.stampedName(progressPrefix, cp.SavedAt)
	if err := s.writeVisited(sidecarName(name), cp.Visited); err != nil {
		return err
	}
	if err := s.writeRecords(name, cp.Records); err != nil {
		return err
	}

	if err := s.writeRecords(resultsFile, cp.Records); err != nil {
		return err
	}
	return s.writeVisited(visitedFile, cp.Visited)
}

// Finalize writes the end-of-run export and returns its path.
func (s *LocalStorage) Finalize(ctx context.Context, cp domain.Checkpoint) (string, error) {
	if err := s.Save(ctx, cp); err != nil {
		return "", err
	}
	name := s.stampedName(finalPrefix, cp.SavedAt)
	if err := s.writeRecords(name, cp.Records); err != nil {
		return "", err
	}
	return filepath.Join(s.BaseDir, name), nil
}

// Load returns the newest committed snapshot: the latest progress file and the
// visited list saved with it. With no progress file, a visited_urls.json alone
// still seeds the visited set.
func (s *LocalStorage) Load(ctx context.Context) (domain.Checkpoint, error) {
	var cp domain.Checkpoint

	latest, savedAt, err := s.latestProgress()
	if err != nil {
		return cp, err
	}
	if latest == "" {
		visited, ok, err := s.readVisited(visitedFile)
		if err != nil {
			return cp, err
		}
		if !ok {
			return cp, eris.Wrapf(ports.ErrNoCheckpoint, "nothing saved in %s", s.BaseDir)
		}
		cp.Visited = visited
		return cp, nil
	}

	f, err := os.Open(s.GetPath(latest))
	if err != nil {
		return cp, eris.Wrapf(err, "failed to open %s", latest)
	}
	defer f.Close()

	records, err := DecodeRecords(f)
	if err != nil {
		return cp, eris.Wrapf(err, "failed to read %s", latest)
	}

	visited, ok, err := s.readVisited(sidecarName(latest))
	if err != nil {
		return cp, err
	}
	if !ok {
		// Progress files written without a sidecar.
		if visited, _, err = s.readVisited(visitedFile); err != nil {
			return cp, err
		}
	}

	cp.Records = records
	cp.Visited = visited
	cp.SavedAt = savedAt
	return cp, nil
}

// GetPath returns the path of a file inside the output directory.
func (s *LocalStorage) GetPath(name string) string {
	return filepath.Join(s.BaseDir, name)
}

func (s *LocalStorage) writeVisited(name string, urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	return writeFileAtomic(s.GetPath(name), func(w io.Writer) error {
		return json.NewEncoder(w).Encode(urls)
	})
}

func (s *LocalStorage) readVisited(name string) ([]string, bool, error) {
	data, err := os.ReadFile(s.GetPath(name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrapf(err, "failed to read %s", name)
	}
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil, false, eris.Wrapf(err, "failed to decode %s", name)
	}
	return urls, true, nil
}

func (s *LocalStorage) writeRecords(name string, records []domain.BusinessRecord) error {
	return writeFileAtomic(s.GetPath(name), func(w io.Writer) error {
		return EncodeRecords(w, records)
	})
}

// stampedName returns prefix_<unixms>.csv, adding a _n suffix when a file of that
// name already exists so every save keeps its own file.
func (s *LocalStorage) stampedName(prefix string, at time.Time) string {
	if at.IsZero() {
		at = s.now()
	}
	base := prefix + strconv.FormatInt(at.UnixMilli(), 10)
	name := base + csvExt
	for n := 1; ; n++ {
		if _, err := os.Stat(s.GetPath(name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s_%d%s", base, n, csvExt)
	}
}

type stamped struct {
	name string
	ms   int64
	seq  int
}

func (s *LocalStorage) latestProgress() (string, time.Time, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if os.IsNotExist(err) {
		return "", time.Time{}, nil
	}
	if err != nil {
		return "", time.Time{}, eris.Wrapf(err, "failed to list %s", s.BaseDir)
	}

	var files []stamped
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if st, ok := parseStamped(e.Name(), progressPrefix); ok {
			files = append(files, st)
		}
	}
	if len(files) == 0 {
		return "", time.Time{}, nil
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].ms != files[j].ms {
			return files[i].ms > files[j].ms
		}
		return files[i].seq > files[j].seq
	})
	return files[0].name, time.UnixMilli(files[0].ms), nil
}

func parseStamped(name, prefix string) (stamped, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, csvExt) {
		return stamped{}, false
	}
	core := strings.TrimSuffix(strings.TrimPrefix(name, prefix), csvExt)
	msPart, seqPart, hasSeq := strings.Cut(core, "_")
	ms, err := strconv.ParseInt(msPart, 10, 64)
	if err != nil {
		return stamped{}, false
	}
	seq := 0
	if hasSeq {
		if seq, err = strconv.Atoi(seqPart); err != nil {
			return stamped{}, false
		}
	}
	return stamped{name: name, ms: ms, seq: seq}, true
}

// sidecarName maps progress_<ms>.csv to progress_<ms>.visited.json.
func sidecarName(progress string) string {
	return strings.TrimSuffix(progress, csvExt) + sidecarExt
}
