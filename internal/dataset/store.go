package dataset

import (
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
)

// Dataset is the loaded, immutable view of one data directory: both table
// mappings plus the joined per-group summaries.
type Dataset struct {
	Dir         string
	Environment map[string]*Table
	Growth      map[string]*Table
	Summaries   []Summary
	Groups      []string // sorted union of group labels
}

type storeEntry struct {
	ds  *Dataset
	err error
}

// Store memoizes dataset loads per distinct directory. Entries are
// write-once-then-immutable: the first Load for a directory reads the
// filesystem under the lock, every later Load returns the same value
// without touching disk. There is no invalidation; a session observes one
// consistent snapshot.
type Store struct {
	targets ECTargets

	mu    sync.Mutex
	byDir map[string]*storeEntry
}

func NewStore(targets ECTargets) *Store {
	return &Store{
		targets: targets,
		byDir:   make(map[string]*storeEntry),
	}
}

// Load returns the dataset for dir, reading the filesystem only on the
// first call per directory. Both sources are required: a missing directory
// or a missing source is the load's error outcome and is memoized like a
// success, so repeated calls report the same condition.
func (s *Store) Load(dir string) (*Dataset, error) {
	key, err := filepath.Abs(dir)
	if err != nil {
		key = dir
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.byDir[key]; ok {
		return e.ds, e.err
	}

	e := &storeEntry{}
	e.ds, e.err = load(dir, s.targets)
	s.byDir[key] = e
	return e.ds, e.err
}

// Targets returns the treatment-level configuration the store was built
// with.
func (s *Store) Targets() ECTargets {
	return s.targets
}

func load(dir string, targets ECTargets) (*Dataset, error) {
	env, err := LoadEnvironmentTables(dir)
	if err != nil {
		return nil, err
	}
	growth, err := LoadGrowthTables(dir)
	if err != nil {
		return nil, err
	}

	summaries := JoinByGroup(env, growth, targets)
	groups := make([]string, 0, len(summaries))
	for _, s := range summaries {
		groups = append(groups, s.Group)
	}
	sort.Strings(groups)

	slog.Info("dataset loaded",
		"dir", dir,
		"envTables", len(env),
		"growthTables", len(growth),
		"groups", len(groups),
	)
	return &Dataset{
		Dir:         dir,
		Environment: env,
		Growth:      growth,
		Summaries:   summaries,
		Groups:      groups,
	}, nil
}
