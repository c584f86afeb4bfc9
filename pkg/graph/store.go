package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"corgraph/pkg/logger"
	"corgraph/pkg/records"

	"golang.org/x/sync/errgroup"
)

// Store is an explicit group-name-keyed table of assembled graphs, owned by
// the caller. There is no process-wide registry; construct a Store and pass
// it where it is needed.
type Store struct {
	graphs map[string]*Graph
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		graphs: make(map[string]*Graph),
	}
}

// Add registers an assembled graph under its group name, replacing any
// earlier graph for that group.
func (s *Store) Add(g *Graph) {
	s.graphs[g.Group] = g
}

// Get returns the assembled graph for the named group. Asking for a group
// that was never assembled is caller misuse and yields a hard error.
func (s *Store) Get(group string) (*Graph, error) {
	g, ok := s.graphs[group]
	if !ok {
		return nil, fmt.Errorf("group %q not found in loaded data", group)
	}
	return g, nil
}

// Names returns the names of all assembled groups in ascending order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.graphs))
	for name := range s.graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Loader assembles group graphs from a record source. Groups are
// independent of each other and are processed by parallel workers; the
// only shared state is the store collecting the results.
type Loader struct {
	source         records.Source
	baseDir        string
	parallelGroups int
}

// NewLoaderParams defines the configuration parameters for creating a new
// Loader.
//
// Source provides record-set file contents (filesystem, S3, ...).
// BaseDir is the directory prefix containing one subdirectory per group.
// ParallelGroups controls how many groups are assembled concurrently.
type NewLoaderParams struct {
	Source         records.Source
	BaseDir        string
	ParallelGroups int
}

// NewLoader creates a new Loader configured with the provided parameters.
func NewLoader(params NewLoaderParams) *Loader {
	parallel := params.ParallelGroups
	if parallel <= 0 {
		parallel = 4
	}
	return &Loader{
		source:         params.Source,
		baseDir:        params.BaseDir,
		parallelGroups: parallel,
	}
}

// LoadAll loads and assembles every named group and collects the graphs
// into a fresh store. Per-file read failures are reported but do not abort
// the run; a group with missing or unreadable record sets still produces a
// graph from whatever sets could be read.
func (l *Loader) LoadAll(ctx context.Context, groups []string) (*Store, error) {
	store := NewStore()

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(l.parallelGroups)
	mutex := sync.Mutex{}

	logger.Info("Loading corporate structure data", "groups", len(groups))

	for _, group := range groups {
		name := group
		eg.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
				files := records.GroupFiles(name, l.baseDir, l.source)
				sets, errs := records.LoadSets(gCtx, files)
				if len(errs) > 0 {
					logger.Warn("Group loaded with unreadable record sets",
						"group", name, "failed_sets", len(errs))
				}

				g := Assemble(name, sets)

				mutex.Lock()
				defer mutex.Unlock()
				store.Add(g)

				return nil
			}
		})
	}

	if err := eg.Wait(); err != nil {
		return store, fmt.Errorf("failed to load groups: %w", err)
	}

	logger.Info("Data loading complete", "groups", len(store.Names()))
	return store, nil
}
