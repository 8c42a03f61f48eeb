package locate

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/mmadfox/geocontains"
	"github.com/mmadfox/geocontains/internal/hash"
)

var (
	ErrGeometryNotFound = errors.New("geocontains/locate: geometry not found")
	ErrGeometryExists   = errors.New("geocontains/locate: geometry already exists")
	ErrEmptyID          = errors.New("geocontains/locate: empty geometry id")
)

const bucketCount = 32

type Option func(*Index)

func WithLogger(logger *zap.Logger) Option {
	return func(i *Index) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithWorkers bounds the number of concurrent evaluations. Zero means
// runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(i *Index) {
		i.workers = n
	}
}

func WithOptions(opts geocontains.Options) Option {
	return func(i *Index) {
		i.opts = opts
	}
}

// Index is a registry of named geometries answering which of them contain
// a point. It is safe for concurrent use.
type Index struct {
	buckets []*bucket
	opts    geocontains.Options
	workers int
	logger  *zap.Logger
}

type bucket struct {
	sync.RWMutex
	index map[string]geocontains.Geometry
}

type entry struct {
	id       string
	geometry geocontains.Geometry
}

func New(opts ...Option) (*Index, error) {
	i := &Index{
		buckets: make([]*bucket, bucketCount),
		opts:    geocontains.DefaultOptions(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.workers < 0 {
		return nil, fmt.Errorf("geocontains/locate: negative workers %d", i.workers)
	}
	if i.workers == 0 {
		i.workers = runtime.NumCPU()
	}
	if _, err := geocontains.ContainsWith(nil, geocontains.Point{}, i.opts); err != nil {
		return nil, err
	}
	for n := range i.buckets {
		i.buckets[n] = &bucket{index: make(map[string]geocontains.Geometry)}
	}
	return i, nil
}

// Add registers g under id. The structure of g is checked once here so
// that lookups never fail on it.
func (i *Index) Add(_ context.Context, id string, g geocontains.Geometry) error {
	if len(id) == 0 {
		return ErrEmptyID
	}
	if err := geocontains.Check(g, i.opts.MaxDepth); err != nil {
		return fmt.Errorf("geocontains/locate: %s: %w", id, err)
	}
	b := i.bucket(id)
	b.Lock()
	defer b.Unlock()
	if _, ok := b.index[id]; ok {
		return fmt.Errorf("%w: %s", ErrGeometryExists, id)
	}
	b.index[id] = g
	i.logger.Debug("geometry added", zap.String("id", id), zap.Stringer("kind", kindOf(g)))
	return nil
}

// AddFeatures registers every feature of fc under its ID, or under its
// position in fc when the ID is empty. All failures are reported together;
// the features that could be added stay registered.
func (i *Index) AddFeatures(ctx context.Context, fc geocontains.FeatureCollection) error {
	var errs *multierror.Error
	for n, feature := range fc {
		id := feature.ID
		if len(id) == 0 {
			id = strconv.Itoa(n)
		}
		if err := i.Add(ctx, id, feature); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("feature #%d: %w", n, err))
		}
	}
	return errs.ErrorOrNil()
}

func (i *Index) Delete(_ context.Context, id string) error {
	b := i.bucket(id)
	b.Lock()
	defer b.Unlock()
	if _, ok := b.index[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGeometryNotFound, id)
	}
	delete(b.index, id)
	i.logger.Debug("geometry deleted", zap.String("id", id))
	return nil
}

func (i *Index) Lookup(_ context.Context, id string) (geocontains.Geometry, error) {
	b := i.bucket(id)
	b.RLock()
	defer b.RUnlock()
	g, ok := b.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGeometryNotFound, id)
	}
	return g, nil
}

func (i *Index) Len() int {
	var n int
	for _, b := range i.buckets {
		b.RLock()
		n += len(b.index)
		b.RUnlock()
	}
	return n
}

// Locate returns the sorted ids of the registered geometries containing p.
func (i *Index) Locate(ctx context.Context, p geocontains.Point) ([]string, error) {
	entries := i.snapshot()
	var (
		mu  sync.Mutex
		ids []string
	)
	group, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(i.workers))
	for _, e := range entries {
		e := e
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		group.Go(func() error {
			defer sem.Release(1)
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := geocontains.ContainsWith(e.geometry, p, i.opts)
			if err != nil {
				return fmt.Errorf("geocontains/locate: %s: %w", e.id, err)
			}
			if ok {
				mu.Lock()
				ids = append(ids, e.id)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(ids)
	i.logger.Debug("point located",
		zap.Stringer("point", p),
		zap.Int("candidates", len(entries)),
		zap.Strings("ids", ids))
	return ids, nil
}

// ContainsEach evaluates g against every point concurrently. The result
// has one entry per point, in order.
func (i *Index) ContainsEach(ctx context.Context, g geocontains.Geometry, points []geocontains.Point) ([]bool, error) {
	if err := geocontains.Check(g, i.opts.MaxDepth); err != nil {
		return nil, err
	}
	result := make([]bool, len(points))
	group, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(i.workers))
	for n := range points {
		n := n
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		group.Go(func() error {
			defer sem.Release(1)
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := geocontains.ContainsWith(g, points[n], i.opts)
			if err != nil {
				return err
			}
			result[n] = ok
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (i *Index) snapshot() []entry {
	var entries []entry
	for _, b := range i.buckets {
		b.RLock()
		for id, g := range b.index {
			entries = append(entries, entry{id: id, geometry: g})
		}
		b.RUnlock()
	}
	return entries
}

func (i *Index) bucket(id string) *bucket {
	return i.buckets[hash.Bucket(id, len(i.buckets))]
}

type nullKind struct{}

func (nullKind) String() string { return "null" }

func kindOf(g geocontains.Geometry) fmt.Stringer {
	if g == nil {
		return nullKind{}
	}
	return g.Kind()
}
