package hashutil

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/panjf2000/ants"
	"github.com/pkg/errors"

	"sha2sum.org/sha2sum/config"
	"sha2sum.org/sha2sum/crypto/sha256"
	apperrors "sha2sum.org/sha2sum/errors"
	"sha2sum.org/sha2sum/logging"
)

// StdinName is the conventional name for standard input.
const StdinName = "-"

// Source is one byte stream to hash.
type Source struct {
	// Name identifies the source in results.
	Name string
	// Path is set for file backed sources, which makes them cacheable.
	Path string
	Open func() (io.ReadCloser, error)
}

// FileSource reads the file at path.
func FileSource(path string) Source {
	return Source{
		Name: path,
		Path: path,
		Open: func() (io.ReadCloser, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, errors.Wrapf(apperrors.New(apperrors.ErrOpenFile, err), "open %s", path)
			}
			return f, nil
		},
	}
}

// ReaderSource wraps an already open reader. It can be hashed only once.
func ReaderSource(name string, r io.Reader) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		},
	}
}

// Result pairs a source name with its digest or the error that stopped it.
type Result struct {
	Name   string
	Digest sha256.Digest
	Err    error
}

// Hasher hashes many sources concurrently, one engine per source.
type Hasher struct {
	chunkSize int
	workers   int
	cache     *DigestCache
}

// NewHasher builds a Hasher from the hash section of the configuration.
// A zero CacheSize disables the digest cache.
func NewHasher(cfg *config.Hash) *Hasher {
	if cfg == nil {
		cfg = config.DefaultHash()
	}
	h := &Hasher{
		chunkSize: cfg.ChunkSize,
		workers:   cfg.Workers,
	}
	if h.chunkSize <= 0 {
		h.chunkSize = config.DefaultChunkSize
	}
	if h.workers <= 0 {
		h.workers = 1
	}
	if cfg.CacheSize > 0 {
		h.cache = NewDigestCache(cfg.CacheSize)
	}
	return h
}

// Cache returns the digest cache, nil when disabled.
func (h *Hasher) Cache() *DigestCache { return h.cache }

// HashSource hashes a single source on the calling goroutine.
func (h *Hasher) HashSource(ctx context.Context, src Source) Result {
	result := Result{Name: src.Name}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	key := h.cacheKey(src)
	if key != "" {
		if st, err := os.Stat(src.Path); err == nil && st.Mode().IsRegular() {
			if d, ok := h.cache.Get(key, st); ok {
				logging.CPrint(logging.DEBUG, "digest cache hit", logging.LogFormat{"file": src.Path})
				result.Digest = d
				return result
			}
		}
	}

	rc, err := src.Open()
	if err != nil {
		result.Err = err
		return result
	}
	defer rc.Close()

	var before os.FileInfo
	if key != "" {
		before = statRegular(rc)
	}

	d, err := HashReaderContext(ctx, rc, h.chunkSize)
	if err != nil {
		result.Err = errors.Wrapf(err, "hash %s", src.Name)
		return result
	}
	result.Digest = d

	if before != nil {
		after := statRegular(rc)
		if after != nil && sameVersion(before, after) {
			h.cache.Add(key, after, d)
		} else {
			logging.CPrint(logging.DEBUG, "file changed while hashing, not cached", logging.LogFormat{"file": src.Path})
		}
	}
	return result
}

// cacheKey returns the absolute path src is cached under, empty when src
// is not cacheable.
func (h *Hasher) cacheKey(src Source) string {
	if h.cache == nil || src.Path == "" {
		return ""
	}
	abs, err := filepath.Abs(src.Path)
	if err != nil {
		return ""
	}
	return abs
}

// statRegular stats an opened source, nil unless it is a regular file.
func statRegular(rc io.ReadCloser) os.FileInfo {
	s, ok := rc.(interface{ Stat() (os.FileInfo, error) })
	if !ok {
		return nil
	}
	fi, err := s.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		return nil
	}
	return fi
}

func sameVersion(a, b os.FileInfo) bool {
	return a.Size() == b.Size() && a.ModTime().Equal(b.ModTime())
}

// Each hashes sources on a worker pool and calls fn with every result in
// input order. If fn returns an error, sources not yet started are abandoned
// and that error is returned.
func (h *Hasher) Each(ctx context.Context, sources []Source, fn func(Result) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pending, err := h.start(ctx, sources)
	if err != nil {
		return err
	}
	for _, ch := range pending {
		if err := fn(<-ch); err != nil {
			return err
		}
	}
	return nil
}

// HashSources hashes every source and returns the results in input order.
func (h *Hasher) HashSources(ctx context.Context, sources []Source) []Result {
	results := make([]Result, 0, len(sources))
	err := h.Each(ctx, sources, func(r Result) error {
		results = append(results, r)
		return nil
	})
	for _, src := range sources[len(results):] {
		results = append(results, Result{Name: src.Name, Err: err})
	}
	return results
}

// start submits every source to a fresh pool. Each returned channel
// receives exactly one result.
func (h *Hasher) start(ctx context.Context, sources []Source) ([]chan Result, error) {
	pool, err := ants.NewPool(h.workers)
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}

	pending := make([]chan Result, len(sources))
	for i := range pending {
		pending[i] = make(chan Result, 1)
	}

	go func() {
		defer pool.Release()
		for i, src := range sources {
			i, src := i, src
			if err := ctx.Err(); err != nil {
				pending[i] <- Result{Name: src.Name, Err: err}
				continue
			}
			if err := pool.Submit(func() {
				pending[i] <- h.HashSource(ctx, src)
			}); err != nil {
				pending[i] <- Result{Name: src.Name, Err: errors.Wrap(err, "submit to worker pool")}
			}
		}
	}()
	return pending, nil
}
