package usecases

import (
	"context"
	"fmt"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// fakeReader is an in-memory SourceReader for tests: sources are registered
// by path and returned verbatim, with Canonicalize a no-op identity
// function so test paths can be simple names like "base.yaml".
type fakeReader struct {
	sources map[string]*entities.Source
}

func newFakeReader() *fakeReader {
	return &fakeReader{sources: make(map[string]*entities.Source)}
}

func (f *fakeReader) add(path string, kind entities.SourceKind, raw map[string]any, order []string) {
	f.sources[path] = &entities.Source{Path: path, Kind: kind, Raw: raw, Order: order}
}

func (f *fakeReader) Read(ctx context.Context, path string) (*entities.Source, error) {
	src, ok := f.sources[path]
	if !ok {
		return nil, &entities.MissingSourceError{Path: path, Err: fmt.Errorf("no fixture registered for %q", path)}
	}
	return src, nil
}

func (f *fakeReader) Canonicalize(ctx context.Context, path string) (string, error) {
	return path, nil
}

// fakeThemeLoader returns pre-registered themes by explicit path or implicit name.
type fakeThemeLoader struct {
	explicit map[string]*entities.ThemeConfig
	implicit map[string]*entities.ThemeConfig
}

func newFakeThemeLoader() *fakeThemeLoader {
	return &fakeThemeLoader{
		explicit: make(map[string]*entities.ThemeConfig),
		implicit: make(map[string]*entities.ThemeConfig),
	}
}

func (f *fakeThemeLoader) LoadExplicit(path string) (*entities.ThemeConfig, error) {
	if t, ok := f.explicit[path]; ok {
		return t, nil
	}
	return nil, &entities.MissingSourceError{Path: path}
}

func (f *fakeThemeLoader) LoadImplicit(theme string) (*entities.ThemeConfig, error) {
	if t, ok := f.implicit[theme]; ok {
		return t, nil
	}
	return entities.NewThemeConfig(theme), nil
}

// fakeRandom is a deterministic RandomSource for tests: IntN/Int64 cycle
// through a fixed sequence, Shuffle is a no-op (keeps input order) so test
// expectations don't depend on a particular shuffle algorithm.
type fakeRandom struct {
	ints  []int
	pos   int
	int64 int64
}

func (r *fakeRandom) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.pos%len(r.ints)] % n
	r.pos++
	return v
}

func (r *fakeRandom) Shuffle(n int, swap func(i, j int)) {}

func (r *fakeRandom) Int64() int64 {
	r.int64++
	return r.int64
}
