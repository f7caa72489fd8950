package assets

import (
	"context"
	"fmt"
	"image"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Kind says which scene slot a loaded image fills.
type Kind uint8

const (
	KindCloud Kind = iota
	KindBackdrop
	KindGalaxy
)

func (k Kind) String() string {
	switch k {
	case KindCloud:
		return "cloud"
	case KindBackdrop:
		return "backdrop"
	case KindGalaxy:
		return "galaxy"
	default:
		return "unknown"
	}
}

// Result is one settled load. Index is the galaxy slot for KindGalaxy.
type Result struct {
	Kind  Kind
	Index int
	Name  string
	Image image.Image
	Err   error
}

// Batch describes a started load. Results is closed once every load settled.
type Batch struct {
	Galaxy  []string
	Results <-chan Result
}

// Loader decodes the scene images in the background.
type Loader struct {
	FS          fs.FS
	Logger      *zap.Logger
	Concurrency int
}

// GalaxyNames lists the galaxy sprites in numeric order (galaxy-2 before
// galaxy-10). Names without a number sort last, by name.
func GalaxyNames(fsys fs.FS) ([]string, error) {
	names, err := fs.Glob(fsys, GalaxyGlob)
	if err != nil {
		return nil, fmt.Errorf("assets: list galaxy sprites: %w", err)
	}
	sort.SliceStable(names, func(i, j int) bool {
		ni, oki := galaxyNumber(names[i])
		nj, okj := galaxyNumber(names[j])
		switch {
		case oki && okj && ni != nj:
			return ni < nj
		case oki != okj:
			return oki
		default:
			return names[i] < names[j]
		}
	})
	return names, nil
}

func galaxyNumber(name string) (int, bool) {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	n, err := strconv.Atoi(strings.TrimPrefix(base, "galaxy-"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Start discovers the sprite set and decodes every image concurrently. The
// returned channel is buffered for every result so loaders never block on a
// slow consumer.
func (l *Loader) Start(ctx context.Context) (Batch, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fsys := l.FS
	if fsys == nil {
		fsys = FS()
	}
	galaxy, err := GalaxyNames(fsys)
	if err != nil {
		return Batch{}, err
	}

	type job struct {
		kind  Kind
		index int
		name  string
	}
	jobs := []job{{kind: KindCloud, name: CloudFile}, {kind: KindBackdrop, name: BackdropFile}}
	for i, name := range galaxy {
		jobs = append(jobs, job{kind: KindGalaxy, index: i, name: name})
	}

	results := make(chan Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if l.Concurrency > 0 {
		g.SetLimit(l.Concurrency)
	}
	go func() {
		for _, j := range jobs {
			g.Go(func() error {
				res := Result{Kind: j.kind, Index: j.index, Name: j.name}
				if err := ctx.Err(); err != nil {
					res.Err = err
				} else {
					res.Image, res.Err = LoadImage(fsys, j.name)
				}
				if res.Err != nil {
					logger.Warn("asset failed to load", zap.String("asset", j.name), zap.Stringer("kind", j.kind), zap.Error(res.Err))
				} else {
					logger.Debug("asset loaded", zap.String("asset", j.name), zap.Stringer("kind", j.kind))
				}
				results <- res
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	return Batch{Galaxy: galaxy, Results: results}, nil
}
