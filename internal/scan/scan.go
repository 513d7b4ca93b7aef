// Package scan discovers VHDL design-library source files. It is ambient
// tooling the distilled specification never names — a front-end needs to
// find its sources before internal/ir.Builder can parse them — built the
// way the teacher repo's core.FileWalker discovers source files: a worker
// pool fed by a single recursive directory scanner, doublestar for glob
// matching.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Scope bounds one Walk: where to start, which files to keep, and how deep
// or wide to go.
type Scope struct {
	Path           string
	Include        []string
	Exclude        []string
	MaxDepth       int
	MaxFiles       int
	FollowSymlinks bool
}

// Result is one discovered design file, or a directory-read error recorded
// against the path that produced it.
type Result struct {
	Path  string
	Info  os.FileInfo
	Error error
}

// defaultInclude matches VHDL source files when Scope.Include is empty.
var defaultInclude = []string{"**/*.vhd", "**/*.vhdl"}

// Walker performs parallel directory traversal sized to the host, mirroring
// core.FileWalker's 2x-CPU worker count for I/O-bound discovery.
type Walker struct {
	workers    int
	bufferSize int
}

// NewWalker builds a Walker with a worker count tuned for I/O-bound file
// discovery (spec.md has no opinion here; this is pack-sourced tooling).
func NewWalker() *Walker {
	return &Walker{
		workers:    runtime.NumCPU() * 2,
		bufferSize: 256,
	}
}

// Walk discovers files under scope.Path, streaming results as they're
// found. The returned channel closes once traversal and all workers finish.
func (w *Walker) Walk(ctx context.Context, scope Scope) (<-chan Result, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}

	paths := make(chan string, w.bufferSize)
	results := make(chan Result, w.bufferSize)

	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go w.worker(ctx, paths, results, &wg)
	}

	go func() {
		defer close(paths)
		processed := 0
		var visited map[string]struct{}
		if scope.FollowSymlinks {
			visited = make(map[string]struct{})
			if resolved, err := filepath.EvalSymlinks(scope.Path); err == nil {
				visited[resolved] = struct{}{}
			}
		}
		scanDirectory(ctx, scope.Path, scope, paths, 0, &processed, visited)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, nil
}

func (w *Walker) worker(ctx context.Context, paths <-chan string, results chan<- Result, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-paths:
			if !ok {
				return
			}
			info, err := os.Stat(path)
			select {
			case <-ctx.Done():
				return
			case results <- Result{Path: path, Info: info, Error: err}:
			}
		}
	}
}

func scanDirectory(
	ctx context.Context,
	dirPath string,
	scope Scope,
	paths chan<- string,
	depth int,
	processed *int,
	visited map[string]struct{},
) {
	if scope.MaxFiles > 0 && *processed >= scope.MaxFiles {
		return
	}
	select {
	case <-ctx.Done():
		return
	default:
	}
	if scope.MaxDepth > 0 && depth > scope.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		if matchesAny(fullPath, scope.Exclude) {
			continue
		}

		if entry.IsDir() {
			next := fullPath
			if scope.FollowSymlinks {
				if resolved, err := filepath.EvalSymlinks(fullPath); err == nil {
					next = resolved
				}
			}
			if visited != nil {
				if _, seen := visited[next]; seen {
					continue
				}
				visited[next] = struct{}{}
			}
			scanDirectory(ctx, fullPath, scope, paths, depth+1, processed, visited)
			continue
		}

		include := scope.Include
		if len(include) == 0 {
			include = defaultInclude
		}
		if matchesAny(fullPath, include) {
			if scope.MaxFiles > 0 && *processed >= scope.MaxFiles {
				return
			}
			select {
			case <-ctx.Done():
				return
			case paths <- fullPath:
				*processed++
			}
		}
	}
}

func matchesAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if matched, err := doublestar.PathMatch(p, path); err == nil && matched {
			return true
		}
		if !strings.Contains(p, "/") {
			if matched, err := doublestar.PathMatch(p, filepath.Base(path)); err == nil && matched {
				return true
			}
		}
	}
	return false
}

func validateScope(scope Scope) error {
	if scope.Path == "" {
		return fmt.Errorf("scan: path is required")
	}
	info, err := os.Stat(scope.Path)
	if err != nil {
		return fmt.Errorf("scan: cannot access path %s: %w", scope.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("scan: path %s is not a directory", scope.Path)
	}
	return nil
}

// Discover runs Walk to completion and returns the sorted-by-discovery-order
// list of matched paths, skipping any that errored.
func (w *Walker) Discover(ctx context.Context, scope Scope) ([]string, error) {
	results, err := w.Walk(ctx, scope)
	if err != nil {
		return nil, err
	}
	var files []string
	for r := range results {
		if r.Error != nil {
			continue
		}
		files = append(files, r.Path)
	}
	return files, nil
}
