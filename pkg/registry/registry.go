package registry

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/dlclark/regexp2"
	"github.com/scylladb/go-set/strset"
	"github.com/sirupsen/logrus"

	"github.com/filekit/dupfind/pkg/config"
	"github.com/filekit/dupfind/pkg/expression"
	"github.com/filekit/dupfind/pkg/fileid"
	"github.com/filekit/dupfind/pkg/logger"
)

// Registry builds the candidate file set from command-line paths and/or
// stdin, deduplicated by path. Only regular files are kept.
type Registry struct {
	opts    config.Options
	log     *logrus.Entry
	statFn  func(string) (os.FileInfo, error)
	ignores []*regexp2.Regexp
	filter  *expression.CompiledExpression

	mu       sync.Mutex
	seen     *strset.Set
	records  []*FileRecord
	failures int
}

// New creates a registry. Ignore patterns and the filter expression are
// compiled up front so a bad pattern fails before any filesystem work.
func New(opts config.Options, scanCfg config.ScanConfig) (*Registry, error) {
	r := &Registry{
		opts: opts,
		log:  logger.GetLogger("registry"),
		seen: strset.New(),
	}

	// follow symlinks: stat resolves the link, lstat reports the link itself
	if opts.FollowSymlinks {
		r.statFn = os.Stat
	} else {
		r.statFn = os.Lstat
	}

	for _, pattern := range scanCfg.IgnorePatterns {
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, err
		}
		r.ignores = append(r.ignores, re)
	}

	if scanCfg.Filter != "" {
		compiled, err := expression.Compile(scanCfg.Filter)
		if err != nil {
			return nil, err
		}
		r.filter = compiled
	}

	return r, nil
}

// AddPath registers a single filesystem object: regular files directly,
// directories by recursion when enabled.
func (r *Registry) AddPath(name string) {
	info, err := r.statFn(name)
	if err != nil {
		r.log.WithError(err).Warnf("Unable to stat %q", name)
		r.fail()
		return
	}

	switch {
	case info.Mode().IsRegular():
		r.addFile(name, info)
	case info.IsDir():
		if r.opts.Recurse {
			r.addTree(name)
		} else {
			r.log.Warnf("%q is a directory - ignored", name)
		}
	}
}

// AddFrom registers one path per line from in, typically stdin.
func (r *Registry) AddFrom(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		r.AddPath(name)
	}
	if err := scanner.Err(); err != nil {
		r.log.WithError(err).Warn("Failed reading file names from input")
		r.fail()
	}
}

// Records returns the registered files ordered by path.
func (r *Registry) Records() []*FileRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]*FileRecord, len(r.records))
	copy(records, r.records)
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})

	return records
}

// Failures reports how many paths could not be inspected. A non-zero value
// marks the whole run failed while processing continues.
func (r *Registry) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures
}

func (r *Registry) addTree(root string) {
	conf := &fastwalk.Config{
		Follow: r.opts.FollowSymlinks,
	}

	err := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.log.WithError(err).Warnf("Unable to read %q", path)
			r.fail()
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			r.log.WithError(err).Warnf("Unable to stat %q", path)
			r.fail()
			return nil
		}

		r.addFile(path, info)
		return nil
	})
	if err != nil {
		r.log.WithError(err).Warnf("Unable to read directory %q", root)
		r.fail()
	}
}

func (r *Registry) addFile(path string, info os.FileInfo) {
	if info.Size() == 0 && r.opts.SkipEmpty {
		return
	}

	if r.isIgnored(path) {
		r.log.Tracef("Path matches an ignore pattern, skipping: %q", path)
		return
	}

	id, nlink, ok := fileid.FromFileInfo(info)
	if !ok {
		var err error
		id, nlink, err = fileid.Stat(path)
		if err != nil {
			r.log.WithError(err).Warnf("Unable to get file identity for %q", path)
			r.fail()
			return
		}
	}

	if r.filter != nil {
		match, err := r.filter.Match(&expression.Env{
			Path:  path,
			Name:  filepath.Base(path),
			Dir:   filepath.Dir(path),
			Size:  info.Size(),
			Links: nlink,
		})
		if err != nil {
			r.log.WithError(err).Warnf("Failed evaluating filter for %q", path)
			return
		}
		if !match {
			r.log.Tracef("Filter rejected candidate: %q", path)
			return
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seen.Has(path) {
		if !r.opts.Quiet {
			r.log.Warnf("Filename %q already seen", path)
		}
		return
	}
	r.seen.Add(path)

	r.records = append(r.records, &FileRecord{
		Path:  path,
		Size:  info.Size(),
		Links: nlink,
		Mode:  info.Mode(),
		ID:    id,
	})
}

func (r *Registry) isIgnored(path string) bool {
	for _, re := range r.ignores {
		if matched, err := re.MatchString(path); err == nil && matched {
			return true
		}
	}
	return false
}

func (r *Registry) fail() {
	r.mu.Lock()
	r.failures++
	r.mu.Unlock()
}
