package publish

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/paths"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"
)

// pipelinePublisher plans a whole set as synthfs operations against the
// operating system filesystem. Sources are read through fs.
type pipelinePublisher struct {
	fs        types.FS
	aliases   *paths.Aliases
	publicDir string
	urlPrefix string
	target    synthfs.FileSystem
	logger    zerolog.Logger
}

// NewPipelinePublisher creates a publisher that writes publicDir on disk
// through synthfs pipelines. fs must see the same disk.
func NewPipelinePublisher(fs types.FS, aliases *paths.Aliases, publicDir, urlPrefix string) (Publisher, error) {
	abs, err := filepath.Abs(publicDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPublish, "cannot resolve public directory %s", publicDir)
	}
	if aliases == nil {
		aliases = paths.NewAliases()
	}
	if urlPrefix == "" {
		urlPrefix = DefaultURLPrefix
	}
	return &pipelinePublisher{
		fs:        fs,
		aliases:   aliases,
		publicDir: abs,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		target:    filesystem.NewOSFileSystem("/"),
		logger:    logging.GetLogger("publish"),
	}, nil
}

func (p *pipelinePublisher) Publish(sourcePath string) (string, error) {
	servable, err := p.PublishAll([]string{sourcePath})
	if err != nil {
		return "", err
	}
	return servable[0], nil
}

type copyPlan struct {
	source string
	dest   string
	data   []byte
}

// PublishAll copies every source in one planning pass: missing directories
// are created shallowest first, stale copies are removed, then one create
// operation per file runs in a single pipeline
func (p *pipelinePublisher) PublishAll(sources []string) ([]string, error) {
	servable := make([]string, 0, len(sources))
	var plans []copyPlan
	planned := map[string]bool{}

	for _, sourcePath := range sources {
		if sourcePath == "" {
			return nil, errors.New(errors.ErrInvalidInput, "cannot publish an empty path")
		}
		src, err := p.aliases.Resolve(sourcePath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPublish, "cannot resolve %s", sourcePath).
				WithDetail("path", sourcePath)
		}
		rel := relativeName(sourcePath)
		servable = append(servable, p.urlPrefix+"/"+rel)

		dest := filepath.Join(p.publicDir, filepath.FromSlash(rel))
		if planned[dest] {
			continue
		}
		planned[dest] = true

		data, err := p.fs.ReadFile(src)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPublish, "cannot read %s", src).
				WithDetail("path", sourcePath)
		}
		plans = append(plans, copyPlan{source: sourcePath, dest: dest, data: data})
	}

	for _, level := range p.missingDirs(plans) {
		ops := make([]synthfs.Operation, 0, len(level))
		for _, dir := range level {
			op, err := p.mkdirOp(dir)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}
		if err := p.run(ops); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create directories under %s", p.publicDir)
		}
	}

	ops := make([]synthfs.Operation, 0, len(plans))
	for _, plan := range plans {
		if info, err := p.fs.Stat(plan.dest); err == nil && !info.IsDir() {
			if err := p.fs.Remove(plan.dest); err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", plan.dest)
			}
		}
		op, err := p.writeOp(plan)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := p.run(ops); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot publish into %s", p.publicDir)
	}

	p.logger.Debug().
		Str("dir", p.publicDir).
		Int("files", len(plans)).
		Msg("Published asset set")
	return servable, nil
}

// missingDirs returns the directories the plans need that do not exist yet,
// grouped by depth so every level can assume its parent is present
func (p *pipelinePublisher) missingDirs(plans []copyPlan) [][]string {
	byDepth := map[int][]string{}
	seen := map[string]bool{}
	for _, plan := range plans {
		for dir := filepath.Dir(plan.dest); !seen[dir]; dir = filepath.Dir(dir) {
			seen[dir] = true
			if _, err := p.fs.Stat(dir); err == nil {
				break
			}
			depth := strings.Count(dir, string(filepath.Separator))
			byDepth[depth] = append(byDepth[depth], dir)
		}
	}

	depths := make([]int, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	sort.Ints(depths)

	levels := make([][]string, 0, len(depths))
	for _, d := range depths {
		sort.Strings(byDepth[d])
		levels = append(levels, byDepth[d])
	}
	return levels
}

func (p *pipelinePublisher) mkdirOp(dir string) (synthfs.Operation, error) {
	rel, err := filepath.Rel("/", dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot plan directory %s", dir)
	}
	op := operations.NewCreateDirectoryOperation(core.OperationID("mkdir-"+dir), rel)
	op.SetItem(&dirItem{path: rel, mode: 0755})
	return synthfs.NewOperationsPackageAdapter(op), nil
}

func (p *pipelinePublisher) writeOp(plan copyPlan) (synthfs.Operation, error) {
	rel, err := filepath.Rel("/", plan.dest)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot plan %s", plan.dest)
	}
	op := operations.NewCreateFileOperation(core.OperationID(fmt.Sprintf("publish-%s", plan.dest)), rel)
	op.SetItem(&fileItem{path: rel, content: plan.data, mode: 0644})
	p.logger.Trace().Str("source", plan.source).Str("dest", plan.dest).Msg("Planned asset copy")
	return synthfs.NewOperationsPackageAdapter(op), nil
}

func (p *pipelinePublisher) run(ops []synthfs.Operation) error {
	if len(ops) == 0 {
		return nil
	}
	pipeline := synthfs.NewMemPipeline()
	for _, op := range ops {
		if err := pipeline.Add(op); err != nil {
			return err
		}
	}
	return synthfs.NewExecutor().Run(context.Background(), pipeline, p.target).GetError()
}

type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

type dirItem struct {
	path string
	mode fs.FileMode
}

func (d *dirItem) Path() string       { return d.path }
func (d *dirItem) Type() string       { return "directory" }
func (d *dirItem) Mode() fs.FileMode  { return d.mode }
func (d *dirItem) IsDir() bool        { return true }
func (d *dirItem) ModTime() time.Time { return time.Now() }
func (d *dirItem) Size() int64        { return 0 }
