package publish

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/paths"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultURLPrefix is prepended to published paths
const DefaultURLPrefix = "/assets"

// Publisher makes one source file servable and returns where it is served
type Publisher interface {
	Publish(sourcePath string) (servablePath string, err error)
}

// dirPublisher copies files below a public directory
type dirPublisher struct {
	fs        types.FS
	aliases   *paths.Aliases
	publicDir string
	urlPrefix string
	logger    zerolog.Logger
}

// NewDirPublisher creates a publisher writing into publicDir. Published files
// keep their path relative to their alias root; urlPrefix is the URL publicDir
// is served under.
func NewDirPublisher(fs types.FS, aliases *paths.Aliases, publicDir, urlPrefix string) Publisher {
	if aliases == nil {
		aliases = paths.NewAliases()
	}
	if urlPrefix == "" {
		urlPrefix = DefaultURLPrefix
	}
	return &dirPublisher{
		fs:        fs,
		aliases:   aliases,
		publicDir: publicDir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		logger:    logging.GetLogger("publish"),
	}
}

// Publish copies sourcePath into the public directory
func (p *dirPublisher) Publish(sourcePath string) (string, error) {
	if sourcePath == "" {
		return "", errors.New(errors.ErrInvalidInput, "cannot publish an empty path")
	}

	src, err := p.aliases.Resolve(sourcePath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPublish, "cannot resolve %s", sourcePath).
			WithDetail("path", sourcePath)
	}

	rel := relativeName(sourcePath)
	dest := filepath.Join(p.publicDir, filepath.FromSlash(rel))

	data, err := p.fs.ReadFile(src)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPublish, "cannot read %s", src).
			WithDetail("path", sourcePath)
	}
	if err := p.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(dest))
	}
	if err := p.fs.WriteFile(dest, data, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest)
	}

	servable := p.urlPrefix + "/" + rel
	p.logger.Debug().
		Str("source", sourcePath).
		Str("dest", dest).
		Str("servable", servable).
		Msg("Published asset")
	return servable, nil
}

// relativeName is the path a file is published under: the part after the
// alias for aliased paths, the base name otherwise
func relativeName(sourcePath string) string {
	if paths.IsAliased(sourcePath) {
		if _, rest, ok := strings.Cut(sourcePath, "/"); ok && rest != "" {
			return path.Clean(rest)
		}
	}
	return filepath.Base(sourcePath)
}

// batchPublisher publishes a whole set at once
type batchPublisher interface {
	PublishAll(sources []string) ([]string, error)
}

// Set publishes every entry of set in order and stops at the first failure.
// Publishers that plan whole sets get every path in one call.
func Set(p Publisher, set *types.FileSet) (types.PublishResult, error) {
	result := types.PublishResult{Scripts: []string{}, Stylesheets: []string{}, Files: []types.PublishedFile{}}
	if set == nil {
		return result, nil
	}

	entries := set.Entries()
	publishAt := func(i int) (string, error) { return p.Publish(entries[i].Path) }
	if batch, ok := p.(batchPublisher); ok && len(entries) > 0 {
		sources := make([]string, len(entries))
		for i, entry := range entries {
			sources[i] = entry.Path
		}
		servables, err := batch.PublishAll(sources)
		if err != nil {
			return result, err
		}
		publishAt = func(i int) (string, error) { return servables[i], nil }
	}

	for i, entry := range entries {
		servable, err := publishAt(i)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, types.PublishedFile{Source: entry.Path, Servable: servable, Kind: entry.Kind})
		switch entry.Kind {
		case types.KindScript:
			result.Scripts = append(result.Scripts, servable)
		case types.KindStylesheet:
			result.Stylesheets = append(result.Stylesheets, servable)
		}
	}
	return result, nil
}
