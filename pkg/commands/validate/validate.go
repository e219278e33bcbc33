package validate

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/catalog"
	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/resolver"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// EmbeddedSourceName names the packaged catalog in results
const EmbeddedSourceName = "embedded"

// ValidateOptions defines the options for the Validate command.
type ValidateOptions struct {
	// File is the catalog document to check; empty means the packaged one.
	File string
}

// Validate checks a catalog document against the schema and, when it
// conforms, for requirement edges the resolver cannot follow. Issues are
// reported in the result; the error return covers unreadable documents.
func Validate(fs types.FS, opts ValidateOptions) (*types.ValidateResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Validate").Str("file", opts.File).Msg("Executing command")

	source := catalog.EmbeddedSource()
	name := EmbeddedSourceName
	if opts.File != "" {
		source = catalog.FileSource(fs, opts.File)
		name = opts.File
	}

	data, err := source()
	if err != nil {
		return nil, err
	}

	result := &types.ValidateResult{Source: name, Issues: []string{}}

	schemaResult, err := catalog.ValidateDocument(data)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrCatalogParse) {
			result.Issues = append(result.Issues, err.Error())
			return result, nil
		}
		return nil, err
	}
	for _, issue := range schemaResult.Issues {
		result.Issues = append(result.Issues, issue.String())
	}

	if schemaResult.Valid {
		cat, err := catalog.Parse(data)
		if err != nil {
			return nil, err
		}
		for _, issue := range cat.Validate() {
			result.Issues = append(result.Issues, issue.String())
		}
		result.Issues = append(result.Issues, cycles(cat)...)
		result.Counts = make(map[types.Category]int)
		for _, category := range types.AllCategories() {
			result.Counts[category] = cat.Count(category)
		}
	}

	result.Valid = len(result.Issues) == 0
	log.Info().Str("command", "Validate").Bool("valid", result.Valid).Int("issues", len(result.Issues)).Msg("Command finished")
	return result, nil
}

// cycles walks every handle and reports each requires-cycle once. Handles
// requiring themselves are already reported by Catalog.Validate.
func cycles(cat *catalog.Catalog) []string {
	r := resolver.New(cat)
	seen := make(map[string]bool)
	var issues []string
	for _, category := range types.Categories() {
		for _, handle := range cat.Handles(category) {
			_, err := r.Walk(handle, category)
			var cycleErr *resolver.CyclicDependencyError
			if !stderrors.As(err, &cycleErr) || len(cycleErr.Cycle) <= 2 {
				continue
			}
			members := append([]string(nil), cycleErr.Cycle[:len(cycleErr.Cycle)-1]...)
			sort.Strings(members)
			key := string(category) + ":" + strings.Join(members, ",")
			if seen[key] {
				continue
			}
			seen[key] = true
			issues = append(issues, fmt.Sprintf("/%s/%s/require: dependency cycle %s",
				category, handle, strings.Join(cycleErr.Cycle, " -> ")))
		}
	}
	return issues
}
