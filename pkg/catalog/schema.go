package catalog

import (
	"bytes"
	_ "embed"
	"strings"
	"sync"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/catalog.schema.json
var schemaBytes []byte

const schemaResource = "catalog.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult is the outcome of checking a document against the schema
type ValidationResult struct {
	Valid  bool
	Issues []Issue
}

// Schema returns the raw catalog JSON Schema
func Schema() []byte {
	return append([]byte(nil), schemaBytes...)
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = errors.Wrap(err, errors.ErrInternal, "unmarshaling catalog schema")
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaResource, doc); err != nil {
			compileErr = errors.Wrap(err, errors.ErrInternal, "adding catalog schema resource")
			return
		}
		compiledSchema, err = c.Compile(schemaResource)
		if err != nil {
			compileErr = errors.Wrap(err, errors.ErrInternal, "compiling catalog schema")
		}
	})
	return compiledSchema, compileErr
}

// ValidateDocument checks raw catalog bytes against the catalog schema.
// The error return covers malformed JSON and schema compilation failures;
// schema violations are reported in the result.
func ValidateDocument(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogParse, "catalog is not valid JSON")
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, errors.Wrap(err, errors.ErrInternal, "unexpected validation error")
	}

	return &ValidationResult{Issues: extractIssues(validationErr)}, nil
}

// extractIssues flattens the validation error tree to its leaves
func extractIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	collectIssues(ve, &issues)

	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}
	return dedupIssues(issues)
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	keyword, msg := "", ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}

	// Container keywords only say that a branch failed
	switch keyword {
	case "oneOf", "allOf", "$ref", "":
		return
	}

	*issues = append(*issues, Issue{Path: path, Keyword: keyword, Message: msg})
}

func dedupIssues(issues []Issue) []Issue {
	seen := make(map[string]bool)
	var result []Issue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
