package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/assets"
	"github.com/arthur-debert/prismatic/pkg/commands"
	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
)

// maxHighlightBody caps the size of a highlight request
const maxHighlightBody = 1 << 20

// errorResponse is the body of every failed request
type errorResponse struct {
	Code    errors.ErrorCode       `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HighlightBlock is one code block of a highlight request
type HighlightBlock struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

// HighlightRequest asks for blocks to be rendered
type HighlightRequest struct {
	Blocks  []HighlightBlock    `json:"blocks"`
	Context types.RenderContext `json:"context"`
}

// RenderedBlock is a block ready to embed
type RenderedBlock struct {
	HTML          string `json:"html"`
	LanguageClass string `json:"languageClass"`
	ThemeClass    string `json:"themeClass"`
}

// HighlightResponse carries the rendered blocks and the assets they need
type HighlightResponse struct {
	Blocks []RenderedBlock `json:"blocks"`
	Assets types.Manifest  `json:"assets"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	category, err := types.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := commands.List(s.engine, commands.ListOptions{
		Category: category,
		Files:    boolParam(r, "files"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeps(w http.ResponseWriter, r *http.Request) {
	category, err := types.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := commands.Deps(s.engine, commands.DepsOptions{
		Category: category,
		Handle:   chi.URLParam(r, "handle"),
		Files:    boolParam(r, "files"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	annotate(r, attribute.Int("prismatic.dependencies", len(result.Order)))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var selection types.Configuration
	for _, category := range types.Categories() {
		if raw, ok := query[category.String()]; ok {
			selection = selection.WithSelector(category, types.SelectHandles(splitList(raw)...))
		}
	}
	selection.CustomThemesDir = query.Get("customThemesDir")

	ctx, err := types.ParseRenderContext(query.Get("context"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := commands.Resolve(s.engine, commands.ResolveOptions{
		Selection:   selection,
		Context:     ctx,
		IncludeCore: boolParam(r, "core"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	annotate(r,
		attribute.String("prismatic.context", string(result.Context)),
		attribute.Int("prismatic.scripts", len(result.Scripts)),
		attribute.Int("prismatic.stylesheets", len(result.Stylesheets)),
	)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req HighlightRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxHighlightBody))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(err, errors.ErrInvalidInput, "invalid highlight request"))
		return
	}
	ctx, err := types.ParseRenderContext(string(req.Context))
	if err != nil {
		s.writeError(w, err)
		return
	}

	session := assets.NewSession()
	resp := HighlightResponse{Blocks: make([]RenderedBlock, 0, len(req.Blocks))}
	for _, block := range req.Blocks {
		rendered := session.Render(block.Code, block.Language, block.Theme)
		resp.Blocks = append(resp.Blocks, RenderedBlock{
			HTML:          rendered.HTML(),
			LanguageClass: rendered.LanguageClass,
			ThemeClass:    rendered.ThemeClass,
		})
	}

	set, err := session.Flush(s.engine.Builder, ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if set == nil {
		set = types.NewFileSet()
	}
	resp.Assets = set.Manifest()

	annotate(r, attribute.Int("prismatic.blocks", len(resp.Blocks)))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("Request failed")
	} else {
		s.logger.Debug().Err(err).Msg("Request rejected")
	}

	resp := errorResponse{
		Code:    errors.GetErrorCode(err),
		Message: err.Error(),
		Details: errors.GetErrorDetails(err),
	}
	writeJSON(w, status, resp)
}

// statusFor maps error codes to HTTP statuses
func statusFor(err error) int {
	switch errors.GetErrorCode(err) {
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrInvalidInput, errors.ErrUnknownCategory:
		return http.StatusBadRequest
	case errors.ErrDependencyCycle, errors.ErrMissingTitle:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func boolParam(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

// splitList accepts both repeated parameters and comma separated values
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}
