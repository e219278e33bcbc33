package types

// ComponentInfo describes one selected or listed component
type ComponentInfo struct {
	Handle   string   `json:"handle" yaml:"handle"`
	Title    string   `json:"title" yaml:"title"`
	Category Category `json:"category" yaml:"category"`
	Requires []string `json:"requires,omitempty" yaml:"requires,omitempty"`
	Owner    string   `json:"owner,omitempty" yaml:"owner,omitempty"`
	NoCSS    bool     `json:"noCSS,omitempty" yaml:"noCSS,omitempty"`

	// Custom components come from the custom themes directory
	Custom bool `json:"custom,omitempty" yaml:"custom,omitempty"`

	// File is the component's main file when a listing was asked for files
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// NewComponentInfo converts a catalog definition
func NewComponentInfo(def Definition) ComponentInfo {
	return ComponentInfo{
		Handle:   def.Handle,
		Title:    def.Title,
		Category: def.Category,
		Requires: def.Requires,
		Owner:    def.Owner,
		NoCSS:    def.NoCSS,
	}
}

// ResolveResult holds the result of the 'resolve' command
type ResolveResult struct {
	Context     RenderContext   `json:"context" yaml:"context"`
	Themes      []ComponentInfo `json:"themes" yaml:"themes"`
	Languages   []ComponentInfo `json:"languages" yaml:"languages"`
	Plugins     []ComponentInfo `json:"plugins" yaml:"plugins"`
	Files       []FileEntry     `json:"files" yaml:"files"`
	Scripts     []string        `json:"scripts" yaml:"scripts"`
	Stylesheets []string        `json:"stylesheets" yaml:"stylesheets"`
}

// DepsResult holds the result of the 'deps' command
type DepsResult struct {
	Category Category `json:"category" yaml:"category"`
	Handle   string   `json:"handle" yaml:"handle"`

	// Order lists dependencies first, each handle once, ending with Handle
	Order []string `json:"order" yaml:"order"`

	// Walk is the raw requirement walk, duplicates kept
	Walk []string `json:"walk,omitempty" yaml:"walk,omitempty"`

	// Files are the component files in load order
	Files []string `json:"files,omitempty" yaml:"files,omitempty"`
}

// ListResult holds the result of the 'list' command
type ListResult struct {
	Category   Category        `json:"category" yaml:"category"`
	Components []ComponentInfo `json:"components" yaml:"components"`
}

// ValidateResult holds the result of the 'validate' command
type ValidateResult struct {
	Source string           `json:"source" yaml:"source"`
	Valid  bool             `json:"valid" yaml:"valid"`
	Issues []string         `json:"issues" yaml:"issues"`
	Counts map[Category]int `json:"counts,omitempty" yaml:"counts,omitempty"`
}

// PublishedFile pairs a source path with the URL it is served under
type PublishedFile struct {
	Source   string   `json:"source" yaml:"source"`
	Servable string   `json:"servable" yaml:"servable"`
	Kind     FileKind `json:"kind" yaml:"kind"`
}

// PublishResult holds the result of the 'publish' command
type PublishResult struct {
	PublicDir   string          `json:"publicDir,omitempty" yaml:"publicDir,omitempty"`
	Files       []PublishedFile `json:"files" yaml:"files"`
	Scripts     []string        `json:"scripts" yaml:"scripts"`
	Stylesheets []string        `json:"stylesheets" yaml:"stylesheets"`
}
