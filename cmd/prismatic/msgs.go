package prismatic

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Resolve PrismJS components into ordered asset files"
	MsgResolveShort    = "Resolve the configured selection into scripts and stylesheets"
	MsgDepsShort       = "Show the load order of one component"
	MsgListShort       = "List the components of a category"
	MsgValidateShort   = "Check a catalog document"
	MsgPublishShort    = "Copy the resolved files into the public directory"
	MsgServeShort      = "Serve the resolution pipeline over HTTP"
	MsgConfigShort     = "Inspect the effective configuration"
	MsgConfigShowShort = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Error messages
	MsgErrNoCommand     = "no command specified"
	MsgErrLoadConfig    = "failed to load configuration: %w"
	MsgErrUnknownFormat = "unknown output format %q (want text, json or yaml)"
	MsgErrEncode        = "failed to encode output: %w"

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig          = "Config file to load instead of the user config"
	MsgFlagAssetsRoot      = "Root of the Prism distribution (sets the @prism alias)"
	MsgFlagFormat          = "Output format: text, json or yaml"
	MsgFlagNoColor         = "Disable colored output"
	MsgFlagLanguages       = "Languages to select, or * for all"
	MsgFlagThemes          = "Themes to select, or * for all"
	MsgFlagPlugins         = "Plugins to select, or * for all"
	MsgFlagContext         = "Render context: site or control"
	MsgFlagCore            = "Put the Prism runtime script first"
	MsgFlagCustomThemesDir = "Directory searched for themes the distribution lacks"
	MsgFlagFiles           = "Attach resolved file paths"
	MsgFlagPublicDir       = "Directory to publish into"
	MsgFlagURLPrefix       = "URL prefix the public directory is served under"
	MsgFlagAddr            = "Address to listen on"
)

// Long descriptions
const (
	MsgRootLong = `prismatic turns a PrismJS component catalog and a selection of themes,
languages and plugins into the ordered list of files a page has to load.

Requirements are followed transitively so every component appears after
the components it needs.`

	MsgResolveLong = `Resolve expands the configured selection, follows requirements and prints
the scripts and stylesheets in load order.

Flags override the configured selector of their category. Pass "*" to
select every component of a category.`

	MsgDepsLong = `Deps prints the load order of one component: its requirements first,
the component itself last.`

	MsgValidateLong = `Validate checks a catalog document against the catalog schema and
reports requirements that name unknown components or form cycles.

Without an argument the packaged catalog is checked.`

	MsgServeLong = `Serve exposes the catalog, dependency and resolution queries as a JSON
API, plus Prometheus metrics. It stops on SIGINT or SIGTERM.`
)

const MsgCompletionLong = `Print a shell completion script for prismatic.

  bash        source <(prismatic completion bash)
  zsh         prismatic completion zsh > "${fpath[1]}/_prismatic"
  fish        prismatic completion fish > ~/.config/fish/completions/prismatic.fish
  powershell  prismatic completion powershell | Out-String | Invoke-Expression

zsh needs compinit enabled; open a new shell after installing.`
