package prismatic

import (
	"fmt"

	"github.com/arthur-debert/prismatic/internal/version"
	"github.com/arthur-debert/prismatic/pkg/config"
	"github.com/arthur-debert/prismatic/pkg/core"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/metrics"
	"github.com/arthur-debert/prismatic/pkg/paths"
	"github.com/arthur-debert/prismatic/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app carries the global flags and the lazily built engine
type app struct {
	verbosity  int
	configFile string
	assetsRoot string
	format     string
	noColor    bool

	renderer style.Renderer
	cfg      *config.Config
	engine   *core.Engine
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "prismatic",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Get().Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			if _, err := parseFormat(a.format); err != nil {
				return err
			}
			a.renderer = style.NewRenderer(style.ConfigureOutput(cmd.OutOrStdout(), a.noColor))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.SetUsageTemplate(usageTemplate)

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&a.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVar(&a.assetsRoot, "assets-root", "", MsgFlagAssetsRoot)
	flags.StringVarP(&a.format, "format", "o", string(formatText), MsgFlagFormat)
	flags.BoolVar(&a.noColor, "no-color", false, MsgFlagNoColor)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(formatText), string(formatJSON), string(formatYAML)}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "query", Title: "Queries:"},
		&cobra.Group{ID: "output", Title: "Output:"},
	)

	rootCmd.AddCommand(
		newResolveCmd(a),
		newDepsCmd(a),
		newListCmd(a),
		newValidateCmd(a),
		newPublishCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
		newCompletionCmd(),
	)

	return rootCmd
}

// loadConfig reads the configuration once: embedded defaults, then the
// --config file or the first user config found, then the environment
func (a *app) loadConfig() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	p, err := paths.New(a.assetsRoot)
	if err != nil {
		return nil, err
	}

	opts := config.Options{
		File:       a.configFile,
		Candidates: p.ConfigFileCandidates(),
	}
	if a.assetsRoot != "" {
		opts.Overrides = map[string]interface{}{"assetsRoot": a.assetsRoot}
	}

	cfg, err := config.Load(opts)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	a.cfg = cfg
	return cfg, nil
}

// loadEngine builds the engine over the loaded configuration
func (a *app) loadEngine() (*core.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	engine, err := core.New(cfg, core.WithMetrics(metrics.New()))
	if err != nil {
		return nil, err
	}
	a.engine = engine
	return engine, nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  `Print version information for prismatic`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			return a.emit(cmd, info, info.String)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long:  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}
