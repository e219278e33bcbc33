package prismatic

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/prismatic/pkg/commands"
	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/filesystem"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/server"
	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// selectionFlags are shared by resolve and publish
type selectionFlags struct {
	languages       []string
	themes          []string
	plugins         []string
	context         string
	core            bool
	customThemesDir string
}

func (f *selectionFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&f.languages, "languages", "l", nil, MsgFlagLanguages)
	flags.StringSliceVarP(&f.themes, "themes", "t", nil, MsgFlagThemes)
	flags.StringSliceVarP(&f.plugins, "plugins", "p", nil, MsgFlagPlugins)
	flags.StringVar(&f.context, "context", string(types.ContextSite), MsgFlagContext)
	flags.BoolVar(&f.core, "core", false, MsgFlagCore)
	flags.StringVar(&f.customThemesDir, "custom-themes-dir", "", MsgFlagCustomThemesDir)

	_ = cmd.RegisterFlagCompletionFunc("context", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(types.ContextSite), string(types.ContextControl)}, cobra.ShellCompDirectiveNoFileComp
	})
}

// options turns the flags that were given into selector overrides
func (f *selectionFlags) options(cmd *cobra.Command) (commands.ResolveOptions, error) {
	ctx, err := types.ParseRenderContext(f.context)
	if err != nil {
		return commands.ResolveOptions{}, err
	}

	var sel types.Configuration
	if cmd.Flags().Changed("languages") {
		sel.Languages = types.SelectHandles(f.languages...)
	}
	if cmd.Flags().Changed("themes") {
		sel.Themes = types.SelectHandles(f.themes...)
	}
	if cmd.Flags().Changed("plugins") {
		sel.Plugins = types.SelectHandles(f.plugins...)
	}
	sel.CustomThemesDir = f.customThemesDir

	return commands.ResolveOptions{
		Selection:   sel,
		Context:     ctx,
		IncludeCore: f.core,
	}, nil
}

func newResolveCmd(a *app) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:     "resolve",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		GroupID: "query",
		Args:    cobra.NoArgs,
		Example: `  prismatic resolve
  prismatic resolve --languages tsx,php --themes prism-okaidia --core
  prismatic resolve --context control -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := sel.options(cmd)
			if err != nil {
				return err
			}
			engine, err := a.loadEngine()
			if err != nil {
				return err
			}
			result, err := commands.Resolve(engine, opts)
			if err != nil {
				return err
			}
			return a.emit(cmd, result, func() string { return a.renderer.RenderResolve(result) })
		},
	}
	sel.bind(cmd)
	return cmd
}

func newDepsCmd(a *app) *cobra.Command {
	var withFiles bool

	cmd := &cobra.Command{
		Use:     "deps <category> <handle>",
		Short:   MsgDepsShort,
		Long:    MsgDepsLong,
		GroupID: "query",
		Args:    cobra.ExactArgs(2),
		Example: `  prismatic deps languages tsx
  prismatic deps plugin copy-to-clipboard --files`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeComponents(a, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := types.ParseCategory(args[0])
			if err != nil {
				return err
			}
			engine, err := a.loadEngine()
			if err != nil {
				return err
			}
			result, err := commands.Deps(engine, commands.DepsOptions{
				Category: category,
				Handle:   args[1],
				Files:    withFiles,
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, result, func() string { return a.renderer.RenderDeps(result) })
		},
	}
	cmd.Flags().BoolVarP(&withFiles, "files", "f", false, MsgFlagFiles)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var withFiles bool

	cmd := &cobra.Command{
		Use:     "list <category>",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "query",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeComponents(a, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := types.ParseCategory(args[0])
			if err != nil {
				return err
			}
			engine, err := a.loadEngine()
			if err != nil {
				return err
			}
			result, err := commands.List(engine, commands.ListOptions{Category: category, Files: withFiles})
			if err != nil {
				return err
			}
			return a.emit(cmd, result, func() string { return a.renderer.RenderList(result) })
		},
	}
	cmd.Flags().BoolVarP(&withFiles, "files", "f", false, MsgFlagFiles)
	return cmd
}

// completeComponents completes a category first, then the handles in it
func completeComponents(a *app, args []string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		names := make([]string, 0, len(types.AllCategories()))
		for _, c := range types.AllCategories() {
			names = append(names, c.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	category, err := types.ParseCategory(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	engine, err := a.loadEngine()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return engine.Catalog.Handles(category), cobra.ShellCompDirectiveNoFileComp
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "validate [file]",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		GroupID: "query",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.ValidateOptions{}
			if len(args) == 1 {
				opts.File = args[0]
			}
			result, err := commands.Validate(filesystem.NewOS(), opts)
			if err != nil {
				return err
			}
			if err := a.emit(cmd, result, func() string { return a.renderer.RenderValidate(result) }); err != nil {
				return err
			}
			if !result.Valid {
				return errors.Newf(errors.ErrCatalogInvalid, "%s has %d issue(s)", result.Source, len(result.Issues)).
					WithDetail("source", result.Source)
			}
			return nil
		},
	}
}

func newPublishCmd(a *app) *cobra.Command {
	var (
		sel       selectionFlags
		publicDir string
		urlPrefix string
	)

	cmd := &cobra.Command{
		Use:     "publish",
		Short:   MsgPublishShort,
		GroupID: "output",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := sel.options(cmd)
			if err != nil {
				return err
			}
			engine, err := a.loadEngine()
			if err != nil {
				return err
			}
			result, err := commands.Publish(engine, commands.PublishOptions{
				ResolveOptions: opts,
				PublicDir:      publicDir,
				URLPrefix:      urlPrefix,
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, result, func() string { return a.renderer.RenderPublish(result) })
		},
	}
	sel.bind(cmd)
	cmd.Flags().StringVar(&publicDir, "public-dir", "", MsgFlagPublicDir)
	cmd.Flags().StringVar(&urlPrefix, "url-prefix", "", MsgFlagURLPrefix)
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   MsgServeShort,
		Long:    MsgServeLong,
		GroupID: "output",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			engine, err := a.loadEngine()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(engine)
			logger := logging.GetLogger("cmd.serve")
			logger.Info().Str("addr", srv.Addr()).Msg("Starting server")
			fmt.Fprintf(cmd.ErrOrStderr(), "Listening on http://%s\n", srv.Addr())
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", MsgFlagAddr)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			values := cfg.Map()
			return a.emit(cmd, values, func() string {
				out, err := toml.Marshal(values)
				if err != nil {
					return a.renderer.RenderError(err)
				}
				if cfg.Source != "" {
					return "# " + cfg.Source + "\n" + string(out)
				}
				return string(out)
			})
		},
	})
	return cmd
}
