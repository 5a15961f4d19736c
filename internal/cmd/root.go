// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bcgov/nr-repository-composer/internal/config"
	"github.com/bcgov/nr-repository-composer/internal/generator"
	"github.com/bcgov/nr-repository-composer/internal/generators"
	"github.com/bcgov/nr-repository-composer/internal/output"
	"github.com/bcgov/nr-repository-composer/internal/prompt"
)

// globals holds the persistent flags and the configuration resolved from
// them. Every subcommand shares one instance.
type globals struct {
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool
	headlessFlag   bool
	helpPrompts    bool
	askAnswered    bool
	dirFlag        string

	// Resolved during PersistentPreRunE.
	config   *config.Config
	headless bool

	// prompter overrides terminal detection. Tests set it.
	prompter prompt.Prompter

	registry *generator.Registry
}

// NewRootCmd creates the root command for the nrc CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&globals{registry: generators.NewRegistry()})
}

func newRootCmd(g *globals) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nrc",
		Short: "NR Repository Composer",
		Long: `nrc scaffolds and maintains repository files for NR projects.

Each generator reads its answers from the catalog document, asks only for
what is missing, writes the answers back and renders its files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, g)
		},
	}

	rootCmd.SetFlagErrorFunc(flagError)

	rootCmd.PersistentFlags().StringVar(&g.configFlag, "config", "", "Path to config file (env: NRC_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&g.verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&g.timestampsFlag, "timestamps", true, "Show timestamps in log output")
	rootCmd.PersistentFlags().BoolVar(&g.headlessFlag, "headless", false, "Fail instead of prompting for missing answers (env: NRC_HEADLESS)")
	rootCmd.PersistentFlags().BoolVar(&g.helpPrompts, "help-prompts", false, "Print the prompts of the generator and exit")
	rootCmd.PersistentFlags().BoolVar(&g.askAnswered, "ask-answered", false, "Ask again for answers already in the catalog document")
	rootCmd.PersistentFlags().StringVar(&g.dirFlag, "dir", "", "Destination directory (default: current directory)")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupGenerators, Title: "Generators:"},
	)
	for _, def := range g.registry.Definitions() {
		rootCmd.AddCommand(newGeneratorCmd(g, def))
	}

	rootCmd.AddCommand(NewListCmd(g))
	rootCmd.AddCommand(NewCatalogCmd(g))
	rootCmd.AddCommand(NewDocsCmd(g))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command, g *globals) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: g.configFlag,
	})
	if err != nil {
		output.Debug("config path resolution error", "error", err)
	}

	loader := config.NewLoader()
	cfg, err := loader.Load(pathResult.ConfigPath)
	if err != nil {
		return exitError(cmd, err)
	}
	g.config = cfg

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{
		Verbose: g.verboseFlag,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(g.timestampsFlag)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	headless := config.ResolveHeadless(config.ResolveHeadlessOptions{
		FlagSet:      cmd.Flags().Changed("headless"),
		FlagValue:    g.headlessFlag,
		Loaded:       cfg.Headless,
		LoadedSource: loader.Source("headless"),
	})
	g.headless, _ = headless.Value.(bool)

	if g.verboseFlag {
		exists, err := config.ConfigFileExists(pathResult.ConfigPath)
		output.Debug("config file", "path", pathResult.ConfigPath, "exists", exists, "error", err)

		configPath := config.ResolvedValue{
			Key:    "config",
			Value:  pathResult.ConfigPath,
			Source: pathResult.Source,
		}
		for source, shadowed := range pathResult.Shadowed {
			if configPath.Shadowed == nil {
				configPath.Shadowed = map[config.ConfigSource]any{}
			}
			configPath.Shadowed[source] = shadowed
		}
		config.LogResolvedValues([]config.ResolvedValue{
			configPath,
			headless,
			{Key: "catalogFile", Value: cfg.CatalogFile, Source: loader.Source("catalogFile")},
			{Key: "readmeBaseURL", Value: cfg.ReadmeBaseURL, Source: loader.Source("readmeBaseURL")},
		})
	}

	return nil
}

// runtime builds the generator runtime for one command invocation.
func (g *globals) runtime(cmd *cobra.Command) *generator.Runtime {
	cfg := g.config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &generator.Runtime{
		Registry:    g.registry,
		Dir:         g.dirFlag,
		CatalogFile: cfg.CatalogFile,
		Policy: prompt.Policy{
			Headless:      g.headless,
			ReAskAnswered: g.askAnswered,
		},
		Prompter:      g.selectPrompter(cmd),
		HelpPrompts:   g.helpPrompts,
		Verbose:       g.verboseFlag,
		ReadmeBaseURL: cfg.ReadmeBaseURL,
		Out:           cmd.OutOrStdout(),
	}
}

// selectPrompter uses forms on a terminal and plain lines on pipes.
func (g *globals) selectPrompter(cmd *cobra.Command) prompt.Prompter {
	if g.prompter != nil {
		return g.prompter
	}
	if output.IsInputTTY() {
		return prompt.FormPrompter{Accessible: !output.IsTTY()}
	}
	return prompt.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}
