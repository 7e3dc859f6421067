package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/doeshing/jarvis-go/internal/app"
	"github.com/doeshing/jarvis-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
	EnvFile    string
}

// NewRootCmd wires the cobra root command. The container is built after
// flags are parsed so --config and --env-file take effect.
func NewRootCmd(opts Options) *cobra.Command {
	container := &app.Container{}

	root := &cobra.Command{
		Use:   "jarvis",
		Short: "JARVIS - a text-driven personal assistant",
		Long:  "JARVIS turns plain-language commands into file, system and web actions.",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(opts.EnvFile, cmd.Flags().Changed("env-file")); err != nil {
				return err
			}
			built, err := app.BuildContainer(cmd.Context(), app.Options{
				ConfigPath: opts.ConfigPath,
				Verbose:    opts.Verbose || isDebugEnv(),
				LogOutput:  cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			*container = *built
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return container.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewREPL(container.Core, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "Config file (default ~/.jarvis/config.yaml, or $JARVIS_CONFIG)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.EnvFile, "env-file", ".env", "Load API keys from this dotenv file")

	root.AddCommand(
		newAskCommand(container),
		commands.NewServeCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(container),
	)
	return root
}

// loadEnvFile reads dotenv values without overriding the real environment.
// The default file may be absent; an explicitly named one must exist.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}
	return err
}

func isDebugEnv() bool {
	v := os.Getenv("JARVIS_DEBUG")
	return v == "1" || strings.EqualFold(v, "true")
}
