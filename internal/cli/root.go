package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/highlights-export/internal/config"
	"github.com/mrlokans/highlights-export/internal/logger"
)

type ctxKey string

const appKey ctxKey = "app"

// app carries the resolved configuration and logger to subcommands.
type app struct {
	cfg *config.Config
	log logger.Logger
}

// Execute builds the root command and runs it.
func Execute(version, commit string) error {
	return NewRootCmd(version, commit).Execute()
}

// NewRootCmd constructs the root command. Each call gets its own viper
// instance so flags, environment and config file never leak between runs.
func NewRootCmd(version, commit string) *cobra.Command {
	var cfgPath string
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "highlights-export",
		Short:         "Export Kobo and O'Reilly highlights as Markdown",
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			log := logger.New(logger.Config{
				Level:  cfg.Log.Level,
				JSON:   cfg.Log.JSON,
				Output: cmd.ErrOrStderr(),
			})

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, &app{cfg: cfg, log: log}))
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.Bool("log-json", false, "log as JSON")
	bindFlags(v, pf.Lookup, map[string]string{
		config.KeyLogLevel: "log-level",
		config.KeyLogJSON:  "log-json",
	})

	cmd.AddCommand(newExportCmd(v))
	cmd.AddCommand(newServeCmd(v, version))
	cmd.AddCommand(newVersionCmd(version, commit))

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getApp(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey).(*app)
	if !ok {
		return nil, fmt.Errorf("internal error: app not initialized")
	}
	return a, nil
}
