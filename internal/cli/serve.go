package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrlokans/highlights-export/internal/config"
	"github.com/mrlokans/highlights-export/internal/entrypoint"
)

func newServeCmd(v *viper.Viper, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Starts an HTTP server that converts uploaded sources to Markdown:

  POST /api/export/kobo     multipart field "file" holding KoboReader.sqlite
  POST /api/export/oreilly  multipart field "file" holding the JSON export
  GET  /health`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			return entrypoint.Run(cmd.Context(), a.cfg, version, a.log)
		},
	}

	f := cmd.Flags()
	f.String("host", config.DefaultHost, "listen host")
	f.Int32("port", config.DefaultPort, "listen port")
	f.Int64("max-upload-mb", config.DefaultMaxUploadMB, "maximum upload size in MB")
	bindFlags(v, f.Lookup, map[string]string{
		config.KeyHost:        "host",
		config.KeyPort:        "port",
		config.KeyMaxUploadMB: "max-upload-mb",
	})

	return cmd
}
