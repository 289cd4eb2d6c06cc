package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrlokans/highlights-export/internal/config"
	"github.com/mrlokans/highlights-export/internal/exporters"
	"github.com/mrlokans/highlights-export/internal/importers"
	"github.com/mrlokans/highlights-export/internal/sources"
)

func newExportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Convert a Kobo database or O'Reilly export to Markdown",
		Long: `Reads highlights from a Kobo e-reader database (KoboReader.sqlite) or an
O'Reilly annotations JSON export and prints one Markdown document per book.

Use --output-dir to write one file per book instead, or --pretty to render
the Markdown for the terminal.`,
		Example: `  highlights-export export -i kobo -f /Volumes/KOBOeReader/.kobo/KoboReader.sqlite
  highlights-export export -i oreilly annotations.json -o ~/notes/highlights
  highlights-export export -i kobo KoboReader.sqlite --pretty`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			if strings.TrimSpace(a.cfg.Input.Type) == "" {
				return fmt.Errorf("--input-type is required (one of: kobo, oreilly)")
			}
			inputType, err := sources.ParseInputType(a.cfg.Input.Type)
			if err != nil {
				return err
			}

			path := a.cfg.Input.Path
			if len(args) == 1 {
				path = args[0]
			}
			if strings.TrimSpace(path) == "" {
				return fmt.Errorf("--file is required")
			}

			docs, summary, err := importers.NewPipeline(a.log).Run(cmd.Context(), inputType, path)
			if err != nil {
				return err
			}

			result, err := newDocumentExporter(cmd.OutOrStdout(), a.cfg.Output).Export(docs)
			if err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}

			if a.cfg.Output.Dir != "" {
				a.log.Info("wrote markdown files",
					"dir", a.cfg.Output.Dir,
					"files", len(result.Files),
					"books", summary.Books,
					"highlights", summary.Highlights,
				)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("input-type", "i", "", "input format: kobo or oreilly")
	f.StringP("file", "f", "", "path to KoboReader.sqlite or the O'Reilly JSON export")
	f.StringP("output-dir", "o", "", "write one Markdown file per book into this directory")
	f.Bool("pretty", false, "render Markdown for the terminal")
	f.String("style", config.DefaultStyle, "terminal style for --pretty (dark, light, notty, ...)")
	f.Int("word-wrap", config.DefaultWordWrap, "wrap width for --pretty, 0 disables wrapping")
	bindFlags(v, f.Lookup, map[string]string{
		config.KeyInputType: "input-type",
		config.KeyFile:      "file",
		config.KeyOutputDir: "output-dir",
		config.KeyPretty:    "pretty",
		config.KeyStyle:     "style",
		config.KeyWordWrap:  "word-wrap",
	})

	return cmd
}

// newDocumentExporter picks the output for the export command. A target
// directory wins over terminal rendering.
func newDocumentExporter(w io.Writer, out config.Output) exporters.DocumentExporter {
	switch {
	case out.Dir != "":
		return exporters.NewMarkdownExporter(afero.NewOsFs(), out.Dir)
	case out.Pretty:
		return exporters.NewTerminalExporter(w, out.Style, out.WordWrap)
	default:
		return exporters.NewStreamExporter(w)
	}
}
