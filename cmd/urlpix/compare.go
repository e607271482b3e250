package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/urlpix/urlpix/core"
	"github.com/urlpix/urlpix/hooks"
	"github.com/urlpix/urlpix/report"
)

var (
	compareFetchMeta bool
	compareHTMLOut   string
)

// defaultChains are the pipelines the compare subcommand runs when the
// user does not supply their own.
var defaultChains = []report.Chain{
	{
		Name:        "thumbnail",
		Description: "300x200 fit with quality 85",
		Calls: []core.Call{
			{Name: "fit-in", Args: []string{"300", "200"}},
			{Name: "quality", Args: []string{"85"}},
		},
	},
	{
		Name:        "grayscale-blur",
		Description: "grayscale with a light blur",
		Calls: []core.Call{
			{Name: "resize", Args: []string{"640", "480"}},
			{Name: "grayscale"},
			{Name: "blur", Args: []string{"3"}},
		},
	},
	{
		Name:        "rotated-crop",
		Description: "crop then rotate 90 degrees",
		Calls: []core.Call{
			{Name: "crop", Args: []string{"10", "10", "400", "300"}},
			{Name: "rotate", Args: []string{"90"}},
		},
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare IMAGE",
	Short: "Apply the same pipelines across all dialects and report the URLs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := buildSigner()
		if err != nil {
			return err
		}
		backends := []report.Backend{
			report.NewImagorBackend(cfg.ImagorBase, signer),
			report.NewThumborBackend(cfg.ThumborBase, signer),
			report.NewWsrvBackend(cfg.WsrvBase),
		}
		var meta *report.MetaClient
		if compareFetchMeta {
			meta = report.NewMetaClient(cfg.HTTPTimeout)
		}
		comparator := report.NewComparator(backends, meta, hooks.NewZapLogger(logger))
		rep := comparator.Run(cmd.Context(), args[0], defaultChains)

		if compareHTMLOut != "" {
			out, err := os.Create(compareHTMLOut)
			if err != nil {
				return err
			}
			defer out.Close()
			return rep.WriteHTML(out)
		}
		for _, row := range rep.Rows {
			if row.Err != nil {
				cmd.Printf("%-16s %-8s ERROR %v\n", row.Chain, row.Backend, row.Err)
				continue
			}
			cmd.Printf("%-16s %-8s %s\n", row.Chain, row.Backend, row.URL)
		}
		return nil
	},
}

func init() {
	fl := compareCmd.Flags()
	fl.BoolVar(&compareFetchMeta, "fetch-meta", false, "fetch metadata documents from the servers")
	fl.StringVar(&compareHTMLOut, "html", "", "write an HTML report to the given file")
	rootCmd.AddCommand(compareCmd)
}
