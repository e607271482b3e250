package main

import (
	"github.com/spf13/cobra"

	"github.com/urlpix/urlpix/core"
	"github.com/urlpix/urlpix/dialects/thumbor"
	"github.com/urlpix/urlpix/hooks"
)

var (
	thumborCommon  commonFlags
	thumborFitMode string
	thumborSmart   bool
	thumborTrim    bool
	thumborFormat  string
	thumborMeta    bool
)

var thumborCmd = &cobra.Command{
	Use:   "thumbor IMAGE",
	Short: "Generate a thumbor URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := buildSigner()
		if err != nil {
			return err
		}
		b := thumbor.New(cfg.ThumborBase, signer).WithImage(args[0])
		b.Pipeline().AddHook(hooks.NewLoggingHook(hooks.NewZapLogger(logger)))

		f := thumborCommon
		switch {
		case f.fitIn && f.width > 0 && f.height > 0:
			b = b.FitInMethod(f.width, f.height, thumbor.FitInMethod(thumborFitMode))
		case f.width > 0 || f.height > 0:
			b = b.Resize(f.width, f.height)
		}
		if len(f.crop) == 4 {
			b = b.Crop(
				core.Px(f.crop[0]), core.Px(f.crop[1]),
				core.Px(f.crop[2]), core.Px(f.crop[3]),
			)
		}
		if thumborTrim {
			b = b.Trim()
		}
		if thumborSmart {
			b = b.SmartCrop()
		}
		if f.blur > 0 {
			b = b.Blur(f.blur)
		}
		if f.grayscale {
			b = b.Grayscale()
		}
		if thumborFormat != "" {
			b = b.Format(thumborFormat, f.quality)
		} else if f.quality > 0 {
			b = b.Quality(f.quality)
		}
		if thumborMeta {
			b = b.Meta()
		}

		url, err := b.URL()
		if err != nil {
			return err
		}
		return emit(url)
	},
}

func init() {
	thumborCommon.register(thumborCmd)
	fl := thumborCmd.Flags()
	fl.StringVar(&thumborFitMode, "fit-mode", "", `fit-in variant: "" (default), "full" or "adaptive"`)
	fl.BoolVar(&thumborSmart, "smart", false, "use smart detection for cropping")
	fl.BoolVar(&thumborTrim, "trim", false, "remove surrounding space")
	fl.StringVar(&thumborFormat, "format", "", "output format (jpeg, png, webp, ...)")
	fl.BoolVar(&thumborMeta, "meta", false, "request the metadata document instead of pixels")
	rootCmd.AddCommand(thumborCmd)
}
