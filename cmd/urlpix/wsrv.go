package main

import (
	"github.com/spf13/cobra"

	"github.com/urlpix/urlpix/dialects/wsrv"
	"github.com/urlpix/urlpix/hooks"
)

var (
	wsrvCommon    commonFlags
	wsrvFit       string
	wsrvNoUpscale bool
	wsrvRotate    int
	wsrvFormat    string
	wsrvMeta      bool
)

var wsrvCmd = &cobra.Command{
	Use:   "wsrv IMAGE",
	Short: "Generate a wsrv.nl URL (never signed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b := wsrv.New(cfg.WsrvBase).WithImage(args[0])
		b.Pipeline().AddHook(hooks.NewLoggingHook(hooks.NewZapLogger(logger)))

		f := wsrvCommon
		switch {
		case f.fitIn && f.width > 0 && f.height > 0:
			fit := wsrv.FitContain
			if wsrvFit != "" {
				fit = wsrv.Fit(wsrvFit)
			}
			b = b.FitIn(f.width, f.height, fit)
		case f.width > 0 || f.height > 0:
			b = b.Resize(f.width, f.height)
		}
		if len(f.crop) == 4 {
			b = b.Crop(f.crop[0], f.crop[1], f.crop[2], f.crop[3])
		}
		if f.blur > 0 {
			b = b.Blur(f.blur)
		}
		if f.grayscale {
			b = b.Grayscale()
		}
		if wsrvNoUpscale {
			b = b.NoUpscale()
		}
		if wsrvRotate != 0 {
			b = b.Rotate(wsrvRotate)
		}
		if wsrvFormat != "" || f.quality > 0 {
			format := wsrvFormat
			if format == "" {
				format = "jpg"
			}
			b = b.Format(format, f.quality, "")
		}
		if wsrvMeta {
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
	wsrvCommon.register(wsrvCmd)
	fl := wsrvCmd.Flags()
	fl.StringVar(&wsrvFit, "fit", "", "fit mode: cover, contain, fill, inside, outside")
	fl.BoolVar(&wsrvNoUpscale, "no-upscale", false, "prevent enlargement past the original dimensions")
	fl.IntVar(&wsrvRotate, "rotate", 0, "rotate by the given angle")
	fl.StringVar(&wsrvFormat, "format", "", "output format (jpg, png, webp, ...)")
	fl.BoolVar(&wsrvMeta, "meta", false, "request the JSON metadata document")
	rootCmd.AddCommand(wsrvCmd)
}
