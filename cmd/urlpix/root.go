package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/urlpix/urlpix/config"
	"github.com/urlpix/urlpix/core"
	"github.com/urlpix/urlpix/hooks"
)

var (
	// Global flags.
	cfgFile  string
	baseURL  string
	signKey  string
	signAlg  string
	truncate int
	unsafe   bool
	verbose  bool
	outputTo string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "urlpix",
	Short: "Generate image-processing URLs for imagor, thumbor and wsrv servers",
	Long: `urlpix builds signed (or unsafe) URLs for remote image-processing
services.  Each subcommand targets one server dialect; transform flags
map to the corresponding pipeline operations and filters.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if baseURL != "" {
			cfg.ImagorBase = baseURL
			cfg.ThumborBase = baseURL
			cfg.WsrvBase = baseURL
		}
		if cmd.Flags().Changed("key") || cmd.Flags().Changed("algorithm") ||
			cmd.Flags().Changed("truncate") || cmd.Flags().Changed("unsafe") {
			cfg.Signer = config.SignerConfig{
				Algorithm: signAlg,
				Key:       signKey,
				Truncate:  truncate,
				Unsafe:    unsafe,
			}
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		logger, err = hooks.NewLogger(cfg.Log)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: built-in defaults + URLPIX_* env)")
	pf.StringVar(&baseURL, "base", "", "base URL of the image-processing service")
	pf.StringVar(&signKey, "key", "", "HMAC signing key")
	pf.StringVar(&signAlg, "algorithm", "sha1", "signing algorithm: sha1, sha256, sha512")
	pf.IntVar(&truncate, "truncate", 0, "truncate the signature to N characters (0 = full)")
	pf.BoolVar(&unsafe, "unsafe", false, "generate unsigned URLs with the unsafe prefix")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&outputTo, "output", "o", "-", "output file (default: stdout)")
}

func buildSigner() (*core.Signer, error) {
	return cfg.Signer.Signer()
}

// emit writes the generated URL to the selected output.
func emit(url string) error {
	if outputTo == "" || outputTo == "-" {
		fmt.Println(url)
		return nil
	}
	return os.WriteFile(outputTo, []byte(url+"\n"), 0o644)
}
