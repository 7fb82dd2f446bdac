package main

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/robalobadob/silhouette-quiz/assets"
)

type Config struct {
	server     string
	timeout    time.Duration
	logLevel   string
	logFile    string
	regions    []string
	mega       bool
	primal     bool
	qr         bool
	imageWidth int
}

func (c *Config) validate() error {
	u, err := url.Parse(c.server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid --server (want http(s)://host[:port]): %q", c.server)
	}
	if c.timeout <= 0 {
		return fmt.Errorf("invalid --timeout (must be positive): %s", c.timeout)
	}
	if _, err := zerolog.ParseLevel(c.logLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %q", c.logLevel)
	}
	if c.imageWidth < 8 || c.imageWidth > 200 {
		return fmt.Errorf("invalid --image-width (must be between 8-200 inclusive): %d", c.imageWidth)
	}
	known, err := assets.Regions()
	if err != nil {
		return err
	}
	for _, r := range c.regions {
		if !slices.ContainsFunc(known, func(k assets.Region) bool { return k.Key == r }) {
			return fmt.Errorf("unknown region in --regions: %q", r)
		}
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SILHOUETTE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "silhouette",
		Short:   "Terminal client for the silhouette quiz: guess the creature from its shadow.",
		Args:    cobra.ExactArgs(0),
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.server, "server", "s", "http://localhost:8080", "base url of the quiz service (env: SILHOUETTE_SERVER)")
	fs.DurationVar(&cfg.timeout, "timeout", 10*time.Second, "per-request timeout (env: SILHOUETTE_TIMEOUT)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "trace|debug|info|warn|error (env: SILHOUETTE_LOG_LEVEL)")
	fs.StringVar(&cfg.logFile, "log-file", "silhouette.log", "file to write JSON logs to, - for stderr (env: SILHOUETTE_LOG_FILE)")
	fs.StringSliceVarP(&cfg.regions, "regions", "r", nil, "regions pre-selected on the start form, e.g. kanto,johto (env: SILHOUETTE_REGIONS)")
	fs.BoolVar(&cfg.mega, "mega", false, "pre-select mega evolutions (env: SILHOUETTE_MEGA)")
	fs.BoolVar(&cfg.primal, "primal", false, "pre-select primal reversions (env: SILHOUETTE_PRIMAL)")
	fs.BoolVar(&cfg.qr, "qr", false, "show a QR code of the artwork url on the result screen (env: SILHOUETTE_QR)")
	fs.IntVarP(&cfg.imageWidth, "image-width", "w", 32, "picture width in terminal columns (env: SILHOUETTE_IMAGE_WIDTH)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, envValue(v, f))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("silhouette v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

// envValue formats a viper value for pflag.Set; slices are joined so a
// SILHOUETTE_REGIONS of "kanto,johto" survives the round trip.
func envValue(v *viper.Viper, f *pflag.Flag) string {
	if f.Value.Type() == "stringSlice" {
		return strings.Join(v.GetStringSlice(f.Name), ",")
	}
	return fmt.Sprintf("%v", v.Get(f.Name))
}
