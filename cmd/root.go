// file: cmd/root.go
// version: 2.0.0
// guid: 1f8a6d43-b25e-4c90-97a1-3e60d8f4c529

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jdfalk/respcache/internal/cache"
	"github.com/jdfalk/respcache/internal/config"
	"github.com/jdfalk/respcache/internal/server"
	"github.com/jdfalk/respcache/internal/server/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var cfgFile string
var defaultTTL time.Duration
var maxEntries int
var sweepInterval time.Duration

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "respcache",
	Short: "In-process HTTP response cache with a small ops server",
	Long: `respcache keeps successful GET responses in a bounded in-memory TTL
store and serves repeats without re-running the handler chain.

The serve command runs the ops server: cache statistics, pattern
invalidation, Prometheus metrics, and demo routes behind the cache.`,
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cache ops server",
	Long:  `Start the HTTP server exposing cache administration and demo endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Fill gaps from a config file sitting next to the process, if any.
		if err := config.LoadConfigFromFile("respcache.yaml"); err != nil {
			fmt.Printf("Warning: could not load config file: %v\n", err)
		}

		store := cache.New[middleware.CachedResponse](cache.Config{
			DefaultTTL:    config.AppConfig.DefaultTTL,
			MaxEntries:    config.AppConfig.MaxEntries,
			SweepInterval: config.AppConfig.SweepInterval,
		})
		store.StartSweeper()
		defer store.Stop()

		fmt.Printf("Cache configured: ttl=%s maxEntries=%d sweep=%s\n",
			config.AppConfig.DefaultTTL, config.AppConfig.MaxEntries, config.AppConfig.SweepInterval)

		srv := server.NewServer(store)
		cfg := server.GetDefaultServerConfig()

		// Override with command line flags if provided
		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}
		if it := cmd.Flag("idle-timeout").Value.String(); it != "" {
			if d, err := time.ParseDuration(it); err == nil {
				cfg.IdleTimeout = d
			}
		}

		return srv.Start(cfg)
	},
}

// configCmd prints the effective configuration as YAML
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  `Print the fully resolved configuration (flags, environment, file) as YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if path := cmd.Flag("write").Value.String(); path != "" {
			return config.SaveConfigFile(path)
		}
		out, err := yaml.Marshal(&config.AppConfig)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.respcache.yaml)")
	rootCmd.PersistentFlags().DurationVar(&defaultTTL, "default-ttl", 5*time.Minute, "default entry time-to-live")
	rootCmd.PersistentFlags().IntVar(&maxEntries, "max-entries", 1000, "maximum number of cached entries")
	rootCmd.PersistentFlags().DurationVar(&sweepInterval, "sweep-interval", 60*time.Second, "period of the background staleness sweep")

	viper.BindPFlag("default_ttl", rootCmd.PersistentFlags().Lookup("default-ttl"))
	viper.BindPFlag("max_entries", rootCmd.PersistentFlags().Lookup("max-entries"))
	viper.BindPFlag("sweep_interval", rootCmd.PersistentFlags().Lookup("sweep-interval"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)

	// Add serve command specific flags
	serveCmd.Flags().String("port", "8080", "port to run the ops server on")
	serveCmd.Flags().String("host", "localhost", "host to bind the ops server to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("idle-timeout", "60s", "idle timeout (e.g. 60s, 2m)")
	serveCmd.Flags().Duration("response-ttl", 5*time.Minute, "TTL for cached responses")
	viper.BindPFlag("response_ttl", serveCmd.Flags().Lookup("response-ttl"))

	configCmd.Flags().String("write", "", "write the effective configuration to this file instead of stdout")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".respcache")
	}

	viper.SetEnvPrefix("RESPCACHE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}
