/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/persload/internal/iofs"
	"github.com/gnames/persload/internal/iologger"
	app "github.com/gnames/persload/pkg"
	"github.com/gnames/persload/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// A new instance is created on every call.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "persload",
		Short:   "persload reconciles person records from CSV files with a database",
		Long: `persload reads person records from CSV or XLSX files and
reconciles them with a database.

For every row persload:
  - updates the stored person with the same surname, if there is one
  - creates a new person otherwise, together with a missing office
  - skips rows that do not pass validation and reports why

New persons are inserted in batches. If a batch fails, its persons are
inserted one by one, so a single bad row never loses the whole batch.

Supported databases: PostgreSQL, SQLite and MySQL.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (PERSLOAD_*)
  3. Config file (~/.config/persload/config.yaml)
  4. Built-in defaults

Environment variables:
  PERSLOAD_DATABASE_DRIVER        postgres, sqlite or mysql
  PERSLOAD_DATABASE_HOST          database host
  PERSLOAD_DATABASE_PASSWORD      database password
  PERSLOAD_LOAD_BATCH_SIZE        persons per bulk insert
  PERSLOAD_LOG_LEVEL              debug, info, warn or error`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "persload version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for persload")

	rootCmd.AddCommand(
		getLoadCmd(),
		getCreateCmd(),
		getMigrateCmd(),
		getConfigCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})
	if cfg.Database.Path == "" {
		cfg.Update([]config.Option{
			config.OptDatabasePath(config.SQLiteFilePath(homeDir)),
		})
	}

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Database.Driver,
	)

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("PERSLOAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "PERSLOAD_DATABASE_DRIVER")
	v.BindEnv("database.host", "PERSLOAD_DATABASE_HOST")
	v.BindEnv("database.port", "PERSLOAD_DATABASE_PORT")
	v.BindEnv("database.user", "PERSLOAD_DATABASE_USER")
	v.BindEnv("database.password", "PERSLOAD_DATABASE_PASSWORD")
	v.BindEnv("database.database", "PERSLOAD_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "PERSLOAD_DATABASE_SSL_MODE")
	v.BindEnv("database.path", "PERSLOAD_DATABASE_PATH")

	// Load configuration
	v.BindEnv("load.batch_size", "PERSLOAD_LOAD_BATCH_SIZE")
	v.BindEnv("load.encoding", "PERSLOAD_LOAD_ENCODING")

	// Log configuration
	v.BindEnv("log.level", "PERSLOAD_LOG_LEVEL")
	v.BindEnv("log.format", "PERSLOAD_LOG_FORMAT")
	v.BindEnv("log.destination", "PERSLOAD_LOG_DESTINATION")

	v.AutomaticEnv()
}
