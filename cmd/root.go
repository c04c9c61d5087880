/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/notargets/gowindtunnel/database"
	"github.com/notargets/gowindtunnel/recorder"
	"github.com/notargets/gowindtunnel/telemetry"
)

var (
	cfgFile string
	log     = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gowindtunnel",
	Short: "Virtual wind tunnel for car aerodynamics",
	Long: `
Simulates air flow around a car in a wind tunnel: a procedural velocity field, advected
particles and streamlines, and a closed form aerodynamic force model.

gowindtunnel run -I input.yaml
gowindtunnel serve
gowindtunnel dashboard`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = telemetry.SetupLogging(viper.GetString("logLevel"), os.Stderr)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gowindtunnel.yaml)")
	rootCmd.PersistentFlags().String("logLevel", "info", "log level: trace, debug, info, warn, error")
	_ = viper.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("logLevel"))
	setDefaults()
}

func setDefaults() {
	home, err := homedir.Dir()
	if err != nil {
		home = "."
	}
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("storage.driver", string(database.SQLite))
	viper.SetDefault("storage.path", filepath.Join(home, ".gowindtunnel.db"))
	viper.SetDefault("storage.dsn", "")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.url", "http://localhost:8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "windtunnel")
	viper.SetDefault("influx.bucket", "windtunnel")

	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("serve.frameRate", 60)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".gowindtunnel")
	}
	viper.SetEnvPrefix("WINDTUNNEL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func openDatabase() (*gorm.DB, error) {
	return database.Open(database.Config{
		Driver: database.Driver(viper.GetString("storage.driver")),
		Path:   viper.GetString("storage.path"),
		DSN:    viper.GetString("storage.dsn"),
	}, log)
}

// openSinks returns the configured test sinks and a function releasing them. A sink that
// cannot be reached is logged and skipped.
func openSinks(ctx context.Context, db *gorm.DB) (sinks []recorder.Sink, closeFn func()) {
	closeFn = func() {}
	if db != nil {
		store, err := recorder.NewStore(db, log)
		if err != nil {
			log.Warn().Err(err).Msg("history store disabled")
		} else {
			sinks = append(sinks, store)
		}
	}
	if viper.GetBool("influx.enabled") {
		is, err := recorder.NewInfluxSink(ctx, recorder.InfluxConfig{
			URL:    viper.GetString("influx.url"),
			Token:  viper.GetString("influx.token"),
			Org:    viper.GetString("influx.org"),
			Bucket: viper.GetString("influx.bucket"),
		}, log)
		if err != nil {
			log.Warn().Err(err).Msg("influx sink disabled")
		} else {
			sinks = append(sinks, is)
			closeFn = is.Close
		}
	}
	return
}
