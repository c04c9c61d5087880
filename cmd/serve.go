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
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gowindtunnel/cars"
	"github.com/notargets/gowindtunnel/database"
	"github.com/notargets/gowindtunnel/server"
	"github.com/notargets/gowindtunnel/tunnel"
)

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stream wind tunnel frames to browser clients over a websocket",
	Long: `
Serves /ws: each connection gets its own wind tunnel, receives a JSON frame per tick and
sends JSON inputs (wind speed, car angle, car type, nudges, streamline settings).

gowindtunnel serve --addr :8080`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		db, err := openDatabase()
		if err != nil {
			return
		}
		defer func() { _ = database.Close(db) }()
		placements, err := cars.NewStore(db, cars.DefaultKeys(), log)
		if err != nil {
			return
		}
		sinks, closeSinks := openSinks(ctx, db)
		defer closeSinks()

		cfg := tunnel.DefaultConfig()
		cfg.Turbulence = tunnel.Turbulence(viper.GetString("serve.turbulence"))
		srv, err := server.New(cfg, cars.NewCatalog(), log)
		if err != nil {
			return
		}
		srv.FrameRate = viper.GetInt("serve.frameRate")
		srv.Placements = placements
		srv.Sinks = sinks

		mux := http.NewServeMux()
		mux.Handle("/", srv.Handler())
		if dir := viper.GetString("serve.assets"); dir != "" {
			mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
		}
		addr := viper.GetString("serve.addr")
		hs := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		log.Info().Str("addr", addr).Int("frameRate", srv.FrameRate).Msg("listening")
		return hs.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(ServeCmd)
	ServeCmd.Flags().String("addr", ":8080", "listen address")
	ServeCmd.Flags().Int("frameRate", 60, "frames per second sent to each client")
	ServeCmd.Flags().String("turbulence", string(tunnel.RandomTurbulence), "turbulence source: random, perlin or none")
	ServeCmd.Flags().String("assets", "", "directory of static client files served under /static/")
	_ = viper.BindPFlag("serve.addr", ServeCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("serve.frameRate", ServeCmd.Flags().Lookup("frameRate"))
	_ = viper.BindPFlag("serve.turbulence", ServeCmd.Flags().Lookup("turbulence"))
	_ = viper.BindPFlag("serve.assets", ServeCmd.Flags().Lookup("assets"))
}
