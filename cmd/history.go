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
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/notargets/gowindtunnel/database"
	"github.com/notargets/gowindtunnel/recorder"
)

// HistoryCmd represents the history command
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List, summarize, export and delete persisted test results",
}

func withHistory(cmd *cobra.Command, fn func(ctx context.Context, s *recorder.Store) error) error {
	var (
		ctx = cmd.Context()
		db  *gorm.DB
		s   *recorder.Store
		err error
	)
	if ctx == nil {
		ctx = context.Background()
	}
	if db, err = openDatabase(); err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	if s, err = recorder.NewStore(db, log); err != nil {
		return err
	}
	return fn(ctx, s)
}

func listFlags(cmd *cobra.Command) (session string, limit int) {
	session, _ = cmd.Flags().GetString("session")
	limit, _ = cmd.Flags().GetInt("limit")
	return
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored tests, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, limit := listFlags(cmd)
		return withHistory(cmd, func(ctx context.Context, s *recorder.Store) error {
			tests, err := s.List(ctx, session, limit)
			if err != nil {
				return err
			}
			for _, tr := range tests {
				fmt.Printf("#%-4d %s %-7s @ %5.1f MPH, %5.1f deg  D:%8.1fN L:%8.1fN  %s\n",
					tr.ID, tr.Timestamp.Local().Format("2006-01-02 15:04:05"), tr.CarType,
					tr.WindSpeed, tr.CarAngle, tr.DragForce, tr.LiftForce, tr.Notes)
			}
			return nil
		})
	},
}

var historySessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Print the stored session ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, s *recorder.Store) error {
			sessions, err := s.Sessions(ctx)
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(sessions, "\n"))
			return nil
		})
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize stored tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, limit := listFlags(cmd)
		return withHistory(cmd, func(ctx context.Context, s *recorder.Store) error {
			tests, err := s.List(ctx, session, limit)
			if err != nil {
				return err
			}
			if len(tests) == 0 {
				return recorder.ErrNoTests
			}
			st := recorder.Compute(tests)
			fmt.Printf("[%d]\t\t= Tests\n", st.TotalTests)
			fmt.Printf("%8.2f\t= Average Drag (N), range %.2f - %.2f\n", st.AverageDrag, st.MinDrag, st.MaxDrag)
			fmt.Printf("%8.2f\t= Average Lift (N), range %.2f - %.2f\n", st.AverageLift, st.MinLift, st.MaxLift)
			fmt.Printf("%8.1f\t= Average Wind Speed (MPH), range %g - %g\n",
				st.AverageWindSpeed, st.MinWindSpeed, st.MaxWindSpeed)
			return nil
		})
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write stored tests as CSV to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, limit := listFlags(cmd)
		return withHistory(cmd, func(ctx context.Context, s *recorder.Store) error {
			tests, err := s.List(ctx, session, limit)
			if err != nil {
				return err
			}
			write := func(w io.Writer) error { return recorder.WriteCSV(w, tests) }
			if len(args) == 0 {
				return write(os.Stdout)
			}
			return writeFile(args[0], write)
		})
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one session's tests, or every test",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := listFlags(cmd)
		return withHistory(cmd, func(ctx context.Context, s *recorder.Store) error {
			n, err := s.Delete(ctx, session)
			if err != nil {
				return err
			}
			log.Info().Int64("deleted", n).Msg("history deleted")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(HistoryCmd)
	HistoryCmd.AddCommand(historyListCmd, historySessionsCmd, historyStatsCmd, historyExportCmd, historyDeleteCmd)
	HistoryCmd.PersistentFlags().String("session", "", "restrict to one session id")
	HistoryCmd.PersistentFlags().Int("limit", 0, "newest tests to include, 0 for all")
}
