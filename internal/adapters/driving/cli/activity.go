package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var activityOutput string

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Usage reporting",
}

var activityReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show monthly usage and recorded activity",
	RunE:  runActivityReport,
}

var activityExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the activity log as CSV",
	RunE:  runActivityExport,
}

func init() {
	activityExportCmd.Flags().StringVarP(&activityOutput, "output", "o", "", "write CSV to file instead of stdout")
	activityCmd.AddCommand(activityReportCmd)
	activityCmd.AddCommand(activityExportCmd)
	rootCmd.AddCommand(activityCmd)
}

func runActivityReport(cmd *cobra.Command, _ []string) error {
	if activityLog == nil {
		return errors.New("activity log not configured")
	}

	usage, err := activityLog.MonthlyUsage()
	if err != nil {
		return fmt.Errorf("reading access log: %w", err)
	}

	events, err := activityLog.Events()
	if err != nil {
		return fmt.Errorf("reading activity log: %w", err)
	}

	cmd.Println("Monthly logins:")
	if len(usage) == 0 {
		cmd.Println("  (none)")
	} else {
		months := make([]string, 0, len(usage))
		for m := range usage {
			months = append(months, m)
		}
		sort.Strings(months)
		for _, m := range months {
			cmd.Printf("  %s  %d\n", m, usage[m])
		}
	}

	byType := make(map[string]int)
	for _, e := range events {
		byType[e.Event]++
	}

	cmd.Println()
	cmd.Printf("Recorded events: %d\n", len(events))
	types := make([]string, 0, len(byType))
	for tpe := range byType {
		types = append(types, tpe)
	}
	sort.Strings(types)
	for _, tpe := range types {
		cmd.Printf("  %s  %d\n", tpe, byType[tpe])
	}

	return nil
}

func runActivityExport(cmd *cobra.Command, _ []string) error {
	if activityLog == nil {
		return errors.New("activity log not configured")
	}

	events, err := activityLog.Events()
	if err != nil {
		return fmt.Errorf("reading activity log: %w", err)
	}

	out := cmd.OutOrStdout()
	if activityOutput != "" {
		f, err := os.Create(activityOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", activityOutput, err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"Timestamp", "Event", "Query", "URL"}); err != nil {
		return err
	}
	for _, e := range events {
		record := []string{
			e.Timestamp.Format(time.RFC3339),
			e.Event,
			e.Fields["query"],
			e.Fields["url"],
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if activityOutput != "" {
		cmd.Printf("Exported %d events to %s\n", len(events), activityOutput)
	}
	return nil
}
