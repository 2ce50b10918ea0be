package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Write today's daily summary now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadLocalConfig()
			if err != nil {
				return err
			}
			ctx := context.Background()
			c, err := openCore(ctx, cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			location, err := c.scheduler.RunNow(ctx, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), location)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print message statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadLocalConfig()
			if err != nil {
				return err
			}
			ctx := context.Background()
			c, err := openCore(ctx, cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			stats := c.stats.Snapshot()
			log := c.categorizer.Snapshot()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Total Messages: %d\n", stats.TotalMessages)
			fmt.Fprintf(out, "Since: %s\n", stats.StartDate.Format(time.DateTime))
			if stats.LastMessage != nil {
				fmt.Fprintf(out, "Last Message: %s\n", stats.LastMessage.Format(time.DateTime))
			}
			for _, cat := range domain.AllCategories {
				fmt.Fprintf(out, "%s: %d\n", cat, len(log[cat]))
			}
			if s := c.schedule.Get(); s.Enabled {
				fmt.Fprintf(out, "Active hours: %02d:00-%02d:00\n", s.StartHour, s.EndHour)
			}
			return nil
		},
	}
}
