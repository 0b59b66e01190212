package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"xfollow/pkg/export"
	"xfollow/pkg/logger"
	"xfollow/pkg/ui"
)

var mergeInto string

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge <recovery.json>",
	Short: "Merge a recovery file into the tracker's posts.json",
	Long: `Append every record of a recovery file whose authorHandle is not
already present in posts.json. Existing entries are never changed.`,
	Example: `  xfollow merge following_recovery.json --into ./data/posts.json`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(nil); err != nil {
			return err
		}

		report, err := export.MergeInto(mergeInto, args[0])
		if err != nil {
			return err
		}

		logger.WithField("posts", mergeInto).Info("recovery file merged")

		out := ui.NewPrinter(cmd.OutOrStdout())
		out.Info("existing records", report.Existing)
		out.Info("recovery records", report.Incoming)
		out.Info("added", report.Added)
		out.Info("total", report.Total)
		out.Info("followed", report.Followed)
		out.Success("[SUCCESS] saved to: " + mergeInto)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVar(&mergeInto, "into", filepath.Join("data", "posts.json"), "posts file to merge into")
}
