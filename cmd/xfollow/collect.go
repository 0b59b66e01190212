package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"xfollow/pkg/collector"
	"xfollow/pkg/console"
	"xfollow/pkg/export"
	"xfollow/pkg/logger"
	"xfollow/pkg/session"
	"xfollow/pkg/storage"
	"xfollow/pkg/ui"
)

var (
	outputDir    string
	scanInterval time.Duration
	rowMarker    string
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect [page.html]",
	Short: "Start the interactive collector console",
	Long: `Start the collector console. Commands are read from standard input:

  open <page.html>   start scanning a saved page (state is kept across pages)
  saveFollowing()    merge the rows seen on this page into "following"
  saveFollowers()    merge the rows seen on this page into "followers"
  exportFinal()      write following_recovery.json
  showStatus()       show how many records are held
  stopCollect()      stop rescanning the page
  exit               leave the console

The page file is rescanned on every interval. Snapshots that stop before the
closing </body> or </html> tag are skipped until the save completes.`,
	Example: `  # Collect, then follow the prompts
  xfollow collect ~/Downloads/following.html

  # Run a scripted session
  printf 'saveFollowing()\nopen followers.html\nsaveFollowers()\nexportFinal()\n' | xfollow collect following.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory to write the recovery file to")
	collectCmd.Flags().DurationVar(&scanInterval, "scan-interval", 0, "how often the page is rescanned (default 2s)")
	collectCmd.Flags().StringVar(&rowMarker, "row-marker", "", "data-testid of a user row (default UserCell)")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(map[string]interface{}{
		"output":        outputDir,
		"scan-interval": scanInterval,
		"row-marker":    rowMarker,
	})
	if err != nil {
		return err
	}

	log := logger.GetLogger()

	storageMgr, err := storage.NewManager(cfg.Output.Directory)
	if err != nil {
		return fmt.Errorf("failed to prepare output directory: %w", err)
	}

	exporter := export.NewExporter(storageMgr, cfg.Output.ProfileBaseURL, log,
		export.WithFileName(cfg.Output.FileName))

	ctrl := session.New(session.Options{
		Namespace:    cfg.Collector.Namespace,
		ScanInterval: cfg.Collector.ScanInterval,
		RowMarker:    cfg.Collector.RowMarker,
	}, collector.NewRegistry(log), exporter, log)
	defer ctrl.Stop()

	ctx := cmd.Context()

	interactive := console.IsInteractive(os.Stdin)
	c := console.New(ctrl, cmd.OutOrStdout(), interactive)

	if interactive {
		ui.NewPrinter(cmd.OutOrStdout()).Banner()
		c.Help()
	}
	if len(args) == 1 {
		c.Open(ctx, args[0])
	}

	return c.Run(ctx, cmd.InOrStdin())
}
