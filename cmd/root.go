package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/call-analytics/internal/config"
	"github.com/sells-group/call-analytics/internal/report"
	"github.com/sells-group/call-analytics/pkg/clickup"
	"github.com/sells-group/call-analytics/pkg/zong"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "call-analytics",
	Short: "Call-center and task analytics reporting service",
	Long:  "Aggregates telephony call records and task-management data, correlates them by phone number and date, and serves derived reports over a JSON API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newReportService wires the upstream clients and reporting engine from the
// loaded configuration.
func newReportService() *report.Service {
	zc := zong.New(zong.Config{
		BaseURL:            cfg.Zong.BaseURL,
		VPBXID:             cfg.Zong.VPBXID,
		Token:              cfg.Zong.Token,
		Timeout:            time.Duration(cfg.Zong.TimeoutSecs) * time.Second,
		InsecureSkipVerify: cfg.Zong.InsecureSkipVerify,
	})
	cc := clickup.New(clickup.Config{
		BaseURL:    cfg.ClickUp.BaseURL,
		Token:      cfg.ClickUp.Token,
		Timeout:    time.Duration(cfg.ClickUp.TimeoutSecs) * time.Second,
		RatePerSec: cfg.ClickUp.RatePerSec,
	})
	return report.New(zc, cc, cfg.Reports, cfg.ClickUp)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
