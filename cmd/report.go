package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	reportStartDate string
	reportEndDate   string
	reportDays      int
	reportCallKind  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run one report and print it as JSON",
}

var reportCallsCmd = &cobra.Command{
	Use:   "calls",
	Short: "List calls for an explicit date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newReportService()
		ctx := cmd.Context()
		switch reportCallKind {
		case "connected":
			out, err := svc.ConnectedCalls(ctx, reportStartDate, reportEndDate)
			return printJSON(os.Stdout, out, err)
		case "outbound":
			out, err := svc.OutboundCalls(ctx, reportStartDate, reportEndDate)
			return printJSON(os.Stdout, out, err)
		case "connected-outbound":
			out, err := svc.ConnectedOutboundCalls(ctx, reportStartDate, reportEndDate)
			return printJSON(os.Stdout, out, err)
		default:
			return eris.Errorf("unknown call kind %q (connected, outbound, connected-outbound)", reportCallKind)
		}
	},
}

var reportSurveysCmd = &cobra.Command{
	Use:   "surveys",
	Short: "Daily survey counts for a date range",
	RunE: runReport(func(ctx context.Context) (any, error) {
		return newReportService().SurveysByRange(ctx, reportStartDate, reportEndDate)
	}),
}

var reportFeedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Feedback report with NPS averages",
	RunE: runReport(func(ctx context.Context) (any, error) {
		return newReportService().FeedbackReport(ctx, reportStartDate, reportEndDate)
	}),
}

var reportPaymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Payment reconciliation report",
	RunE: runReport(func(ctx context.Context) (any, error) {
		return newReportService().PaymentsReport(ctx, reportStartDate, reportEndDate)
	}),
}

var reportPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Pending task report",
	RunE: runReport(func(ctx context.Context) (any, error) {
		return newReportService().PendingTasks(ctx, reportStartDate, reportEndDate)
	}),
}

var reportConversionCmd = &cobra.Command{
	Use:   "conversion",
	Short: "Converted-call analysis for a trailing day count",
	RunE: runReport(func(ctx context.Context) (any, error) {
		return newReportService().ConvertedCalls(ctx, reportDays)
	}),
}

var reportB2BCmd = &cobra.Command{
	Use:   "b2b",
	Short: "Match call records against tagged B2B leads",
	RunE: runReport(func(ctx context.Context) (any, error) {
		return newReportService().CompareB2B(ctx, reportStartDate, reportEndDate)
	}),
}

func runReport(fn func(ctx context.Context) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		out, err := fn(cmd.Context())
		return printJSON(os.Stdout, out, err)
	}
}

func printJSON(w io.Writer, out any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return eris.Wrap(err, "encode report")
	}
	return nil
}

func init() {
	reportCmd.PersistentFlags().StringVar(&reportStartDate, "start", "", "start date (YYYY-MM-DD)")
	reportCmd.PersistentFlags().StringVar(&reportEndDate, "end", "", "end date (YYYY-MM-DD)")
	reportConversionCmd.Flags().IntVar(&reportDays, "days", 0, "trailing day count (default from config)")
	reportCallsCmd.Flags().StringVar(&reportCallKind, "kind", "connected", "call listing kind")

	reportCmd.AddCommand(
		reportCallsCmd,
		reportSurveysCmd,
		reportFeedbackCmd,
		reportPaymentsCmd,
		reportPendingCmd,
		reportConversionCmd,
		reportB2BCmd,
	)
	rootCmd.AddCommand(reportCmd)
}
