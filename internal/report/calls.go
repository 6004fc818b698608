package report

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/pkg/zong"
)

// ConnectedCalls lists calls with a "Connected" status in an explicit range.
func (s *Service) ConnectedCalls(ctx context.Context, startStr, endStr string) (model.CallListing, error) {
	return s.callListing(ctx, startStr, endStr,
		zong.FilterConnected, "All calls with 'Connected' status")
}

// OutboundCalls lists all outbound calls in an explicit range.
func (s *Service) OutboundCalls(ctx context.Context, startStr, endStr string) (model.CallListing, error) {
	return s.callListing(ctx, startStr, endStr,
		zong.FilterOutbound, "All outbound calls")
}

// ConnectedOutboundCalls lists outbound calls with a "Connected" status.
func (s *Service) ConnectedOutboundCalls(ctx context.Context, startStr, endStr string) (model.CallListing, error) {
	return s.callListing(ctx, startStr, endStr,
		zong.FilterConnectedOutbound, "Outbound calls with 'Connected' status")
}

func (s *Service) callListing(
	ctx context.Context,
	startStr, endStr string,
	filter func([]model.CallRecord) []model.CallRecord,
	description string,
) (model.CallListing, error) {
	if startStr == "" || endStr == "" {
		return model.CallListing{}, Validationf("start_date and end_date are required")
	}
	w, err := s.window(startStr, endStr)
	if err != nil {
		return model.CallListing{}, err
	}

	recs, err := s.zong.CallRecords(ctx, w.Start, w.End)
	if err != nil {
		return model.CallListing{}, eris.Wrap(err, "report: fetch call records")
	}

	calls := filter(recs)
	return model.CallListing{
		Calls:       calls,
		TotalCount:  len(calls),
		Description: description,
	}, nil
}
