package zong

import (
	"strings"

	"github.com/sells-group/call-analytics/internal/model"
)

// statusConnected is the free-text call response the provider uses for an
// answered call.
const statusConnected = "Connected"

// FilterConnected keeps calls whose response status is "Connected".
func FilterConnected(recs []model.CallRecord) []model.CallRecord {
	return filter(recs, func(r model.CallRecord) bool {
		return r.CallResponse == statusConnected
	})
}

// FilterOutbound keeps outbound calls regardless of status.
func FilterOutbound(recs []model.CallRecord) []model.CallRecord {
	return filter(recs, func(r model.CallRecord) bool {
		return strings.EqualFold(r.CallType, "outbound")
	})
}

// FilterConnectedOutbound keeps outbound calls with a "Connected" status.
func FilterConnectedOutbound(recs []model.CallRecord) []model.CallRecord {
	return filter(recs, func(r model.CallRecord) bool {
		return strings.EqualFold(r.CallType, "outbound") && r.CallResponse == statusConnected
	})
}

func filter(recs []model.CallRecord, keep func(model.CallRecord) bool) []model.CallRecord {
	out := make([]model.CallRecord, 0, len(recs))
	for _, r := range recs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
