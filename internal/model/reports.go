package model

// TimePeriod echoes the resolved reporting window back to the caller.
type TimePeriod struct {
	StartDate Date `json:"start_date"`
	EndDate   Date `json:"end_date"`
}

// CallListing is the response for the call listing endpoints.
type CallListing struct {
	Calls       []CallRecord `json:"calls"`
	TotalCount  int          `json:"total_count"`
	Description string       `json:"description"`
}

// DailySurveyCount is one day's survey count.
type DailySurveyCount struct {
	Date  Date `json:"date"`
	Count int  `json:"count"`
}

// SurveyTotals is the response for the trailing-window survey count report.
type SurveyTotals struct {
	TotalSurveyCount int                `json:"total_survey_count"`
	DateWise         []DailySurveyCount `json:"date_wise_count"`
}

// InstalledDay is one day's installed-survey count and hours.
type InstalledDay struct {
	Date  Date    `json:"date"`
	Count int     `json:"count"`
	Hours float64 `json:"daywise_hours"`
}

// InstalledSurveyReport summarizes installations with recorded install hours.
type InstalledSurveyReport struct {
	TotalInstalled int            `json:"total_installed_surveys"`
	TotalHours     float64        `json:"total_installed_hours"`
	DateWise       []InstalledDay `json:"date_wise_count"`
}

// DailyPending is one day's pending-task count, keyed by creation date.
type DailyPending struct {
	Date         Date `json:"date"`
	PendingCalls int  `json:"pending_calls"`
}

// PendingReport summarizes tasks still in a pending status.
type PendingReport struct {
	TotalPending int            `json:"total_pending_calls"`
	DateWise     []DailyPending `json:"date_wise"`
}

// DailyPayment is one day's installation payment sums.
type DailyPayment struct {
	Date          Date    `json:"date"`
	Installations int     `json:"installations"`
	TotalPayable  float64 `json:"total_payable"`
	TotalReceived float64 `json:"total_received"`
}

// PaymentReport reconciles payable against received amounts per install date.
type PaymentReport struct {
	TotalInstallations   int            `json:"total_installations"`
	TotalAmountPayable   float64        `json:"total_amount_payable"`
	TotalAmountReceived  float64        `json:"total_amount_received"`
	TotalAmountRemaining float64        `json:"total_amount_remaining"`
	DailyBreakdown       []DailyPayment `json:"daily_breakdown"`
}

// FeedbackEntry is one customer feedback item. NPS is nil when the source
// value was absent or outside [0, 10].
type FeedbackEntry struct {
	Name    string   `json:"name"`
	NPS     *float64 `json:"nps"`
	Comment string   `json:"comment,omitempty"`
	TaskURL string   `json:"task_url"`
}

// DailyFeedback groups feedback entries for one day. AvgNPS is nil when no
// entry that day carried a usable score.
type DailyFeedback struct {
	Date         Date            `json:"date"`
	TotalEntries int             `json:"total_entries"`
	AvgNPS       *float64        `json:"avg_nps"`
	Entries      []FeedbackEntry `json:"entries"`
}

// FeedbackReport is the response for the feedback endpoint.
type FeedbackReport struct {
	TotalFeedbackCalls int             `json:"total_feedback_calls"`
	DailyBreakdown     []DailyFeedback `json:"daily_breakdown"`
}

// ConvertedCall is an outbound connected call matched to an installed lead.
type ConvertedCall struct {
	CallID          string `json:"call_id,omitempty"`
	PhoneNumber     string `json:"phone_number"`
	NormalizedPhone string `json:"normalized_phone"`
	CallTime        string `json:"call_time"`
	Duration        int    `json:"duration"`
	CustomerName    string `json:"customer_name"`
	TaskURL         string `json:"task_url,omitempty"`
	CallDate        Date   `json:"call_date"`
}

// DailyCount is a generic per-day count bucket.
type DailyCount struct {
	Date  Date `json:"date"`
	Count int  `json:"count"`
}

// ConversionReport is the converted-calls analysis response.
type ConversionReport struct {
	TotalConvertedCalls int             `json:"total_converted_calls"`
	ConversionRate      float64         `json:"conversion_rate"`
	ConvertedCalls      []ConvertedCall `json:"converted_calls"`
	DailyBreakdown      []DailyCount    `json:"daily_breakdown"`
	TimePeriod          TimePeriod      `json:"time_period"`
}
