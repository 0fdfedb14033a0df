package constant

// Routes shared by the intake controllers and the portal client.
const (
	APIPrefix = "/api"

	RouteTribunalReportForms = "/tribunal-report-forms"
	RouteReimbursementForms  = "/reimbursement-forms"
	RouteSendEmail           = "/send-email"

	// UploadFieldName is the multipart field carrying a client-rendered report.
	UploadFieldName = "file"
)
