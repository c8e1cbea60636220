package constants

// Route constants
const (
	HealthRoute        = "/health"
	WebhookRoute       = "/webhook"
	WebhookStatusRoute = "/webhook/status"
	WebhookToggleRoute = "/webhook/toggle"
	PaymentsRoute      = "/payments"
	StatsRoute         = "/payments/stats"
	SocketRoute        = "/ws"
	MetricsRoute       = "/metrics"
	MonitorRoute       = "/monitor"
	DocsRoute          = "/docs/api/"
	PublicRoute        = "/"
	// Docs file path relative to the project root
	DocsFilePath = "public/docs/v1/openapi.yml"
)
