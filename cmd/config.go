package cmd

// Config carries all runtime settings for the service. Values are read from
// the environment by cmd/app.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AssignmentMode is HALL or AUTO.
	AssignmentMode string

	// DefaultCommissionRateBP is the platform commission in basis points,
	// applied when a restaurant has no override.
	DefaultCommissionRateBP int64

	UnpaidTimeoutMinutes            int
	PaidUnassignedAutoAssignMinutes int
	PaidUnassignedTimeoutMinutes    int
	ReconcileIntervalSeconds        int

	RoutingBaseURL   string
	RoutingAPIKey    string
	RoutingTimeoutMS int
}
