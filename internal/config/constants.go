package config

import "time"

// Application constants
const (
	// Application Info
	AppName        = "nucdash"
	AppTitle       = "Nuclear Charge Radius Explorer"
	AppDescription = "Interactive exploration of nuclear charge radii across the chart of nuclides"

	// Server
	DefaultPort           = 8501
	DefaultRequestTimeout = 30 * time.Second

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Data
	DefaultSourceFile = "data/combined_data.csv"
	DefaultLocalNMin  = 18
	DefaultLocalNMax  = 30

	// Charts
	DefaultChartWidthInch    = 8.0
	DefaultChartHeightInch   = 5.0
	DefaultRenderConcurrency = 4

	// Pagination
	DefaultPageLimit = 100
	MaxPageLimit     = 5000

	// File Paths (relative to the base directory)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultChartsDir  = "charts"
	DefaultExportsDir = "exports"
	DefaultLogFile    = "logs/nucdash.log"

	// Export file names
	GlobalCSVName = "global.csv"
	LocalCSVName  = "local.csv"
	ViewsXLSXName = "views.xlsx"
)

// API endpoints
const (
	APIBasePath     = "/api"
	HealthEndpoint  = "/api/health"
	VersionEndpoint = "/api/version"
	MetricsEndpoint = "/metrics"
)
