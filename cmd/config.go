package cmd

import "time"

// Config carries everything the process needs from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL      string
	AmqpExchange string

	// DispatchHorizon is how long before the pickup time a scheduled trip
	// becomes eligible for matching.
	DispatchHorizon time.Duration

	// AcceptanceWindow is how long an assigned driver has to confirm before
	// the assignment expires.
	AcceptanceWindow time.Duration

	DispatchCronSpec string
	ExpiryCronSpec   string
}
