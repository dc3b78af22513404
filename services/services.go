package services

import "context"

// Service is an interface for all services that run in the background next to
// the application, like periodic stats logging.
type Service interface {
	// Run the Service until the given context.Context is done.
	Run(ctx context.Context) error
}
