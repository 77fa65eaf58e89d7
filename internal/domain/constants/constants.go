// Package constants defines shared domain-level constant values.
package constants

const (
	// EnvDevelop names the development environment.
	EnvDevelop = "develop"
	// EnvProduction names the production environment.
	EnvProduction = "production"
)

const (
	// PubSubProviderLocal selects the local HTTP publisher for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle selects Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

const (
	// EventOrderPlaced is published after an order commits.
	EventOrderPlaced = "order.placed"
	// EventOrderCancelled is published after an order transitions to Cancelled.
	EventOrderCancelled = "order.cancelled"
)
