// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to CampHub lives: the MongoDB
// connection, the Firebase service account used to verify participant
// identities, the Stripe key for payment intents, and the bootstrap
// organizer account.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Identity verification
	FirebaseCredentials string // Base64-encoded Firebase service account JSON

	// Payments
	StripeSecretKey string // Stripe secret key for creating payment intents

	// Organizer bootstrap
	OrganizerEmail string // Email promoted to organizer on startup (blank disables)
}
