// Package pg wires PostgreSQL connectivity for the service: pool creation
// with retry, goose-based schema migrations, a readiness check and error
// classification helpers shared by repositories.
package pg
