// Package buildinfo carries the identity metadata reported by the readiness
// status surface. Version is overridden at build time:
//
//	go build -ldflags "-X .../internal/platform/buildinfo.Version=1.2.3"
package buildinfo

var (
	Name        = "risk-categories-microservice"
	Version     = "0.0.0-dev"
	Description = "CRUD operations on the RiskCategory collection"
)
