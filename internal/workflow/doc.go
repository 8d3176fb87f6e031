// Package workflow coordinates the lifecycle of one project directory: burst
// detection over the RAW captures, the persisted collection the commands
// operate on, catalog refreshes, and panorama materialization through the
// external tool clients.
//
// The manager is command-scoped, not resident: each CLI invocation builds
// one, performs one operation, and exits. The persisted collection is the
// only state shared between invocations; the catalog is a queryable cache
// refreshed on every detection run.
package workflow
