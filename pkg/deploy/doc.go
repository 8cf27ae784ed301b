// Package deploy implements idempotent symlink deployment: replacing
// each managed target with a link into the configuration store,
// honoring a force policy, and reporting per-item success.
package deploy
