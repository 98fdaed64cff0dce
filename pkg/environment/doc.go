// Package environment names the deployment an rbacd process runs in.
//
// Parse normalises configuration values such as "prod" or "stage", so
// callers compare against the Development, Staging and Production constants
// only. The logger package uses the value to pick its output defaults.
package environment
