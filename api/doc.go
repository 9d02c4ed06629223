// Package api defines the HTTP endpoints a relay app serves.
package api
