// Package resp provides the JSON response envelope used by all handlers.
package resp
