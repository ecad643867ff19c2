// Package middleware provides ready-made [tadow.Middleware] implementations.
package middleware
