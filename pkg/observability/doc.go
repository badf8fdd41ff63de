/*
Package observability provides tools for monitoring validator calls.

It includes Prometheus metrics fed by validation hooks, a structured audit log
of failures, and a helper to combine several hook sets into one.
*/
package observability
