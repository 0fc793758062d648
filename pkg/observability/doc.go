/*
Package observability turns viewer lifecycle hooks into logs and Prometheus metrics.

Hooks are plain domain.LifecycleHooks values, so several sinks can be combined
with Combine and handed to the engine through vista.WithLifecycleHooks.
*/
package observability
