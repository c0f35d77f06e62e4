// Package telemetry provides a best-effort analytics beacon for beacon hosts.
//
// A Client reports an identify event at startup, arbitrary named events,
// lightweight page-view style traces and a periodic heartbeat to a fixed
// Umami collector over HTTPS. Every send is fire-and-forget: calls return
// immediately and delivery failures are logged at debug level and dropped.
// Telemetry can be disabled with TELEMETRY_ENABLED=false.
//
// Files in this package:
// - client.go: Client construction, options and Init
// - events.go: identify, event and trace payload builders
// - http.go: the single transport primitive and cache header handling
// - heartbeat.go: heartbeat ticker lifecycle, Wait and Close
// - utils.go: system information, locale and enablement helpers
// - types.go: payload types, collector constants and the Client struct
package telemetry
