package telemetry

import (
	"context"
	"fmt"
	"maps"
	"time"
)

// collectorZone is the fixed UTC+8 offset used for identify timestamps.
var collectorZone = time.FixedZone("UTC+8", 8*60*60)

func formatCollectorTime(t time.Time) string {
	return t.In(collectorZone).Format(time.DateTime)
}

func (tc *Client) title() string {
	return tc.productName + " " + tc.version
}

func (tc *Client) tracePath(id identity, name string) string {
	return fmt.Sprintf("/%s/%s/%s/%s", id.clientVersion, tc.version, id.workMode, name)
}

// IdentifyUser stores deviceGUID verbatim and sends one identify event
// describing the host and application.
func (tc *Client) IdentifyUser(ctx context.Context, deviceGUID string) {
	tc.mu.Lock()
	tc.deviceGUID = deviceGUID
	tc.mu.Unlock()

	id := tc.identity()

	sysTime := time.Now()
	if uptime, err := tc.sysInfo.Uptime(); err != nil {
		tc.logger.Debug("Failed to read system uptime", "error", err)
	} else {
		sysTime = sysTime.Add(-uptime)
	}

	data := map[string]any{
		"napcat_version":  tc.version,
		"qq_version":      id.clientVersion,
		"napcat_working":  id.workMode,
		"device_guid":     id.deviceGUID,
		"device_platform": tc.sysInfo.Platform(),
		"device_arch":     tc.sysInfo.Arch(),
		"boot_time":       formatCollectorTime(tc.bootTime),
		"sys_time":        formatCollectorTime(sysTime),
	}

	tc.sendEvent(ctx, Payload{
		"website":  collectorWebsite,
		"hostname": collectorHostname,
		"referrer": collectorReferrer,
		"title":    tc.title(),
		"url":      tc.tracePath(id, "identify"),
	}, data, EventTypeIdentify)
}

// SendEvent sends a structured event. Its fields are spread into the payload
// next to the collector identity, locale, screen and the nested data.
func (tc *Client) SendEvent(ctx context.Context, event Payload, data map[string]any) {
	tc.sendEvent(ctx, event, data, EventTypeEvent)
}

// SendNamedEvent sends an event whose payload carries only its name.
func (tc *Client) SendNamedEvent(ctx context.Context, name string, data map[string]any) {
	tc.sendEvent(ctx, Payload{"event": name}, data, EventTypeEvent)
}

func (tc *Client) sendEvent(ctx context.Context, event Payload, data map[string]any, eventType EventType) {
	payload := make(Payload, len(event)+6)
	maps.Copy(payload, event)

	nested := make(map[string]any, len(data))
	maps.Copy(nested, data)

	payload["hostname"] = collectorHostname
	payload["referrer"] = collectorReferrer
	payload["website"] = collectorWebsite
	payload["language"] = getLanguage()
	payload["screen"] = defaultScreen
	payload["data"] = nested

	tc.sendRequest(ctx, payload, eventType)
}

// SendTrace sends a page-view shaped ping for eventName. A non-empty data is
// appended to the url as a trailing path segment.
func (tc *Client) SendTrace(ctx context.Context, eventName, data string) {
	url := tc.tracePath(tc.identity(), eventName)
	if data != "" {
		url += "/" + data
	}

	tc.sendRequest(ctx, Payload{
		"website":  collectorWebsite,
		"hostname": collectorHostname,
		"title":    tc.title(),
		"url":      url,
		"referrer": collectorReferrer,
	}, EventTypeEvent)
}

func (tc *Client) heartbeatEvent() Payload {
	return Payload{
		"name":  "heartbeat",
		"title": tc.title(),
		"url":   tc.tracePath(tc.identity(), "heartbeat"),
	}
}
