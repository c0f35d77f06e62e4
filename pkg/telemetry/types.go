package telemetry

import (
	"net/http"
	"sync"
	"time"
)

// Collector identity. These are fixed for the napneko Umami instance.
const (
	collectorWebsite  = "596cbbb2-1740-4373-a807-cf3d0637bfa7"
	collectorReferrer = "https://trace.napneko.icu/"
	collectorHostname = "trace.napneko.icu"

	// collectorAddress is dialled directly; the endpoint host is only used
	// for the Host header and TLS server name.
	collectorAddress  = "104.19.42.72:443"
	collectorEndpoint = "https://umami.napneko.icu/api/send"

	cacheHeader = "x-umami-cache"
)

const (
	defaultDeviceGUID        = "default-user"
	defaultWorkMode          = "default"
	defaultClientVersion     = "1.0.0"
	defaultProductName       = "NapCat"
	defaultHeartbeatInterval = 5 * time.Minute
	defaultScreen            = "1920x1080"
	defaultLanguage          = "en-US"
)

// EventType is the top-level "type" of a collector request.
type EventType string

const (
	EventTypeEvent    EventType = "event"
	EventTypeIdentify EventType = "identify"
)

// Payload is the flat JSON object sent as the request "payload".
type Payload map[string]any

// requestBody is the wire body of every collector request.
type requestBody struct {
	Type    EventType `json:"type"`
	Payload Payload   `json:"payload"`
}

// HTTPClient interface for making HTTP requests (allows mocking in tests)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the telemetry reporter. It owns the session state for one
// process and must be released with Close.
type Client struct {
	logger            *telemetryLogger
	enabled           bool
	httpClient        HTTPClient
	endpoint          string
	sysInfo           SystemInfo
	heartbeatInterval time.Duration
	productName       string
	version           string
	bootTime          time.Time

	mu            sync.Mutex
	clientVersion string
	deviceGUID    string
	workMode      string
	userAgent     string
	cache         string
	closed        bool

	// hbMu is separate from mu: stopping a ticker waits for its goroutine,
	// which takes mu while building the heartbeat payload.
	hbMu      sync.Mutex
	heartbeat *heartbeat

	// inflight is only added to while holding mu and before closed is set,
	// so Close never races a new send against Wait.
	inflight sync.WaitGroup
}

// identity is a consistent snapshot of the fields used in payload URLs.
type identity struct {
	clientVersion string
	deviceGUID    string
	workMode      string
}

func (tc *Client) identity() identity {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return identity{
		clientVersion: tc.clientVersion,
		deviceGUID:    tc.deviceGUID,
		workMode:      tc.workMode,
	}
}

// UserAgent returns the User-Agent derived by Init, or "" before Init.
func (tc *Client) UserAgent() string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.userAgent
}

// CacheToken returns the token captured from the first collector response.
func (tc *Client) CacheToken() string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.cache
}

// DeviceGUID returns the current device identifier.
func (tc *Client) DeviceGUID() string {
	return tc.identity().deviceGUID
}
