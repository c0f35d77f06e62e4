package telemetry

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/napneko/beacon/pkg/httpclient"
	"github.com/napneko/beacon/pkg/useragent"
)

// telemetryLogger wraps slog.Logger to automatically prepend "[Telemetry]" to all messages
type telemetryLogger struct {
	logger *slog.Logger
}

// NewTelemetryLogger creates a new telemetry logger that automatically prepends "[Telemetry]" to all messages
func NewTelemetryLogger(logger *slog.Logger) *telemetryLogger {
	return &telemetryLogger{logger: logger}
}

func (tl *telemetryLogger) Debug(msg string, args ...any) {
	tl.logger.Debug("[Telemetry] "+msg, args...)
}

func (tl *telemetryLogger) Info(msg string, args ...any) {
	tl.logger.Info("[Telemetry] "+msg, args...)
}

func (tl *telemetryLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return tl.logger.Enabled(ctx, level)
}

type Opt func(*Client)

// WithHTTPClient replaces the pinned collector client.
func WithHTTPClient(client HTTPClient) Opt {
	return func(tc *Client) {
		tc.httpClient = client
	}
}

// WithEndpoint overrides the collector URL.
func WithEndpoint(endpoint string) Opt {
	return func(tc *Client) {
		tc.endpoint = endpoint
	}
}

// WithHeartbeatInterval sets the heartbeat period. Non-positive values are
// ignored and the default of five minutes is kept.
func WithHeartbeatInterval(interval time.Duration) Opt {
	return func(tc *Client) {
		if interval > 0 {
			tc.heartbeatInterval = interval
		}
	}
}

func WithSystemInfo(info SystemInfo) Opt {
	return func(tc *Client) {
		tc.sysInfo = info
	}
}

// WithProductName sets the prefix of page titles ("NapCat" by default).
func WithProductName(name string) Opt {
	return func(tc *Client) {
		tc.productName = name
	}
}

// WithEnabled overrides the TELEMETRY_ENABLED environment setting.
func WithEnabled(enabled bool) Opt {
	return func(tc *Client) {
		tc.enabled = enabled
	}
}

// NewClient creates a reporter for the application at version. Nothing is
// sent until Init is called.
func NewClient(logger *slog.Logger, version string, opts ...Opt) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tc := &Client{
		logger:            NewTelemetryLogger(logger),
		enabled:           GetTelemetryEnabled(),
		endpoint:          collectorEndpoint,
		sysInfo:           hostInfo{},
		heartbeatInterval: defaultHeartbeatInterval,
		productName:       defaultProductName,
		version:           version,
		bootTime:          time.Now(),
		clientVersion:     defaultClientVersion,
		deviceGUID:        defaultDeviceGUID,
		workMode:          defaultWorkMode,
	}

	for _, opt := range opts {
		opt(tc)
	}

	if tc.httpClient == nil {
		tc.httpClient = defaultHTTPClient(tc.logger)
	}

	tc.logger.Debug("Client created", "enabled", tc.enabled, "endpoint", tc.endpoint, "version", version)

	return tc
}

func defaultHTTPClient(logger *telemetryLogger) HTTPClient {
	client, err := httpclient.New(
		httpclient.WithDialAddress(collectorAddress),
		httpclient.WithTimeout(30*time.Second),
	)
	if err != nil {
		logger.Debug("Falling back to default HTTP client", "error", err)
		return &http.Client{Timeout: 30 * time.Second}
	}
	return client
}

// Init configures the session identity, derives the User-Agent, sends the
// identify event and starts the heartbeat. The User-Agent is derived on the
// first call only.
func (tc *Client) Init(ctx context.Context, clientVersion, deviceGUID, workMode string) {
	tc.Identify(ctx, clientVersion, deviceGUID, workMode)
	tc.StartHeartbeat()
}

// Identify is Init without the heartbeat.
func (tc *Client) Identify(ctx context.Context, clientVersion, deviceGUID, workMode string) {
	tc.mu.Lock()
	tc.clientVersion = clientVersion
	tc.workMode = workMode
	if tc.userAgent == "" {
		tc.userAgent = useragent.Select(tc.sysInfo.Platform(), tc.sysInfo.Release)
	}
	ua := tc.userAgent
	tc.mu.Unlock()

	tc.logger.Debug("Initialized", "client_version", clientVersion, "work_mode", workMode, "user_agent", ua)

	tc.IdentifyUser(ctx, deviceGUID)
}
