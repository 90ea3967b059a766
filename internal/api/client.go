package api

import (
	"net"
	nethttp "net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/http2"

	"github.com/sitedesk/sitedesk-agent/internal/config"
	"github.com/sitedesk/sitedesk-agent/internal/constants"
	"github.com/sitedesk/sitedesk-agent/internal/logging"
)

// retryLogger adapts the diagnostic logger to the
// retryablehttp.LeveledLogger interface. Only errors and warnings are
// surfaced; per-request info lines are noise at this call volume.
type retryLogger struct {
	log *logging.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {}

// Client talks to the agent backend. Endpoints are resolved through the
// settings store at call time so a missing api_base surfaces as
// config.ErrConfigMissing rather than a half-built URL.
type Client struct {
	httpClient *nethttp.Client
	store      *config.Store
	log        *logging.Logger
}

// NewClient creates a backend client.
//
// The transport honors environment proxy settings and keeps the
// connection pool small: the agent makes two kinds of calls, neither
// concurrent. Registration is deliberately single-shot (RetryMax 0);
// a failed registration is retried on the next launch, not in-process.
func NewClient(store *config.Store, log *logging.Logger) *Client {
	tr := &nethttp.Transport{
		Proxy: nethttp.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   constants.HTTPDialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: constants.HTTPTLSHandshakeTimeout,
		IdleConnTimeout:     constants.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}
	_ = http2.ConfigureTransport(tr)

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &nethttp.Client{
		Transport: tr,
		Timeout:   constants.HTTPRequestTimeout,
	}
	retryClient.RetryMax = 0
	retryClient.Logger = &retryLogger{log: log}

	return &Client{
		httpClient: retryClient.StandardClient(),
		store:      store,
		log:        log,
	}
}
