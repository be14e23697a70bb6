package zimbra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sirosfoundation/go-zimbra/pkg/auth"
	"github.com/sirosfoundation/go-zimbra/pkg/markup"
	"github.com/sirosfoundation/go-zimbra/pkg/request"
	"github.com/sirosfoundation/go-zimbra/pkg/response"
	"github.com/sirosfoundation/go-zimbra/pkg/transport"
)

// ErrMissingURL is returned by NewClient when no endpoint is configured.
var ErrMissingURL = errors.New("zimbra: SOAP URL is required")

// ErrMissingCredentials is returned when neither a preauth key nor a
// password is given.
var ErrMissingCredentials = errors.New("zimbra: preauth key or password is required")

// Client sends requests to one Zimbra SOAP endpoint
type Client struct {
	url          string
	httpClient   *transport.HTTPSClient
	logger       *slog.Logger
	uaName       string
	uaVersion    string
	batchOnError request.OnError
	firstID      int

	mu        sync.RWMutex
	authToken string
}

// ClientConfig holds client configuration
type ClientConfig struct {
	// URL is the SOAP endpoint, e.g. https://host/service/soap.
	URL         string
	HTTPSConfig *transport.HTTPSConfig

	UserAgentName    string
	UserAgentVersion string

	// BatchOnError is the policy used by NewBatchRequest. Defaults to continue.
	BatchOnError   request.OnError
	FirstRequestID int

	// AuthToken is an already issued token.
	AuthToken string

	Logger *slog.Logger
}

// NewClient creates a new Zimbra client
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if config.URL == "" {
		return nil, ErrMissingURL
	}

	onError := config.BatchOnError
	if onError == "" {
		onError = request.OnErrorContinue
	}
	if !onError.Valid() {
		return nil, fmt.Errorf("%w: %q", request.ErrInvalidOnError, onError)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		url:          config.URL,
		httpClient:   transport.NewHTTPSClient(config.HTTPSConfig),
		logger:       logger.With(slog.String("endpoint", config.URL)),
		uaName:       config.UserAgentName,
		uaVersion:    config.UserAgentVersion,
		batchOnError: onError,
		firstID:      config.FirstRequestID,
		authToken:    config.AuthToken,
	}, nil
}

// AuthToken returns the current auth token, if any.
func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authToken
}

// SetAuthToken replaces the auth token used for later requests.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authToken = token
}

// NewRequest returns a document whose context carries the client's user
// agent and auth token.
func (c *Client) NewRequest() (*request.Document, error) {
	doc := request.New()
	if c.uaName != "" {
		if err := doc.SetUserAgent(c.uaName, c.uaVersion); err != nil {
			return nil, err
		}
	}
	if token := c.AuthToken(); token != "" {
		if err := doc.SetAuthToken(token); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// NewBatchRequest returns a document from NewRequest already in batch mode.
func (c *Client) NewBatchRequest() (*request.Document, error) {
	doc, err := c.NewRequest()
	if err != nil {
		return nil, err
	}
	if err := doc.BeginBatch(request.NsZimbra, c.batchOnError, request.WithFirstRequestID(c.firstID)); err != nil {
		return nil, err
	}
	return doc, nil
}

// Send posts doc and parses the response. A top level fault is returned as
// *response.FaultError together with the parsed response. Any other non-2xx
// status is returned as *transport.StatusError, with the response when the
// body parses.
func (c *Client) Send(ctx context.Context, doc request.Request) (*response.Response, error) {
	log := c.logger.With(slog.String("exchange_id", uuid.NewString()))

	body := []byte(doc.GetRequest())
	log.Debug("sending request", slog.Int("size", len(body)))

	start := time.Now()
	data, sendErr := c.httpClient.Send(ctx, c.url, body, transport.ContentTypeSOAP)

	var statusErr *transport.StatusError
	if sendErr != nil && !errors.As(sendErr, &statusErr) {
		log.Error("request failed", slog.String("error", sendErr.Error()))
		return nil, sendErr
	}

	resp, err := response.Parse(data)
	if err != nil {
		if statusErr != nil {
			log.Error("request failed", slog.Int("status", statusErr.StatusCode))
			return nil, sendErr
		}
		log.Error("invalid response", slog.String("error", err.Error()))
		return nil, err
	}

	if fault := resp.Fault(); fault != nil {
		log.Warn("request faulted",
			slog.String("code", fault.Detail),
			slog.String("reason", fault.Reason),
		)
		return resp, fault
	}
	if statusErr != nil {
		log.Error("request failed", slog.Int("status", statusErr.StatusCode))
		return resp, sendErr
	}

	log.Debug("received response",
		slog.Int("size", len(data)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

// Credentials identify the account to authenticate. PreAuthKey takes
// precedence over Password.
type Credentials struct {
	Account    string
	By         auth.By
	PreAuthKey string
	Password   string
	// Admin authenticates against the admin service.
	Admin bool
	// Expires and Timestamp are used for preauth only.
	Expires   time.Duration
	Timestamp time.Time
}

// Authenticate sends an AuthRequest and stores the returned token.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	content, err := authContent(creds)
	if err != nil {
		return "", err
	}

	namespace := request.NsZimbraAccount
	if creds.Admin {
		namespace = request.NsZimbraAdmin
	}

	doc := request.New()
	if c.uaName != "" {
		if err := doc.SetUserAgent(c.uaName, c.uaVersion); err != nil {
			return "", err
		}
	}
	if _, err := doc.AddRequest("AuthRequest", content, namespace); err != nil {
		return "", err
	}

	resp, err := c.Send(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("authentication failed: %w", err)
	}

	token, err := resp.AuthToken()
	if err != nil {
		return "", err
	}
	c.SetAuthToken(token)

	c.logger.Info("authenticated", slog.String("account", creds.Account), slog.Bool("admin", creds.Admin))
	return token, nil
}

func authContent(creds Credentials) (markup.Pairs, error) {
	by, err := auth.ParseBy(string(creds.By))
	if err != nil {
		return nil, err
	}

	account := markup.Pairs{
		markup.KV("by", string(by)),
		markup.KV(markup.ContentKey, creds.Account),
	}

	switch {
	case creds.PreAuthKey != "":
		value, pa, err := auth.Compute(creds.PreAuthKey, auth.PreAuth{
			Account:   creds.Account,
			By:        by,
			Timestamp: creds.Timestamp,
			Expires:   creds.Expires,
		})
		if err != nil {
			return nil, err
		}
		return markup.Pairs{
			markup.KV("account", account),
			markup.KV("preauth", markup.Pairs{
				markup.KV("timestamp", strconv.FormatInt(pa.TimestampMillis(), 10)),
				markup.KV("expires", strconv.FormatInt(pa.ExpiresMillis(), 10)),
				markup.KV(markup.ContentKey, value),
			}),
		}, nil
	case creds.Password != "":
		if creds.Account == "" {
			return nil, errors.New("account is required")
		}
		return markup.Pairs{
			markup.KV("account", account),
			markup.KV("password", markup.Pairs{markup.KV(markup.ContentKey, creds.Password)}),
		}, nil
	}
	return nil, ErrMissingCredentials
}
