package upstream

import (
	"context"
	"fmt"
	"net/url"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
)

// DefaultRelayURL is the Web3Forms submission endpoint.
const DefaultRelayURL = "https://api.web3forms.com/submit"

// RelayMessage is the payload posted to the form relay.
type RelayMessage struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	FromName  string `json:"from_name,omitempty"`
	ReplyTo   string `json:"replyto,omitempty"`
}

// RelayReply is the relay's JSON answer.
type RelayReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RelayClient forwards contact messages to a form-to-email service.
type RelayClient struct {
	http      fastshot.ClientHttpMethods
	path      string
	accessKey string
}

// NewRelayClient creates a client for the relay at endpoint.
func NewRelayClient(endpoint, accessKey string, timeout time.Duration) (*RelayClient, error) {
	if endpoint == "" {
		endpoint = DefaultRelayURL
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid relay URL %q", endpoint)
	}
	base := u.Scheme + "://" + u.Host
	return &RelayClient{
		http:      newClient(base, timeout, ""),
		path:      u.EscapedPath(),
		accessKey: accessKey,
	}, nil
}

// Configured reports whether an access key is present.
func (c *RelayClient) Configured() bool {
	return c.accessKey != ""
}

const relayService = "relay"

// Send posts msg to the relay. The access key is filled in here.
func (c *RelayClient) Send(ctx context.Context, msg RelayMessage) (*RelayReply, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	msg.AccessKey = c.accessKey

	start := time.Now()
	resp, err := c.http.POST(c.path).
		Context().Set(ctx).
		Header().Add("Content-Type", "application/json").
		Body().AsJSON(msg).
		Send()

	var reply RelayReply
	if err := decode(relayService, start, resp, err, &reply); err != nil {
		return nil, err
	}
	if !reply.Success {
		return &reply, &StatusError{Service: relayService, StatusCode: 200, Err: fmt.Errorf("relay rejected message: %s", reply.Message)}
	}
	return &reply, nil
}
