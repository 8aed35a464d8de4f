package http

import "net/http"

// apiKeyTransport adds a credential as a query parameter, the way Google APIs expect it.
type apiKeyTransport struct {
	param     string
	key       string
	transport http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.key == "" {
		return t.transport.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())
	q := reqCopy.URL.Query()
	q.Set(t.param, t.key)
	reqCopy.URL.RawQuery = q.Encode()

	return t.transport.RoundTrip(reqCopy)
}

// WithAPIKeyParam sends key as the query parameter param on every request.
func WithAPIKeyParam(param, key string) ClientOption {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &apiKeyTransport{
			param:     param,
			key:       key,
			transport: rt,
		}
	})
}
