package httpclient

import "net/http"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// New returns the client used for tracker APIs. Requests carry no timeout;
// callers bound them through the request context.
func New() HTTPClient {
	return &http.Client{}
}
