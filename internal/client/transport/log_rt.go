// Package transport contains http.RoundTripper wrappers used by the device client.
package transport

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LogRoundTripper logs every outgoing request together with its outcome.
type LogRoundTripper struct {
	Base   http.RoundTripper
	Logger *zap.SugaredLogger
}

func (l *LogRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rt := l.Base
	if rt == nil {
		rt = http.DefaultTransport
	}
	if l.Logger == nil {
		return rt.RoundTrip(req)
	}

	l.Logger.Debugf("sending request to Awair device: %s", req.URL)
	start := time.Now()

	resp, err := rt.RoundTrip(req)
	if err != nil {
		l.Logger.Debugf("method=%s url=%s duration=%s error=%v", req.Method, req.URL, time.Since(start), err)
		return nil, err
	}

	l.Logger.Debugf("method=%s url=%s status=%d duration=%s", req.Method, req.URL, resp.StatusCode, time.Since(start))
	return resp, nil
}
