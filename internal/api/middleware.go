package api

import (
	"net/http"
	"net/http/httputil"

	log "github.com/sirupsen/logrus"
)

func LoggingMiddleware(prefix string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Tracef("[%s] %s %s", prefix, r.Method, r.URL.Path)
		if log.IsLevelEnabled(log.TraceLevel) {
			log.Tracef("[%s]\n%s", prefix, dump(r))
		}
		next.ServeHTTP(w, r)
	}
}

// dump restores the request body after reading it.
func dump(r *http.Request) string {
	x, err := httputil.DumpRequest(r, true)
	if err != nil {
		return ""
	}
	return string(x)
}
