package server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"

	clientdist "github.com/vango-dev/rsc/client/dist"
)

var clientETag = func() string {
	sum := sha256.Sum256(clientdist.ClientJS)
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:16]))
}()

func (s *Server) serveClient(w http.ResponseWriter, r *http.Request) {
	if len(clientdist.ClientJS) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", clientETag)
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if s.config.DevMode {
		w.Header().Set("Cache-Control", "no-store")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
	}

	if etagMatches(r.Header.Get("If-None-Match"), clientETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	w.Write(clientdist.ClientJS)
}

// etagMatches reports whether an If-None-Match header lists etag, weak or
// strong.
func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" || etag == "" {
		return false
	}
	if strings.TrimSpace(ifNoneMatch) == "*" {
		return true
	}
	for _, part := range strings.Split(ifNoneMatch, ",") {
		candidate := strings.TrimPrefix(strings.TrimSpace(part), "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}
