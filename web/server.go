package web

import (
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/dreitier/shortcal/config"
	"github.com/goji/httpauth"
	log "github.com/sirupsen/logrus"
)

// Protect wraps handler with HTTP basic auth if credentials are configured.
func Protect(handler http.Handler, cfg *config.HttpConfiguration) http.Handler {
	if cfg == nil || cfg.BasicAuth == nil || cfg.BasicAuth.Username == "" {
		return handler
	}

	log.Infof("Protecting webserver with basic auth for user '%s'", cfg.BasicAuth.Username)
	return httpauth.SimpleBasicAuth(cfg.BasicAuth.Username, cfg.BasicAuth.Password)(handler)
}

// tlsConfig returns nil unless strict mode is requested.
// `strict: true` sets the TLS configuration to something SSLLabs prefers
// @see https://gist.github.com/denji/12b3a568f092ab951456
func tlsConfig(cfg *config.TlsConfiguration) *tls.Config {
	if cfg == nil || !cfg.IsStrict {
		return nil
	}

	return &tls.Config{
		MinVersion:       tls.VersionTLS12,
		CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
		CipherSuites: []uint16{
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
			tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_RSA_WITH_AES_256_CBC_SHA,
		},
	}
}

func NewServer(handler http.Handler, cfg *config.HttpConfiguration, port int) *http.Server {
	srv := &http.Server{
		Handler: Protect(handler, cfg),
		Addr:    fmt.Sprintf(":%d", port),
	}

	if cfg != nil && cfg.Tls != nil {
		srv.TLSConfig = tlsConfig(cfg.Tls)
		// an empty map disables HTTP/2
		srv.TLSNextProto = make(map[string]func(*http.Server, *tls.Conn, http.Handler))
	}

	return srv
}

// StartServer blocks serving handler on the configured port, with TLS if a
// certificate is configured.
func StartServer(handler http.Handler) error {
	cfg := config.GetInstance()
	httpCfg := cfg.Http()
	srv := NewServer(handler, httpCfg, cfg.Global().HttpPort())

	log.Infof("Starting webserver on %s", srv.Addr)

	if httpCfg != nil && httpCfg.Tls != nil {
		return srv.ListenAndServeTLS(httpCfg.Tls.CertificatePath, httpCfg.Tls.PrivateKeyPath)
	}
	return srv.ListenAndServe()
}
