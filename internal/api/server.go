package api

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/commerceblock/mainstay-api/internal/logger"
)

// CORSMiddleware applies the configured allow-origin to every ctrl route
// and short-circuits preflight requests.
func (a *API) CORSMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowedOrigin := viper.GetString("allowed_origin")
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// Routes builds the full route table.
func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/ctrl/latestattestation", a.CORSMiddleware(a.HandleLatestAttestation))
	mux.HandleFunc("/ctrl/latestattestationinfo", a.CORSMiddleware(a.HandleLatestAttestationInfo))
	mux.HandleFunc("/ctrl/latestcommitment", a.CORSMiddleware(a.HandleLatestCommitment))
	mux.HandleFunc("/ctrl/sendcommitment", a.CORSMiddleware(a.HandleSendCommitment))
	mux.HandleFunc("/ctrl/clientsignup", a.CORSMiddleware(a.HandleClientSignup))
	mux.HandleFunc("/ctrl/type", a.CORSMiddleware(a.HandleType))

	mux.HandleFunc("/admin/login", a.CORSMiddleware(a.HandleAdminLogin))
	mux.HandleFunc("/admin/clientdetails", a.CORSMiddleware(a.JWTMiddleware(a.HandleAdminClientDetails)))

	return mux
}

// Serve runs the HTTP server until it fails or the process exits.
func (a *API) Serve() error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", viper.GetInt("api_port")),
		Handler:      a.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if viper.GetBool("use_https") {
		server.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS13,
		}
		logger.Info("Starting HTTPS server on", server.Addr)
		return server.ListenAndServeTLS(viper.GetString("cert_file"), viper.GetString("key_file"))
	}

	logger.Info("Starting HTTP server on", server.Addr)
	return server.ListenAndServe()
}
