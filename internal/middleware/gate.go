// AngelaMos | 2026
// gate.go

package middleware

import (
	"net/http"
	"path"
	"strings"
)

type GateConfig struct {
	Verifier    TokenVerifier
	CookieName  string
	AdminPrefix string
	LoginPath   string
	LandingPath string
}

// PageGate guards the admin pages of the static site. Anonymous requests for
// the admin prefix are sent to the login page, and signed-in visitors of the
// login page are sent to the landing page.
func PageGate(cfg GateConfig) func(http.Handler) http.Handler {
	if cfg.AdminPrefix == "" {
		cfg.AdminPrefix = "/admin"
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.LandingPath == "" {
		cfg.LandingPath = cfg.AdminPrefix
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			page := strings.TrimSuffix(path.Clean("/"+r.URL.Path), "/")
			onAdmin := page == cfg.AdminPrefix ||
				strings.HasPrefix(page, cfg.AdminPrefix+"/")
			onLogin := page == cfg.LoginPath

			if !onAdmin && !onLogin {
				next.ServeHTTP(w, r)
				return
			}

			signedIn := false
			if token := ExtractToken(r, cfg.CookieName); token != "" {
				claims, err := cfg.Verifier.VerifySession(r.Context(), token)
				signedIn = err == nil && claims != nil
			}

			switch {
			case onAdmin && !signedIn:
				http.Redirect(w, r, cfg.LoginPath, http.StatusFound)
			case onLogin && signedIn:
				http.Redirect(w, r, cfg.LandingPath, http.StatusFound)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
