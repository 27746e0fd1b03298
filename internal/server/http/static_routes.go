package httpserver

import (
	"net/http"
	"net/url"
	"strings"
)

const viewCookieName = "skillchess_view"

// RegisterStaticRoutes mounts the board client:
// - /web/*        -> desktop assets
// - /web_mobile/* -> mobile assets
// - /             -> redirect picked by ?view=, the view cookie, or User-Agent
func RegisterStaticRoutes(mux *http.ServeMux, desktopDir, mobileDir string) {
	if mux == nil {
		return
	}
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}

	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir(desktopDir))))
	mux.Handle("/web_mobile/", http.StripPrefix("/web_mobile/", http.FileServer(http.Dir(mobileDir))))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			target := "/web/"
			if pickView(w, r) == "mobile" {
				target = "/web_mobile/"
			}
			if room := r.URL.Query().Get("room"); room != "" {
				target += "?room=" + url.QueryEscape(room)
			}
			w.Header().Set("Vary", "User-Agent, Cookie")
			http.Redirect(w, r, target, http.StatusFound)
		case "/web", "/web_mobile":
			http.Redirect(w, r, r.URL.Path+"/", http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	})
}

func pickView(w http.ResponseWriter, r *http.Request) string {
	if v, ok := normalizeView(r.URL.Query().Get("view")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     viewCookieName,
			Value:    v,
			Path:     "/",
			MaxAge:   30 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
		return v
	}
	if c, err := r.Cookie(viewCookieName); err == nil {
		if v, ok := normalizeView(c.Value); ok {
			return v
		}
	}
	if isMobileUA(r.UserAgent()) {
		return "mobile"
	}
	return "web"
}

func normalizeView(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "web", "desktop":
		return "web", true
	case "mobile", "m", "phone":
		return "mobile", true
	}
	return "", false
}

func isMobileUA(ua string) bool {
	s := strings.ToLower(ua)
	for _, n := range []string{"android", "iphone", "ipad", "mobile"} {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
