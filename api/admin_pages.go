package api

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:embed admin/*.html
var embeddedAdmin embed.FS

// adminPages serves the admin console from ADMIN_STATIC_DIR, or the embedded placeholders.
type adminPages struct {
	logger zerolog.Logger
	files  fs.FS
}

func newAdminPages(staticDir string) (adminPages, error) {
	logger := log.With().Str("handlerName", "adminPages").Logger()

	var files fs.FS
	if staticDir != "" {
		info, err := os.Stat(staticDir)
		if err != nil || !info.IsDir() {
			return adminPages{}, fmt.Errorf("ADMIN_STATIC_DIR %q is not a directory", staticDir)
		}
		files = os.DirFS(staticDir)
	} else {
		sub, err := fs.Sub(embeddedAdmin, "admin")
		if err != nil {
			return adminPages{}, err
		}
		files = sub
	}
	return adminPages{logger: logger, files: files}, nil
}

func (p adminPages) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.serve(w, r, "index.html")
	}
}

func (p adminPages) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.serve(w, r, "login.html")
	}
}

// asset serves a console file, falling back to the index page for client-side routes.
func (p adminPages) asset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
		if name == "" || !fs.ValidPath(name) {
			p.serve(w, r, "index.html")
			return
		}
		if info, err := fs.Stat(p.files, name); err == nil && !info.IsDir() {
			p.serve(w, r, name)
			return
		}
		p.serve(w, r, "index.html")
	}
}

func (p adminPages) serve(w http.ResponseWriter, r *http.Request, name string) {
	if _, err := fs.Stat(p.files, name); err != nil {
		p.logger.Error().Err(err).Str("file", name).Msg("admin page missing")
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFileFS(w, r, p.files, name)
}
