// AngelaMos | 2026
// static.go

package server

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// StaticSite serves a prebuilt site from dir. A page path resolves to the
// file itself, then "<path>.html", then "<path>/index.html".
func StaticSite(dir string) http.Handler {
	root := os.DirFS(dir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.Trim(path.Clean(r.URL.Path), "/")

		candidates := []string{"index.html"}
		if name != "" {
			candidates = []string{name, name + ".html", path.Join(name, "index.html")}
		}

		for _, candidate := range candidates {
			if isFile(root, candidate) {
				http.ServeFileFS(w, r, root, candidate)
				return
			}
		}

		http.NotFound(w, r)
	})
}

// Uploads serves stored files without directory listings. Mount it behind
// http.StripPrefix.
func Uploads(dir string) http.Handler {
	root := os.DirFS(dir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if !isFile(root, name) {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeFileFS(w, r, root, name)
	})
}

func isFile(root fs.FS, name string) bool {
	info, err := fs.Stat(root, name)
	return err == nil && info.Mode().IsRegular()
}
