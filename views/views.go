// Package views holds the HTML templates served by the app.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

// Layout wraps every rendered page.
const Layout = "layouts/main"

//go:embed templates
var files embed.FS

func Engine() *html.Engine {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
