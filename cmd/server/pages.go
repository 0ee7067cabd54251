package main

import (
    "embed"
    "encoding/json"
    "html/template"
    "net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// handlePage serves one of the embedded front-end pages with the Firebase
// web config injected for the client-side auth SDK.
func (s *server) handlePage(name string) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        cfgJSON, err := json.Marshal(s.firebase)
        if err != nil {
            http.Error(w, "internal server error", http.StatusInternalServerError)
            return
        }
        w.Header().Set("Content-Type", "text/html; charset=utf-8")
        data := struct {
            FirebaseConfig template.JS
        }{FirebaseConfig: template.JS(cfgJSON)}
        if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
            s.log.Error().Err(err).Str("page", name).Msg("render page")
        }
    }
}
