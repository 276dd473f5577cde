package webui

import (
	"embed"
	"html/template"
	"net/http"
	"slices"

	"github.com/davecgh/go-spew/spew"

	"techtrends.sheridan.dev/internal/trends"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "config":
		data = webUI.Config
		title = "Configuration"
	case "query":
		data = map[string]interface{}{
			"window": []int{webUI.Query.StartYear, webUI.Query.EndYear},
			"tags":   webUI.Query.Tags,
			"sql":    webUI.Query.BigQuerySQL(),
		}
		title = "Tag Count Query"
	case "rows", "series":
		rows, err := webUI.Source.FetchRows(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		if dataType == "rows" {
			data = rows
			title = "Tag Counts - Raw Rows"
			break
		}
		data = slices.Collect(trends.Aggregate(slices.Values(rows)).All())
		title = "Tag Counts - Series"
	default:
		data = map[string]string{
			"error": "Please use one of the following: config, query, rows, series.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
