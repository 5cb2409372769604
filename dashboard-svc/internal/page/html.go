package page

import (
	"html/template"
	"io"

	"foodie-dashboard/dashboard-svc/internal/domain"
)

var pageTemplate = template.Must(template.New("page").Parse(tmplPage))

type modeOption struct {
	Value    string
	Label    string
	Selected bool
}

// WriteHTML renders the whole page with the current state of every panel.
func (p *Page) WriteHTML(w io.Writer) error {
	data := struct {
		ID      string
		Title   string
		Search  bool
		Query   string
		Modes   []modeOption
		Refresh []string
		Body    template.HTML
	}{
		ID:    p.ID,
		Title: p.Title,
		Body:  p.Doc.Root().HTML(),
	}

	if p.search != nil {
		data.Search = true
		last := p.search.Last()
		data.Query = last.Q
		selected := last.Mode
		if selected == "" {
			selected = domain.ModeName
		}
		for _, m := range []struct {
			mode  domain.SearchMode
			label string
		}{
			{domain.ModeName, "Restaurant name"},
			{domain.ModeType, "Restaurant type"},
			{domain.ModeArea, "Area"},
		} {
			data.Modes = append(data.Modes, modeOption{Value: string(m.mode), Label: m.label, Selected: m.mode == selected})
		}
	} else {
		data.Refresh = p.PanelNames()
	}

	return pageTemplate.Execute(w, data)
}
