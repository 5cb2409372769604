package page

import (
	"foodie-dashboard/dashboard-svc/internal/dom"
	"foodie-dashboard/dashboard-svc/internal/panel"
)

func buildSearch(doc *dom.Document) panel.Elements {
	container := doc.Create(nil, "div", "search-results", "search-results")
	container.Hide()

	title := doc.Create(container, "h5", "search-results-title", "mb-3")
	loading := doc.Create(container, "div", "search-loading", "text-muted")
	loading.SetText("Searching...")
	loading.Hide()
	errEl := doc.Create(container, "div", "search-error", "alert alert-danger")
	errEl.Hide()
	noResults := doc.Create(container, "div", "search-no-results", "text-muted")
	noResults.SetText("No results found.")
	noResults.Hide()
	grid := doc.Create(container, "div", "search-results-grid", "row g-3")

	return panel.Elements{
		Container: container,
		Loading:   loading,
		Error:     errEl,
		Results:   grid,
		NoResults: noResults,
		Title:     title,
	}
}

func buildChart(doc *dom.Document) panel.Elements {
	container := doc.Create(nil, "div", "chart-container", "chart-container")
	loading := doc.Create(container, "div", "chart-loading", "text-muted")
	loading.SetText("Loading chart...")
	loading.Hide()
	errEl := doc.Create(container, "div", "chart-error", "alert alert-warning")
	errEl.Hide()
	image := doc.Create(container, "div", "chart-image", "chart-image")

	return panel.Elements{
		Container: container,
		Loading:   loading,
		Error:     errEl,
		Results:   image,
	}
}

func buildItems(doc *dom.Document) panel.Elements {
	container := doc.Create(nil, "div", "items-section", "items-section")
	loading := doc.Create(container, "div", "items-loading", "text-muted")
	loading.SetText("Loading...")
	loading.Hide()
	errEl := doc.Create(container, "div", "items-error", "alert alert-danger")
	errEl.Hide()
	grid := doc.Create(container, "div", "items-grid", "row g-3")

	return panel.Elements{
		Container: container,
		Loading:   loading,
		Error:     errEl,
		Results:   grid,
	}
}
