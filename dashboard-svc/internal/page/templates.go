package page

const tmplPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
</head>
<body data-page-id="{{.ID}}">
<nav class="navbar navbar-dark bg-dark mb-4"><div class="container">
<a class="navbar-brand" href="/">Restaurant Analytics</a>
<div class="d-flex gap-3">
<a class="nav-link text-light" href="/drilldown/restaurants">Top Restaurants</a>
<a class="nav-link text-light" href="/drilldown/foodie-areas">Foodie Areas</a>
<a class="nav-link text-light" href="/drilldown/restaurant-types">Restaurant Types</a>
</div></div></nav>
<div class="container">
<h1 class="h3 mb-4">{{.Title}}</h1>
{{if .Search}}<form id="search-form" class="row g-2 mb-4" method="get" action="/pages/{{.ID}}/search">
<div class="col-md-6"><input id="search-query" class="form-control" name="q" value="{{.Query}}" maxlength="200" placeholder="Search restaurants, types or areas"></div>
<div class="col-md-3"><select id="search-mode" class="form-select" name="mode">
{{range .Modes}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
</select></div>
<div class="col-md-3 d-flex gap-2"><button id="search-btn" class="btn btn-primary" type="submit">Search</button>
<button id="clear-search-btn" class="btn btn-outline-secondary" type="submit" formmethod="post" formaction="/pages/{{.ID}}/search/clear">Clear</button></div>
</form>{{end}}
{{range .Refresh}}<form class="d-inline" method="post" action="/pages/{{$.ID}}/panels/{{.}}/refresh"><button class="btn btn-sm btn-outline-secondary mb-3" type="submit">Refresh {{.}}</button></form> {{end}}
{{.Body}}
</div>
</body>
</html>
`
