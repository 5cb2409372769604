package render

const tmplCards = `
{{define "restaurant-type"}}<div class="col-12 col-sm-6 col-lg-4"><div class="card drilldown-item-card h-100"><div class="card-body">
<div class="d-flex justify-content-between align-items-start"><h6 class="mb-1">{{.RestaurantType}}</h6><span class="badge text-bg-primary">{{percent .Percentage}}</span></div>
<div class="display-6 fw-semibold">{{count .Count}}</div>
<div class="text-muted small mt-1"><div>Avg rating: {{rating .AvgRating}}</div><div>Avg cost for two: {{cost .AvgCostForTwo}}</div></div>
</div></div></div>{{end}}

{{define "ranked-restaurant"}}<div class="col-12 col-lg-6"><div class="card drilldown-item-card h-100"><div class="card-body">
<div class="d-flex justify-content-between align-items-start"><h6 class="mb-1">#{{.Rank}} {{.Name}}</h6><span class="badge text-bg-dark">{{count .Votes}} votes</span></div>
<div class="text-muted small mt-1"><div>{{.Location}} &middot; {{.RestaurantType}}</div><div>Rating: {{rating .Rating}}</div><div>Cuisines: {{list .Cuisines}}</div></div>
</div></div></div>{{end}}

{{define "foodie-area"}}<div class="col-12 col-lg-6"><div class="card drilldown-item-card h-100"><div class="card-body">
<div class="d-flex justify-content-between align-items-start"><h6 class="mb-1">{{.Area}}</h6><span class="badge text-bg-secondary">{{count .RestaurantCount}} restaurants</span></div>
<div class="text-muted small mt-1"><div>Avg rating: {{rating .AvgRating}}</div><div>Top cuisines: {{list .TopCuisines}}</div><div>Types: {{list .RestaurantTypes}}</div></div>
</div></div></div>{{end}}

{{define "chart"}}<img class="img-fluid chart-image" src="{{.Src}}" width="{{.Width}}" height="{{.Height}}" alt="{{.Alt}}">{{end}}

{{define "search-name"}}<div class="col-12 col-sm-6 col-lg-4"><div class="card search-result-card h-100"><div class="card-body">
<h6 class="card-title">{{.Name}}</h6>
<div class="text-muted small"><div>{{.Location}} &middot; {{.RestaurantType}}</div><div>Rating: {{rating .Rating}} &middot; {{count .Votes}} votes</div></div>
</div></div></div>{{end}}

{{define "search-type"}}<div class="col-12 col-sm-6 col-lg-4"><div class="card search-result-card h-100"><div class="card-body">
<h6 class="card-title">{{.RestaurantType}}</h6>
<div class="text-muted small"><div>{{count .Count}} restaurants</div><div>Avg rating: {{rating .AvgRating}}</div></div>
</div></div></div>{{end}}

{{define "search-area"}}<div class="col-12 col-sm-6 col-lg-4"><div class="card search-result-card h-100"><div class="card-body">
<h6 class="card-title">{{.Area}}</h6>
<div class="text-muted small"><div>{{count .RestaurantCount}} restaurants</div><div>Avg rating: {{rating .AvgRating}}</div></div>
</div></div></div>{{end}}

{{define "share-code"}}<figure class="share-code"><img src="{{.Src}}" width="{{.Size}}" height="{{.Size}}" alt="{{.Alt}}"></figure>{{end}}
`
