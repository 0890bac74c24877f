// Package charts declares the dashboard layout and turns prepared views into chart
// data and static images.
//
// DefaultCatalog lists the two tabs with their texts and charts. Data computes the
// points, histogram series or per-category quartiles behind one chart. Renderer draws
// the same chart as png or svg with gonum/plot, and Prerenderer fills a Cache with
// every image using a bounded errgroup.
package charts
