// Package render turns visual graphs into concrete output formats.
//
// # Overview
//
// The layout engine stops at geometry: rows, lanes, and routed edges. The
// subpackages here materialize that geometry:
//
//   - [svg]: a self-contained SVG document drawn from the native lane
//     layout, using the layout package's edge paths verbatim
//   - [term]: a colored Unicode rendering for terminals
//   - [nodelink]: classic node-link diagrams of the commit DAG via
//     Graphviz, for when lane geometry is not wanted
//
// All renderers are read-only consumers of [layout.Graph]; none of them
// mutate or re-layout anything.
//
// [svg]: github.com/matzehuels/gitlanes/pkg/render/svg
// [term]: github.com/matzehuels/gitlanes/pkg/render/term
// [nodelink]: github.com/matzehuels/gitlanes/pkg/render/nodelink
package render
