// Package pkg provides the core libraries for gitlanes history visualization.
//
// # Overview
//
// Gitlanes transforms raw git output into an indexed commit DAG and lays
// that DAG out in horizontal lanes suitable for terminal, SVG, or browser
// rendering. The pkg directory is organized along that data flow:
//
//  1. [gitexec] - Executor (captures git log/for-each-ref/HEAD output)
//  2. [commit] + [gitparse] - Data model and parsing
//  3. [repograph] - Indexed graph, traversal queries, statistics
//  4. [layout] - Lane assignment, edge routing, viewport queries, optimizer
//  5. [render] - Output formats (terminal, SVG, Graphviz node-link)
//  6. [graphio], [cache], [store] - Serialization, layout cache, snapshots
//
// # Architecture
//
// The typical data flow:
//
//	git stdout buffers (gitexec)
//	         ↓
//	commits + refs + HEAD (gitparse)
//	         ↓
//	indexed repository graph (repograph)
//	         ↓
//	lane-assigned visual graph (layout)
//	         ↓
//	terminal / SVG / DOT / JSON (render, graphio)
//
// Everything downstream of gitexec is a pure, deterministic transformation
// on immutable inputs: the same buffers always produce the same visual
// graph, which the snapshot tests and the layout cache both rely on.
//
// [gitexec]: github.com/matzehuels/gitlanes/pkg/gitexec
// [commit]: github.com/matzehuels/gitlanes/pkg/commit
// [gitparse]: github.com/matzehuels/gitlanes/pkg/gitparse
// [repograph]: github.com/matzehuels/gitlanes/pkg/repograph
// [layout]: github.com/matzehuels/gitlanes/pkg/layout
// [render]: github.com/matzehuels/gitlanes/pkg/render
// [graphio]: github.com/matzehuels/gitlanes/pkg/graphio
// [cache]: github.com/matzehuels/gitlanes/pkg/cache
// [store]: github.com/matzehuels/gitlanes/pkg/store
package pkg
