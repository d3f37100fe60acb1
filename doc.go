// Package meshpatch computes surface-following (geodesic) distances on
// triangulated meshes and slices every vertex's neighbourhood into
// concentric, radius-bounded patches for descriptor extraction.
//
// 🚀 What is inside?
//
//	• fibheap/    – Fibonacci heap over an index arena: O(1) insert, decrease-key, union
//	• mesh/       – thread-safe triangular mesh: vertices, deduplicated edges, triangles
//	• geodesic/   – single-source edge-restricted geodesics (Dijkstra on fibheap)
//	• distmatrix/ – parallel all-pairs distance matrix, binary save/load (raw, lz4, zstd)
//	• patch/      – nested radius patches, roaring-bitmap set algebra, binary save/load
//	• logging/    – slog wrapper with pipeline field names
//
// The root package ties them together: an Extractor takes a Config (usually
// loaded from YAML), obtains a distance matrix (borrowed, cached on disk or
// built), and produces one patch list per vertex.
//
// Quick ASCII example:
//
//	3───2
//	│ ╱ │     d(0,·) = [0, 1, √2, 1]
//	0───1
//
// A unit square split by the diagonal 0–2: vertex 2 is reached over the
// diagonal, not around the sides.
package meshpatch
