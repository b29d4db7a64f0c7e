// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

import "container/heap"

// HitInfo describes one approximate match found by IndexFuzzy: the
// half-open edge-index range outgoing from the node the match ends
// in, how far through the
// query and the graph it has progressed, its edit distance so far,
// a CIGAR-style alignment trace, and the path of node indices walked.
type HitInfo struct {
	RangeLo  uint64
	RangeHi  uint64
	StrPos   int
	GraphPos uint64
	Distance int
	Cigar    string
	Path     []uint64
}

// fuzzyState is one partial alignment on the priority queue: node is
// the current graph position, strPos how far into pattern it has
// consumed, distance the edits spent so far, cigar the trace
// accumulated to reach here.
type fuzzyState struct {
	node     uint64
	strPos   int
	distance int
	cigar    string
	path     []uint64
}

// fuzzyPQ is a best-first priority queue ordered by (distance
// ascending, progress descending), the container/heap.Interface idiom.
type fuzzyPQ []*fuzzyState

func (pq fuzzyPQ) Len() int { return len(pq) }

func (pq fuzzyPQ) Less(i, j int) bool {
	if pq[i].distance != pq[j].distance {
		return pq[i].distance < pq[j].distance
	}
	return pq[i].strPos > pq[j].strPos
}

func (pq fuzzyPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *fuzzyPQ) Push(x any) { *pq = append(*pq, x.(*fuzzyState)) }

func (pq *fuzzyPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// IndexFuzzy searches for all occurrences of pattern within max_edits
// edits, best-first over a priority queue ordered by (distance
// ascending, progress descending). Both graph-gap and query-gap
// insertions/deletions are explored; a partial alignment whose
// distance already exceeds max_edits is pruned.
func (g *Graph) IndexFuzzy(pattern string, maxEdits int) []HitInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()

	codes, bad := g.alphabet.Encode(pattern)
	if bad > 0 {
		g.badInput.Add(int64(bad))
	}
	if len(codes) == 0 {
		return nil
	}

	var hits []HitInfo
	visited := make(map[[2]uint64]int) // (node,strPos) -> best distance seen

	pq := &fuzzyPQ{{node: 1, strPos: 0, distance: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*fuzzyState)
		if cur.distance > maxEdits {
			continue
		}
		key := [2]uint64{cur.node, uint64(cur.strPos)}
		if best, ok := visited[key]; ok && best <= cur.distance {
			continue
		}
		visited[key] = cur.distance

		if cur.strPos >= len(codes) {
			begin, end := g.nodeRange(cur.node)
			hits = append(hits, HitInfo{
				RangeLo:  begin,
				RangeHi:  end,
				StrPos:   cur.strPos,
				GraphPos: cur.node,
				Distance: cur.distance,
				Cigar:    cur.cigar,
				Path:     cur.path,
			})
			continue
		}

		want := codes[cur.strPos]

		// exact / mismatch: consume one query symbol and one graph
		// edge together.
		for c := 0; c < g.Sigma(); c++ {
			next := g.Outgoing(cur.node, c)
			if next == npos {
				continue
			}
			dist := cur.distance
			op := byte('M')
			if c != want {
				dist++
				op = 'X'
			}
			if dist > maxEdits {
				continue
			}
			heap.Push(pq, &fuzzyState{
				node:     next,
				strPos:   cur.strPos + 1,
				distance: dist,
				cigar:    cur.cigar + string(op),
				path:     append(append([]uint64{}, cur.path...), next),
			})
		}

		// query-gap (insertion relative to the graph): consume a
		// query symbol without advancing the graph.
		if cur.distance+1 <= maxEdits {
			heap.Push(pq, &fuzzyState{
				node:     cur.node,
				strPos:   cur.strPos + 1,
				distance: cur.distance + 1,
				cigar:    cur.cigar + "I",
				path:     cur.path,
			})
		}

		// graph-gap (deletion relative to the query): advance the
		// graph without consuming a query symbol.
		if cur.distance+1 <= maxEdits {
			for c := 0; c < g.Sigma(); c++ {
				next := g.Outgoing(cur.node, c)
				if next == npos {
					continue
				}
				heap.Push(pq, &fuzzyState{
					node:     next,
					strPos:   cur.strPos,
					distance: cur.distance + 1,
					cigar:    cur.cigar + "D",
					path:     append(append([]uint64{}, cur.path...), next),
				})
			}
		}
	}

	return hits
}
