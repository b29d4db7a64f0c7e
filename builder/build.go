// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package builder

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/bossgraph/boss"
)

// Build constructs a Graph from a corpus of sequences in suffix-
// sharded parallel passes (spec §4.5). labels[i], if non-nil, is the
// label id attached to every (k+1)-mer emitted from sequences[i]; a
// zero label id means "unlabeled". The result is a STAT-state Graph
// ready for querying.
func Build(ctx context.Context, cfg BuildConfig, alphabet *boss.Alphabet, sequences []string, labels []int) (*boss.Graph, error) {
	k := cfg.K
	sigma := alphabet.Sigma()
	parallelism := cfg.resolveParallelism()
	s := shardSuffixLen(sigma, parallelism)
	numShards := 1
	for i := 0; i < s; i++ {
		numShards *= sigma
	}

	shardBufs := make([][]kmerEntry, numShards)
	var mu sync.Mutex

	bufPool := boss.NewBufPool(k + 1)

	// sem bounds how many sequences' (k+1)-mers may be staged in
	// shardBufs concurrently, weighed by estimated bytes per
	// sequence (spec §5's soft cap on staging-vector memory).
	sem := semaphore.NewWeighted(cfg.memCapWeight())

	tasks := make(chan int, len(sequences))
	for i := range sequences {
		tasks <- i
	}
	close(tasks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	worker := func() error {
		local := make([][]kmerEntry, numShards)
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case i, ok := <-tasks:
				if !ok {
					mu.Lock()
					for shard, entries := range local {
						shardBufs[shard] = append(shardBufs[shard], entries...)
					}
					mu.Unlock()
					return nil
				}
				weight := sequenceWeight(cfg, sequences[i])
				if max := cfg.memCapWeight(); weight > max {
					weight = max
				}
				if err := sem.Acquire(gctx, weight); err != nil {
					return err
				}
				emitSequence(alphabet, cfg, k, s, sequences[i], labelOf(labels, i), bufPool, local)
				sem.Release(weight)
			}
		}
	}

	for i := 0; i < parallelism; i++ {
		g.Go(worker)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	chunks := make([]boss.Chunk, numShards)
	var dg errgroup.Group
	dg.SetLimit(parallelism)
	for shard := range shardBufs {
		shard := shard
		dg.Go(func() error {
			sorted := sortAndDedup(shardBufs[shard], k)
			chunks[shard] = deriveChunk(sorted, k, sigma)
			return nil
		})
	}
	_ = dg.Wait()

	symbols, bits, f, p := boss.ConcatenateChunks(chunks)
	result := boss.FromArrays(alphabet, k, symbols, bits, f, p)
	result.Transform(boss.STAT)
	return result, nil
}

func labelOf(labels []int, i int) int {
	if labels == nil || i >= len(labels) {
		return 0
	}
	return labels[i]
}

// emitSequence encodes seq (and, if cfg.Canonical, its reverse
// complement), pads both ends with sentinel symbols, and buckets
// every (k+1)-mer into local's shard for its trailing suffix (spec
// §4.5 step 2).
func emitSequence(alphabet *boss.Alphabet, cfg BuildConfig, k, s int, seq string, label int, pool *boss.BufPool, local [][]kmerEntry) {
	codes, _ := alphabet.Encode(seq)
	if len(codes) == 0 {
		return
	}

	variants := [][]int{codes}
	if cfg.Canonical {
		variants = append(variants, reverseComplement(alphabet, codes))
	}

	sigma := alphabet.Sigma()

	for _, v := range variants {
		full := padded(v, k)
		for i := 0; i+k+1 <= len(full); i++ {
			buf := pool.Get()
			copy(buf, full[i:i+k+1])
			shard := shardIndex(buf, s, sigma)
			local[shard] = append(local[shard], kmerEntry{
				codes:  append([]int{}, buf...),
				labels: labelSlice(label),
			})
			pool.Put(buf)
		}
	}
}

func labelSlice(label int) []int {
	if label == 0 {
		return nil
	}
	return []int{label}
}
