package search

import "github.com/poiesic/prospect/core"

// QueryMonitor provides hooks to observe the query process.
// Implement this interface to track intermediate steps and results during a query.
type QueryMonitor interface {
	Start(query string)
	AfterQueryEmbedding(dim int)
	AfterScoring(scored int)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) AfterQueryEmbedding(_ int)            {}
func (n *noopMonitor) AfterScoring(_ int)                   {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)        {}
