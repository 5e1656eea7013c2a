package scoring

// DefaultEngine returns an engine with the stock palette, weights and options.
func DefaultEngine() *Engine {
	return NewEngine(DefaultScorer(), DefaultOptions())
}
