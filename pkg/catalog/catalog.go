package catalog

// Stage is one named phase of the server-side evaluation pipeline. The set
// of stages is fixed at process start; ordinals are contiguous and define
// the display order.
type Stage struct {
	Key     string `json:"key"`
	Ordinal int    `json:"ordinal"`
	Label   string `json:"label"`
}

var stages = []Stage{
	{Key: "parse", Ordinal: 0, Label: "Parsing document"},
	{Key: "index", Ordinal: 1, Label: "Indexing content"},
	{Key: "domain", Ordinal: 2, Label: "Detecting domain"},
	{Key: "summarize", Ordinal: 3, Label: "Summarizing sections"},
	{Key: "score", Ordinal: 4, Label: "Scoring proposal"},
	{Key: "critique", Ordinal: 5, Label: "Generating critique"},
	{Key: "budget", Ordinal: 6, Label: "Auditing budget"},
	{Key: "decision", Ordinal: 7, Label: "Final decision"},
}

var ordinalByKey = func() map[string]int {
	m := make(map[string]int, len(stages))
	for _, s := range stages {
		m[s.Key] = s.Ordinal
	}
	return m
}()

// Stages returns the ordered stage list. Callers must not mutate it.
func Stages() []Stage {
	return stages
}

// Count returns the number of pipeline stages.
func Count() int {
	return len(stages)
}

// OrdinalOf resolves a stage key to its ordinal.
func OrdinalOf(key string) (int, bool) {
	ord, ok := ordinalByKey[key]
	return ord, ok
}
