package client

// Record shapes returned by the evaluator API.

type ScoreDetail struct {
	Category   string   `json:"category"`
	Score      float64  `json:"score"`
	MaxScore   float64  `json:"maxScore"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
}

type CritiqueDomain struct {
	Domain string  `json:"domain"`
	Score  float64 `json:"score"`
}

type SectionScore struct {
	Section string  `json:"section"`
	Score   float64 `json:"score"`
}

type CritiqueIssue struct {
	Severity    string `json:"severity"` // "high"|"medium"|"low"
	Category    string `json:"category"`
	Domain      string `json:"domain,omitempty"`
	Description string `json:"description"`
}

type CritiqueRecommendation struct {
	Priority       string `json:"priority"` // "high"|"medium"|"low"
	Domain         string `json:"domain,omitempty"`
	Recommendation string `json:"recommendation"`
}

type FullCritique struct {
	Summary         string                   `json:"summary"`
	Issues          []CritiqueIssue          `json:"issues,omitempty"`
	Recommendations []CritiqueRecommendation `json:"recommendations,omitempty"`
}

type BudgetItem struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type BudgetFlag struct {
	Type    string `json:"type"` // "warning"|"error"|"info"
	Message string `json:"message"`
}

type BudgetAnalysis struct {
	TotalBudget float64      `json:"totalBudget"`
	Breakdown   []BudgetItem `json:"breakdown,omitempty"`
	Flags       []BudgetFlag `json:"flags,omitempty"`
	Summary     string       `json:"summary"`
}

type PlagiarismCheck struct {
	SimilarityScore      *float64 `json:"similarity_score,omitempty"`
	MatchedReferenceText string   `json:"matched_reference_text,omitempty"`
	RiskLevel            string   `json:"risk_level"` // "HIGH"|"MEDIUM"|"LOW"|"UNKNOWN"
	Error                string   `json:"error,omitempty"`
}

// Evaluation is a stored evaluation record.
type Evaluation struct {
	ID              string           `json:"id"`
	FileName        string           `json:"file_name"`
	FileSize        int64            `json:"file_size"`
	Decision        string           `json:"decision"` // ACCEPT|REJECT|REVISE|CONDITIONALLY ACCEPT
	OverallScore    float64          `json:"overall_score"`
	Domain          string           `json:"domain"`
	Scores          []ScoreDetail    `json:"scores,omitempty"`
	CritiqueDomains []CritiqueDomain `json:"critique_domains,omitempty"`
	SectionScores   []SectionScore   `json:"section_scores,omitempty"`
	FullCritique    *FullCritique    `json:"full_critique,omitempty"`
	BudgetAnalysis  *BudgetAnalysis  `json:"budget_analysis,omitempty"`
	Summary         map[string]any   `json:"summary,omitempty"`
	PlagiarismCheck *PlagiarismCheck `json:"plagiarism_check,omitempty"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
}

// Settings are the server-side evaluation settings.
type Settings struct {
	ID        string `json:"id,omitempty"`
	MaxBudget int64  `json:"max_budget"`
	ChunkSize int64  `json:"chunk_size"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
