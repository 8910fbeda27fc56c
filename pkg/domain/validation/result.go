package validation

// Category names the policy violation a gate detected. CategoryNone
// marks a clean result.
type Category string

const (
	CategoryNone               Category = "none"
	CategoryJailbreak          Category = "jailbreak"
	CategoryIPMimicry          Category = "ip_mimicry"
	CategoryServiceUnavailable Category = "service_unavailable"
)

// Method names the detection mechanism that produced the score.
type Method string

const (
	MethodSemantic   Method = "semantic"
	MethodHash       Method = "hash"
	MethodClassifier Method = "classifier"
	MethodEmbedding  Method = "embedding"
	MethodNone       Method = "none"
)

// Result is the immutable outcome of one gate evaluation. Violation is
// authoritative; Score and Threshold record the comparison that
// produced it.
type Result struct {
	Violation bool     `json:"violation"`
	Score     float64  `json:"score"`
	Threshold float64  `json:"threshold"`
	Category  Category `json:"category"`
	Rationale string   `json:"rationale"`
	Method    Method   `json:"method"`
}
