package typecheck

// StrictLevel controls how permissive a rule is. Rules distinguish levels
// 0, 1 and 2; anything above 2 behaves like 2.
type StrictLevel int

const (
	StrictMin StrictLevel = 0
	StrictMax StrictLevel = 100
)

// strict is the lowest level at which rules accept native kinds only.
const strict StrictLevel = 2
