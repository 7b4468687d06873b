package domain

// SummaryDepth selects how thorough a generated summary is
type SummaryDepth string

const (
	DepthBasic     SummaryDepth = "basic"
	DepthDetailed  SummaryDepth = "detailed"
	DepthTechnical SummaryDepth = "technical"
)

// ValidDepth checks if a depth token is a member of the enumerated set
func ValidDepth(d SummaryDepth) bool {
	switch d {
	case DepthBasic, DepthDetailed, DepthTechnical:
		return true
	}
	return false
}
