package models

import "strings"

// Analysis depths.
const (
	DepthBasic         = "basic"
	DepthStandard      = "standard"
	DepthComprehensive = "comprehensive"
)

// Pitch holds the raw project attributes supplied by the pitch datastore.
type Pitch struct {
	PitchID         string   `json:"pitchId"`
	Title           string   `json:"title"`
	Logline         string   `json:"logline"`
	Synopsis        string   `json:"synopsis"`
	Genre           string   `json:"genre"`
	Budget          float64  `json:"budget"`
	Director        string   `json:"director,omitempty"`
	Producer        string   `json:"producer,omitempty"`
	Cast            []string `json:"cast,omitempty"`
	ScriptPages     int      `json:"script_pages,omitempty"`
	TargetAudience  string   `json:"target_audience,omitempty"`
	ReleaseStrategy string   `json:"release_strategy,omitempty"`
}

// RequiredPitchFields are checked before any analysis runs.
var RequiredPitchFields = []string{"title", "genre", "budget"}

// ProfileFields are the fields a complete pitch profile is expected to carry.
var ProfileFields = []string{"title", "logline", "synopsis", "genre", "budget"}

// OptionalPitchFields improve confidence and category coverage when present.
var OptionalPitchFields = []string{
	"director",
	"producer",
	"cast",
	"script_pages",
	"target_audience",
	"release_strategy",
}

// MissingRequired returns the names of required fields that are absent.
func (p Pitch) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(p.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.Genre) == "" {
		missing = append(missing, "genre")
	}
	if p.Budget <= 0 {
		missing = append(missing, "budget")
	}
	return missing
}

// OptionalPresent counts populated optional fields.
func (p Pitch) OptionalPresent() int {
	n := 0
	for _, present := range []bool{
		p.Director != "",
		p.Producer != "",
		len(p.Cast) > 0,
		p.ScriptPages > 0,
		p.TargetAudience != "",
		p.ReleaseStrategy != "",
	} {
		if present {
			n++
		}
	}
	return n
}

// AnalysisOptions tune a full analysis. Nil booleans take their default.
type AnalysisOptions struct {
	Depth              string `json:"depth,omitempty"`
	IncludeMarketData  *bool  `json:"include_market_data,omitempty"`
	IncludeComparables *bool  `json:"include_comparables,omitempty"`
	IncludePredictions *bool  `json:"include_predictions,omitempty"`
}

// ResolvedOptions is AnalysisOptions with every default applied.
type ResolvedOptions struct {
	Depth              string
	IncludeMarketData  bool
	IncludeComparables bool
	IncludePredictions bool
}

// Resolve applies defaults: standard depth, every feature enabled.
func (o AnalysisOptions) Resolve() ResolvedOptions {
	r := ResolvedOptions{
		Depth:              DepthStandard,
		IncludeMarketData:  true,
		IncludeComparables: true,
		IncludePredictions: true,
	}
	switch strings.ToLower(o.Depth) {
	case DepthBasic, DepthStandard, DepthComprehensive:
		r.Depth = strings.ToLower(o.Depth)
	}
	if o.IncludeMarketData != nil {
		r.IncludeMarketData = *o.IncludeMarketData
	}
	if o.IncludeComparables != nil {
		r.IncludeComparables = *o.IncludeComparables
	}
	if o.IncludePredictions != nil {
		r.IncludePredictions = *o.IncludePredictions
	}
	return r
}

// BatchOptions is the reduced configuration used for batch analysis.
func BatchOptions() AnalysisOptions {
	off := false
	return AnalysisOptions{
		Depth:              DepthBasic,
		IncludeMarketData:  &off,
		IncludeComparables: &off,
		IncludePredictions: &off,
	}
}
