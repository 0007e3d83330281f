package services

import (
	"fmt"
	"regexp"
	"strings"

	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
)

// The prompt template and the extraction patterns are generated from this one
// table. Renaming a label changes both the text the model is asked to produce
// and the pattern that reads it back, so the two cannot drift apart.
var recommendationFields = []struct {
	Label  string
	Assign func(*db_models.Recommendation, string)
}{
	{"Description", func(r *db_models.Recommendation, v string) { r.Description = v }},
	{"Activities", func(r *db_models.Recommendation, v string) { r.RecommendedActivities = v }},
	{"Accommodation", func(r *db_models.Recommendation, v string) { r.Accommodation = v }},
	{"Dining Options", func(r *db_models.Recommendation, v string) { r.DiningOptions = v }},
	{"Transportation", func(r *db_models.Recommendation, v string) { r.Transportation = v }},
	{"Safety Tips", func(r *db_models.Recommendation, v string) { r.SafetyTips = v }},
	{"Budget Breakdown", func(r *db_models.Recommendation, v string) { r.BudgetBreakdown = v }},
	{"Tips", func(r *db_models.Recommendation, v string) { r.Tips = v }},
}

// fieldPatterns is compiled once from the table above. Each pattern is
// anchored at line start (so "Tips:" cannot match inside "Safety Tips:"),
// tolerates bold markers around the label, and captures up to the next blank
// line or the end of the segment.
var fieldPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(recommendationFields))
	for i, f := range recommendationFields {
		out[i] = regexp.MustCompile(
			`(?ms)^(?:\*\*)?` + regexp.QuoteMeta(f.Label) + `(?::\*\*|\*\*:|:)[ \t]*\n?(.*?)(?:\n[ \t]*\n|\z)`,
		)
	}
	return out
}()

// segmentBoundaryRe marks the start of one recommended destination: a
// markdown heading containing "Vacation Recommendation", optionally
// qualified ("## Relaxation Vacation Recommendation 2: ...").
var segmentBoundaryRe = regexp.MustCompile(`(?m)^##[^\n]*Vacation Recommendation`)

// headingPrefixRe strips the heading markup and ordinal prefix from a
// segment's first line, leaving the bare location name.
var headingPrefixRe = regexp.MustCompile(`^#+\s*(?:[A-Za-z][A-Za-z ]*)?Vacation Recommendation\s*\d*\s*:?\s*`)

type PromptServiceInterface interface {
	BuildPrompt(prefs request_models.GenerateItineraryRequest) string
	ParseRecommendations(raw string) []db_models.Recommendation
}

type PromptService struct{}

func NewPromptService() PromptServiceInterface {
	return &PromptService{}
}

// BuildPrompt turns validated preferences into the instruction string sent to
// the completion API. Optional fields fall back to human-readable defaults;
// the output is a free-text prompt, so no escaping is needed.
func (p *PromptService) BuildPrompt(prefs request_models.GenerateItineraryRequest) string {
	var b strings.Builder

	b.WriteString("Based on the following travel preferences, generate 3 vacation recommendations:\n\n")
	b.WriteString("Travel Preferences:\n")
	fmt.Fprintf(&b, "- Travel Type: %s\n", prefs.TravelType)
	fmt.Fprintf(&b, "- Budget: %.2f %s\n", prefs.Budget, orDefault(prefs.Currency, "USD"))
	fmt.Fprintf(&b, "- Local Budget (per day): %.2f %s\n", prefs.LocalBudget, orDefault(prefs.Currency, "USD"))
	fmt.Fprintf(&b, "- Interests: %s\n", joinOrDefault(prefs.Interests, "None"))
	fmt.Fprintf(&b, "- Trip Duration: %d days\n", prefs.TripDuration)
	fmt.Fprintf(&b, "- Number of Travelers: %d\n", prefs.NumberOfTravelers)
	fmt.Fprintf(&b, "- Traveling with Children: %s\n", yesNo(prefs.TravelingWithChildren))
	fmt.Fprintf(&b, "- Preferred Weather: %s\n", joinOrDefault(prefs.PreferredWeather, "None"))
	fmt.Fprintf(&b, "- Other Requirements: %s\n", orDefault(prefs.OtherRequirements, "None"))
	fmt.Fprintf(&b, "- Residence Country: %s\n", orDefault(prefs.ResidenceCountry, "Not Specified"))

	b.WriteString("\nStart each recommendation with a heading line of the form:\n")
	b.WriteString("## Vacation Recommendation <number>: <Location Name>\n\n")
	b.WriteString("For each recommendation, provide the following sections, each starting on its own line with the exact label shown and separated from the next section by a blank line:\n\n")
	for _, f := range recommendationFields {
		fmt.Fprintf(&b, "%s:\n", f.Label)
	}
	b.WriteString("\nPlease ensure each section is clearly labeled.")

	return b.String()
}

// ParseRecommendations segments the raw completion text and extracts one
// recommendation per segment, preserving segment order.
func (p *PromptService) ParseRecommendations(raw string) []db_models.Recommendation {
	segments := SegmentResponse(raw)
	recs := make([]db_models.Recommendation, 0, len(segments))
	for i, segment := range segments {
		rec := ExtractRecommendation(segment)
		rec.Position = i
		recs = append(recs, rec)
	}
	return recs
}

// SegmentResponse splits one completion response into ordered segments, one
// per recommended destination. With no heading markers at all the whole
// trimmed text counts as a single segment; with markers present, preamble
// before the first marker is dropped and whitespace-only chunks are skipped.
func SegmentResponse(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	bounds := segmentBoundaryRe.FindAllStringIndex(text, -1)
	if len(bounds) == 0 {
		return []string{trimmed}
	}

	segments := make([]string, 0, len(bounds))
	for i, bound := range bounds {
		end := len(text)
		if i+1 < len(bounds) {
			end = bounds[i+1][0]
		}
		if segment := strings.TrimSpace(text[bound[0]:end]); segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// ExtractRecommendation populates a recommendation from one segment. Each
// field is matched independently; a missing label leaves that field empty
// rather than failing the extraction.
func ExtractRecommendation(segment string) db_models.Recommendation {
	var rec db_models.Recommendation
	rec.LocationName = extractLocationName(segment)
	for i, f := range recommendationFields {
		if m := fieldPatterns[i].FindStringSubmatch(segment); m != nil {
			f.Assign(&rec, cleanFieldValue(m[1]))
		}
	}
	return rec
}

// extractLocationName takes the segment's heading line and strips the
// "## Vacation Recommendation N:" prefix, including qualified variants like
// "## Relaxation Vacation Recommendation N:".
func extractLocationName(segment string) string {
	heading := segment
	if idx := strings.IndexByte(segment, '\n'); idx >= 0 {
		heading = segment[:idx]
	}
	heading = headingPrefixRe.ReplaceAllString(strings.TrimSpace(heading), "")
	return cleanFieldValue(heading)
}

// cleanFieldValue trims whitespace and drops markdown emphasis markers before
// the value is stored.
func cleanFieldValue(v string) string {
	v = strings.ReplaceAll(v, "**", "")
	return strings.TrimSpace(v)
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func joinOrDefault(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
