// Package classify maps raw LinkedIn message text to an outreach category.
package classify

import "strings"

// Category is the kind of outreach a message represents.
type Category string

const (
	CategoryJobOffer       Category = "job_offer"
	CategoryRecruiterIntro Category = "recruiter_intro"
	CategoryFollowUp       Category = "follow_up"
	CategoryNotInterested  Category = "not_interested"
	CategoryOther          Category = "other"
)

// Categories lists every category in tie-break priority order.
var Categories = []Category{
	CategoryJobOffer,
	CategoryRecruiterIntro,
	CategoryFollowUp,
	CategoryNotInterested,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Classification is the result of classifying one message.
type Classification struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"` // 0..1, saturating in match count
	Matches    int      `json:"matches"`    // raw keyword score
}

// JobRelated reports whether the message looks like job outreach worth replying to.
func (c Classification) JobRelated() bool {
	return c.Category == CategoryJobOffer || c.Category == CategoryRecruiterIntro
}

// Keyword lexicons per category. English and German, since recruiter
// outreach on LinkedIn commonly arrives in either.
var lexicons = map[Category][]string{
	CategoryJobOffer: {
		"job", "position", "opportunity", "opening", "role", "vacancy",
		"hiring", "career", "employment", "interview", "application",
		"apply", "resume", "cv", "salary", "compensation",
		"stelle", "jobangebot", "stellenangebot", "karriere", "bewerbung",
		"lebenslauf", "arbeitgeber", "gehalt", "vergütung",
	},
	CategoryRecruiterIntro: {
		"connect", "reach out", "reaching out", "network", "introduction",
		"introduce", "your profile", "came across", "impressed by",
		"get in touch", "touch base",
		"verbinden", "netzwerk", "vorstellung", "ihr profil", "kontakt",
	},
	CategoryFollowUp: {
		"follow up", "following up", "follow-up", "circling back",
		"checking in", "any update", "next steps", "as discussed",
		"as promised", "per my last", "did you have a chance",
		"nachfassen", "rückmeldung", "wie besprochen",
	},
	CategoryNotInterested: {
		"not interested", "no longer", "position has been filled",
		"filled the role", "moved forward with", "decided to pursue",
		"unfortunately", "keep you in mind", "future opportunities",
		"leider", "anderweitig besetzt",
	},
	CategoryOther: {},
}

// Phrases that strongly suggest the sender is a recruiter. Their presence
// boosts the job-related categories the way a signature line would for a
// human reader.
var recruiterIndicators = []string{
	"recruiter", "talent acquisition", "headhunter", "sourcing",
	"staffing", "talent partner", "human resources",
	"personalberater", "personalvermittler", "personalreferent",
}

// Phrases that mark an explicit job pitch inside longer messages.
var jobPhrases = []string{
	"looking for", "we are seeking", "we're seeking", "exciting opportunity",
	"open position", "suchen wir", "wir suchen",
}

const (
	recruiterBonus   = 3
	longMessageBonus = 2
	longMessageLen   = 500

	// saturation constant for confidence: score/(score+k)
	confidenceKnee = 3.0
)

// Classify scores text against every category lexicon and returns the best
// match. It is pure and deterministic: identical text always yields the same
// Classification. Empty or unmatched text classifies as CategoryOther with
// zero confidence; Classify never fails.
func Classify(text string) Classification {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return Classification{Category: CategoryOther}
	}

	hasRecruiterSignature := false
	for _, indicator := range recruiterIndicators {
		if strings.Contains(lower, indicator) {
			hasRecruiterSignature = true
			break
		}
	}

	scores := make(map[Category]int, len(Categories))
	for cat, keywords := range lexicons {
		score := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}

		if cat == CategoryJobOffer || cat == CategoryRecruiterIntro {
			if hasRecruiterSignature {
				score += recruiterBonus
			}
			if cat == CategoryJobOffer && len(text) > longMessageLen {
				for _, phrase := range jobPhrases {
					if strings.Contains(lower, phrase) {
						score += longMessageBonus
						break
					}
				}
			}
		}

		scores[cat] = score
	}

	// Highest score wins; Categories order breaks ties.
	best := CategoryOther
	bestScore := 0
	for _, cat := range Categories {
		if scores[cat] > bestScore {
			best = cat
			bestScore = scores[cat]
		}
	}

	if bestScore == 0 {
		return Classification{Category: CategoryOther}
	}

	return Classification{
		Category:   best,
		Confidence: confidence(bestScore),
		Matches:    bestScore,
	}
}

// confidence converts a raw keyword score into a bounded 0..1 value that
// grows with matches but never reaches 1.
func confidence(score int) float64 {
	s := float64(score)
	return s / (s + confidenceKnee)
}

// ParseCategory converts a config string into a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c, true
	}
	return "", false
}
