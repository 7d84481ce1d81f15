// Package classifier decides whether an article belongs in the health feed
// and which topical bucket it falls into, using curated keyword lists.
package classifier

import (
	"strings"

	"healthfeed/types"
)

// healthKeywords is the inclusion gate: at least one of these must appear
// for an article to be considered health-related at all. The list is tuning
// data, intentionally broad (anatomy, symptoms, care settings, research and
// wellness vocabulary).
var healthKeywords = []string{
	// Core health terms
	"health", "medical", "medicine", "healthcare", "health care", "doctor",
	"physician", "nurse", "patient", "hospital", "clinic", "medical center",
	"disease", "illness", "symptom", "diagnosis", "treatment", "therapy",
	"cure", "medication", "drug", "pharmaceutical", "prescription",
	"cancer", "tumor", "oncology", "covid", "coronavirus", "virus",
	"infection", "bacterial", "viral", "chronic", "acute", "syndrome",
	"disorder", "injury", "surgery", "vaccine", "immunization",
	"screening", "medical test", "x-ray", "mri", "ct scan",
	// Mental health
	"mental health", "psychology", "psychiatric", "psychiatry",
	"depression", "anxiety", "cognitive", "brain", "neurological",
	"neurology", "insomnia", "mental stress",
	// Research
	"medical research", "clinical trial", "medical study", "research",
	"study", "clinical",
	// Wellness
	"nutrition", "diet", "vitamin", "supplement", "fitness", "exercise",
	"wellness", "wellbeing", "weight loss", "weight management", "obesity",
	"sleep", "aging", "longevity", "recovery", "healing", "rehabilitation",
	"physical therapy", "occupational therapy",
	// Anatomy and vitals
	"cardiovascular", "heart", "cardiac", "lung", "respiratory", "blood",
	"immune", "allergy", "asthma", "diabetes", "hypertension",
	"organ", "muscle", "bone", "spine", "pain", "inflammation", "fever",
	"blood pressure", "breathing",
	// Outcome vocabulary
	"side effect", "adverse", "complication", "prevention", "preventive",
}

// strongNonHealthIndicators override a weak health signal: when one of
// these phrases appears and fewer than two distinct health keywords
// matched, the article is excluded.
var strongNonHealthIndicators = []string{
	"sports score", "football game", "basketball game", "baseball game",
	"tennis match", "golf tournament", "cricket match", "rugby match",
	"hockey game",
	"election results", "political campaign", "government policy",
	"presidential", "parliamentary", "congressional",
	"stock market", "investment advice", "banking news", "financial report",
	"economic forecast",
	"software update", "app release", "computer virus",
	"social media platform", "digital marketing",
	"movie review", "film premiere", "music album", "celebrity gossip",
	"actor interview", "singer concert",
	"travel guide", "hotel booking", "restaurant review", "cooking show",
	"recipe book",
	"fashion show", "clothing line", "beauty product", "cosmetic brand",
	"makeup tutorial",
	"car review", "vehicle launch", "airline booking", "flight schedule",
	"real estate listing", "property sale", "housing market",
	"construction project",
	"school curriculum", "university admission", "student loan",
	"criminal case", "police report", "court ruling", "legal advice",
	"weather forecast", "climate change", "environmental policy",
	"wildlife conservation", "pet care",
}

// Bucket term lists, checked in priority order. An article mentioning both
// "cancer" and "clinical trial" lands in Diseases & Treatment because the
// disease check precedes the research check.
var (
	mentalHealthTerms = []string{
		"mental health", "psychology", "psychiatric", "psychiatry",
		"depression", "anxiety", "cognitive", "brain", "neurological",
		"neurology", "insomnia", "mental stress",
	}
	diseaseTerms = []string{
		"disease", "cancer", "tumor", "oncology", "covid", "coronavirus",
		"virus", "infection", "bacterial", "viral", "illness", "chronic",
		"acute", "syndrome", "disorder", "injury", "diabetes",
		"hypertension", "asthma", "allergy", "cardiovascular", "cardiac",
	}
	researchTerms = []string{
		"medical research", "clinical trial", "medical study", "research",
		"study", "clinical", "screening", "medical test", "x-ray", "mri",
		"ct scan",
	}
	nutritionTerms = []string{
		"nutrition", "diet", "vitamin", "supplement", "fitness", "exercise",
		"weight loss", "weight management", "obesity", "wellness",
		"wellbeing", "physical therapy", "occupational therapy",
		"rehabilitation",
	}
)

// Classify maps an article's title and content to a topical category.
// It is pure and total: the same input always yields the same category,
// and the result is CategoryExcluded when the text does not clearly belong
// in the health feed.
func Classify(title, content string) types.Category {
	text := strings.ToLower(title + " " + content)

	matched := 0
	for _, kw := range healthKeywords {
		if strings.Contains(text, kw) {
			matched++
		}
	}
	if matched == 0 {
		return types.CategoryExcluded
	}

	// A strong non-health phrase outweighs a weak health signal, e.g. a
	// sports recap that happens to mention an injury.
	if matched < 2 && containsAny(text, strongNonHealthIndicators) {
		return types.CategoryExcluded
	}

	switch {
	case containsAny(text, mentalHealthTerms):
		return types.CategoryMentalHealth
	case containsAny(text, diseaseTerms):
		return types.CategoryDiseases
	case containsAny(text, researchTerms):
		return types.CategoryResearch
	case containsAny(text, nutritionTerms):
		return types.CategoryNutrition
	}

	// Passed the gate but fits no bucket: exclude rather than guess.
	return types.CategoryExcluded
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
