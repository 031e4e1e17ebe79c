package retriever

// synonymGroups are hand-curated symmetric sets of interchangeable terms,
// deliberately narrow to the restaurant domain. Membership is symmetric:
// every member expands to every other member of its groups.
var synonymGroups = [][]string{
	{"book", "reserve", "reservation", "reservations", "booking", "bookings"},
	{"meeting", "hall", "halls", "venue", "event", "events", "conference", "function"},
	{"menu", "dish", "dishes", "food", "meal", "meals", "signature", "specials", "eat"},
	{"hours", "time", "open", "opening", "close", "closing", "schedule", "when"},
	{"location", "where", "address", "map", "directions", "near", "located", "find"},
	{"price", "prices", "cost", "fee", "fees", "deposit", "charge"},
	{"catering", "cater", "buffet", "banquet"},
	{"contact", "phone", "email", "call", "reach", "number", "mobile", "website"},
	{"facebook", "instagram", "tiktok", "social"},
	{"capacity", "guests", "people", "size", "seats", "seating", "accommodate"},
	{"delivery", "deliver", "takeaway", "takeout"},
	{"chicken", "poultry"},
	{"fish", "seafood", "tilapia"},
	{"beef", "steak", "meat", "lamb", "goat"},
	{"vegetarian", "vegan", "allergy", "allergies", "allergen", "allergens", "gluten", "halal"},
	{"developers", "developer", "built", "created", "credits"},
}

// synonymIndex is the precomputed adjacency: word -> union of all members
// of every group containing it. Built once, never per query.
var synonymIndex = buildSynonymIndex(synonymGroups)

func buildSynonymIndex(groups [][]string) map[string][]string {
	members := make(map[string]map[string]struct{})
	for _, group := range groups {
		for _, word := range group {
			set, ok := members[word]
			if !ok {
				set = make(map[string]struct{})
				members[word] = set
			}
			for _, other := range group {
				set[other] = struct{}{}
			}
		}
	}
	index := make(map[string][]string, len(members))
	for word, set := range members {
		expansion := make([]string, 0, len(set))
		for other := range set {
			expansion = append(expansion, other)
		}
		index[word] = expansion
	}
	return index
}

// expandTerms returns the synonym-expanded term set for the given tokens.
// The original tokens are always included.
func expandTerms(tokens []string) map[string]struct{} {
	expanded := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		expanded[token] = struct{}{}
		for _, synonym := range synonymIndex[token] {
			expanded[synonym] = struct{}{}
		}
	}
	return expanded
}
