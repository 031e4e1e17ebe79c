package kb

// KnowledgeRecord is the restaurant's knowledge base: a single structured
// configuration document loaded once at startup and treated as immutable.
// Optional service categories are modeled as pointers so absence is
// distinguishable from an empty value.
type KnowledgeRecord struct {
	Brand      Brand      `json:"brand"`
	Location   Location   `json:"location"`
	Contact    Contact    `json:"contact"`
	Hours      []HoursRow `json:"hours"`
	Services   Services   `json:"services"`
	Menu       Menu       `json:"menu"`
	Policies   Policies   `json:"policies"`
	FAQs       []FAQ      `json:"faqs,omitempty"`
	Developers []Credit   `json:"developers,omitempty"`
}

type Brand struct {
	Name             string `json:"name"`
	Tagline          string `json:"tagline,omitempty"`
	ShortDescription string `json:"shortDescription,omitempty"`
}

type Location struct {
	Address   string   `json:"address"`
	Landmarks []string `json:"landmarks,omitempty"`
	MapURL    string   `json:"mapUrl,omitempty"`
}

type Contact struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
	Social  Social `json:"social,omitempty"`
}

type Social struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
}

type HoursRow struct {
	Days  string `json:"days"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

type Services struct {
	Reservations Reservations  `json:"reservations"`
	MeetingHalls MeetingHalls  `json:"meetingHalls"`
	Catering     *Catering     `json:"catering,omitempty"`
	Delivery     *Delivery     `json:"delivery,omitempty"`
}

type Reservations struct {
	HowToBook         string `json:"howToBook,omitempty"`
	EmailTemplateHint string `json:"emailTemplateHint,omitempty"`
}

type MeetingHalls struct {
	Summary      string       `json:"summary,omitempty"`
	Amenities    []string     `json:"amenities,omitempty"`
	BookingNotes []string     `json:"bookingNotes,omitempty"`
	Capacity     HallCapacity `json:"capacity,omitempty"`
}

type HallCapacity struct {
	LargeHall       int `json:"largeHall,omitempty"`
	SmallHallEach   int `json:"smallHallEach,omitempty"`
	TotalSmallHalls int `json:"totalSmallHalls,omitempty"`
}

type Catering struct {
	Available bool   `json:"available"`
	Notes     string `json:"notes,omitempty"`
}

type Delivery struct {
	Available bool   `json:"available"`
	Notes     string `json:"notes,omitempty"`
}

type Menu struct {
	Signature []MenuItem `json:"signature,omitempty"`
	Notes     []string   `json:"notes,omitempty"`
}

type MenuItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Policies struct {
	Booking   []string `json:"booking,omitempty"`
	Allergens []string `json:"allergens,omitempty"`
}

type FAQ struct {
	Q string `json:"q"`
	A string `json:"a"`
}

type Credit struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Doc is one retrievable unit of the corpus: a section label plus a short
// denormalized natural-language fact.
type Doc struct {
	ID      string `json:"id"`
	Section string `json:"section"`
	Text    string `json:"text"`
}
