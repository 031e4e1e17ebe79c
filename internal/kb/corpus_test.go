package kb

import (
	"strings"
	"testing"
)

func testRecord() *KnowledgeRecord {
	return &KnowledgeRecord{
		Brand: Brand{
			Name:             "Mafi Restaurant",
			Tagline:          "Where every meal feels like home",
			ShortDescription: "A family restaurant with private meeting halls.",
		},
		Location: Location{
			Address:   "Main Street, Dessie",
			Landmarks: []string{"Commercial Bank"},
			MapURL:    "https://maps.example.com/mafi",
		},
		Contact: Contact{
			Phone:   "+251 91 234 5678",
			Email:   "hello@mafirestaurant.example",
			Website: "https://mafirestaurant.example",
			Social: Social{
				Facebook:  "https://facebook.com/mafi",
				Instagram: "https://instagram.com/mafi",
				TikTok:    "https://tiktok.com/@mafi",
			},
		},
		Hours: []HoursRow{
			{Days: "Monday-Friday", Open: "8:00 AM", Close: "10:00 PM"},
			{Days: "Saturday-Sunday", Open: "9:00 AM", Close: "11:00 PM"},
		},
		Services: Services{
			Reservations: Reservations{
				HowToBook:         "Call us or book online via the booking page",
				EmailTemplateHint: "Include your name, party size, and date.",
			},
			MeetingHalls: MeetingHalls{
				Summary:      "One large hall and several small halls for meetings and events",
				Amenities:    []string{"Projector", "Wi-Fi"},
				BookingNotes: []string{"Book 2 days in advance"},
				Capacity:     HallCapacity{LargeHall: 120, SmallHallEach: 25, TotalSmallHalls: 3},
			},
			Catering: &Catering{Available: true, Notes: "Buffet and banquet catering."},
			Delivery: &Delivery{Available: true, Notes: "Delivery within the city."},
		},
		Menu: Menu{
			Signature: []MenuItem{
				{Title: "Special Kitfo", Description: "Minced beef with mitmita and ayib."},
				{Title: "Doro Wot", Description: "Chicken stew with berbere and injera."},
				{Title: "Grilled Tilapia", Description: "Fresh tilapia with lemon and rice."},
			},
			Notes: []string{"Menu items may vary by season."},
		},
		Policies: Policies{
			Booking:   []string{"Hall bookings require confirmation."},
			Allergens: []string{"Please inform our staff of any allergies."},
		},
		FAQs: []FAQ{
			{Q: "Do you take walk-ins?", A: "Yes, walk-ins are welcome."},
		},
		Developers: []Credit{
			{Name: "Robel Asefa", Role: "Full-stack developer"},
		},
	}
}

func TestBuildCorpusUniqueIDs(t *testing.T) {
	docs := BuildCorpus(testRecord())
	if len(docs) == 0 {
		t.Fatalf("expected a non-empty corpus")
	}
	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		if doc.ID == "" {
			t.Fatalf("document with empty id: %+v", doc)
		}
		if _, dup := seen[doc.ID]; dup {
			t.Fatalf("duplicate document id %q", doc.ID)
		}
		seen[doc.ID] = struct{}{}
		if doc.Section == "" || doc.Text == "" {
			t.Fatalf("document %q missing section or text", doc.ID)
		}
	}
}

func TestBuildCorpusOmitsMissingOptionalSections(t *testing.T) {
	record := testRecord()
	record.Location.MapURL = ""
	record.Services.Catering = nil
	record.Services.Delivery = nil
	record.FAQs = nil
	record.Developers = nil

	docs := BuildCorpus(record)
	for _, doc := range docs {
		switch doc.ID {
		case "map", "services-catering", "services-delivery", "developers":
			t.Fatalf("expected %q to be omitted for a missing section", doc.ID)
		}
		if strings.HasPrefix(doc.ID, "faq-") {
			t.Fatalf("expected faq docs to be omitted, got %q", doc.ID)
		}
	}
}

func TestBuildCorpusOmitsUnavailableCatering(t *testing.T) {
	record := testRecord()
	record.Services.Catering = &Catering{Available: false, Notes: "Not offered."}
	for _, doc := range BuildCorpus(record) {
		if doc.ID == "services-catering" {
			t.Fatalf("expected catering doc to be omitted when unavailable")
		}
	}
}

func TestBuildCorpusAggregateMenuDoc(t *testing.T) {
	docs := BuildCorpus(testRecord())
	var aggregate *Doc
	perItem := 0
	for i := range docs {
		switch {
		case docs[i].ID == "menu-all":
			aggregate = &docs[i]
		case strings.HasPrefix(docs[i].ID, "menu-signature-"):
			perItem++
		}
	}
	if aggregate == nil {
		t.Fatalf("expected an aggregate menu document")
	}
	if aggregate.Section != "Menu" {
		t.Fatalf("unexpected aggregate menu section %q", aggregate.Section)
	}
	if perItem != 3 {
		t.Fatalf("expected 3 per-item menu docs, got %d", perItem)
	}
	for _, title := range []string{"Special Kitfo", "Doro Wot", "Grilled Tilapia"} {
		if !strings.Contains(aggregate.Text, title) {
			t.Fatalf("aggregate menu doc missing %q: %q", title, aggregate.Text)
		}
	}
}

func TestBuildCorpusNilRecord(t *testing.T) {
	if docs := BuildCorpus(nil); docs != nil {
		t.Fatalf("expected nil corpus for nil record, got %d docs", len(docs))
	}
}
