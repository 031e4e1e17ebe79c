package kb

import (
	"fmt"
	"strings"
)

// BuildCorpus flattens the knowledge record into short independent documents,
// one per logical fact group. Each document's text is a denormalized sentence
// so a single doc can answer a question without joins at query time. Pure:
// missing optional sections simply produce no document.
func BuildCorpus(record *KnowledgeRecord) []Doc {
	if record == nil {
		return nil
	}
	var docs []Doc

	docs = append(docs, Doc{
		ID:      "brand",
		Section: "Brand",
		Text:    joinSentences(record.Brand.Name, record.Brand.Tagline, record.Brand.ShortDescription),
	})

	if record.Location.Address != "" {
		text := "Address: " + record.Location.Address + "."
		if len(record.Location.Landmarks) > 0 {
			text += " Landmarks: " + strings.Join(record.Location.Landmarks, ", ")
		}
		docs = append(docs, Doc{ID: "location", Section: "Location", Text: text})
	}

	if record.Location.MapURL != "" {
		docs = append(docs, Doc{ID: "map", Section: "Map", Text: "Map: " + record.Location.MapURL})
	}

	if contact := contactText(record.Contact); contact != "" {
		docs = append(docs, Doc{ID: "contact", Section: "Contact", Text: contact})
	}

	if len(record.Hours) > 0 {
		rows := make([]string, 0, len(record.Hours))
		for _, row := range record.Hours {
			rows = append(rows, fmt.Sprintf("%s %s–%s", row.Days, row.Open, row.Close))
		}
		docs = append(docs, Doc{ID: "hours", Section: "Hours", Text: strings.Join(rows, " | ")})
	}

	if res := record.Services.Reservations; res.HowToBook != "" {
		docs = append(docs, Doc{
			ID:      "services-reservations",
			Section: "Reservations",
			Text:    joinSentences("Reservations: "+res.HowToBook, res.EmailTemplateHint),
		})
	}

	if mh := record.Services.MeetingHalls; mh.Summary != "" {
		docs = append(docs, Doc{ID: "services-meetingHalls", Section: "Meeting Halls", Text: meetingHallsText(mh)})
	}

	if cat := record.Services.Catering; cat != nil && cat.Available {
		docs = append(docs, Doc{
			ID:      "services-catering",
			Section: "Catering",
			Text:    joinSentences("Catering available", cat.Notes),
		})
	}

	if del := record.Services.Delivery; del != nil {
		availability := "No"
		if del.Available {
			availability = "Yes"
		}
		docs = append(docs, Doc{
			ID:      "services-delivery",
			Section: "Delivery",
			Text:    joinSentences("Delivery available: "+availability, del.Notes),
		})
	}

	for idx, item := range record.Menu.Signature {
		docs = append(docs, Doc{
			ID:      fmt.Sprintf("menu-signature-%d", idx),
			Section: "Menu · Signature",
			Text:    item.Title + ": " + item.Description,
		})
	}

	if len(record.Menu.Signature) > 0 {
		items := make([]string, 0, len(record.Menu.Signature))
		for _, item := range record.Menu.Signature {
			items = append(items, item.Title)
		}
		docs = append(docs, Doc{
			ID:      "menu-all",
			Section: "Menu",
			Text:    "Signature menu: " + strings.Join(items, ", ") + ".",
		})
	}

	if len(record.Menu.Notes) > 0 {
		docs = append(docs, Doc{ID: "menu-notes", Section: "Menu · Notes", Text: strings.Join(record.Menu.Notes, " ")})
	}

	if len(record.Policies.Booking) > 0 {
		docs = append(docs, Doc{ID: "policies-booking", Section: "Policies · Booking", Text: strings.Join(record.Policies.Booking, " ")})
	}

	if len(record.Policies.Allergens) > 0 {
		docs = append(docs, Doc{ID: "policies-allergens", Section: "Policies · Allergens", Text: strings.Join(record.Policies.Allergens, " ")})
	}

	for i, f := range record.FAQs {
		docs = append(docs, Doc{
			ID:      fmt.Sprintf("faq-%d", i),
			Section: "FAQ",
			Text:    "Q: " + f.Q + " A: " + f.A,
		})
	}

	if len(record.Developers) > 0 {
		credits := make([]string, 0, len(record.Developers))
		for _, dev := range record.Developers {
			if dev.Role != "" {
				credits = append(credits, fmt.Sprintf("%s (%s)", dev.Name, dev.Role))
				continue
			}
			credits = append(credits, dev.Name)
		}
		docs = append(docs, Doc{
			ID:      "developers",
			Section: "Developers",
			Text:    "Site developers: " + strings.Join(credits, ", "),
		})
	}

	return docs
}

func contactText(c Contact) string {
	var parts []string
	appendPart := func(label, value string) {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
	}
	appendPart("Phone", c.Phone)
	appendPart("Email", c.Email)
	appendPart("Website", c.Website)
	appendPart("Facebook", c.Social.Facebook)
	appendPart("Instagram", c.Social.Instagram)
	appendPart("TikTok", c.Social.TikTok)
	return strings.Join(parts, ". ")
}

func meetingHallsText(mh MeetingHalls) string {
	var b strings.Builder
	b.WriteString("Meeting halls: ")
	b.WriteString(mh.Summary)
	b.WriteString(".")
	if len(mh.Amenities) > 0 {
		b.WriteString(" Amenities: ")
		b.WriteString(strings.Join(mh.Amenities, ", "))
		b.WriteString(".")
	}
	if len(mh.BookingNotes) > 0 {
		b.WriteString(" Notes: ")
		b.WriteString(strings.Join(mh.BookingNotes, "; "))
		b.WriteString(".")
	}
	if mh.Capacity.LargeHall > 0 || mh.Capacity.SmallHallEach > 0 {
		b.WriteString(fmt.Sprintf(" Capacity: Large %d, Small each %d (x%d).",
			mh.Capacity.LargeHall, mh.Capacity.SmallHallEach, mh.Capacity.TotalSmallHalls))
	}
	return b.String()
}

func joinSentences(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		kept = append(kept, strings.TrimSuffix(trimmed, "."))
	}
	return strings.Join(kept, ". ")
}
