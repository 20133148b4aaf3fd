// Package i18n holds the static UI string tables for every supported language.
package i18n

import "eventkompass/models"

// Table is a flat set of UI strings keyed by message id.
type Table map[string]string

var tables = map[models.Language]Table{
	models.LanguageDE: {
		"home":                "Startseite",
		"login":               "Anmelden",
		"logout":              "Abmelden",
		"register":            "Registrieren",
		"myBookings":          "Meine Buchungen",
		"heroTitle":           "Entdecke Deutschland neu",
		"heroSubtitle":        "Festivals, Sport, Kulinarik und Karriere-Events in deiner Stadt.",
		"searchPlaceholder":   "Wonach suchst du? z.B. Jazz in Berlin",
		"festivent":           "Festivent",
		"festiventDesc":       "Festivals, Konzerte und Stadtfeste.",
		"sports":              "Sport",
		"sportsDesc":          "Spiele, Turniere und Läufe.",
		"dining":              "Kulinarik",
		"diningDesc":          "Restaurants und Food-Events.",
		"career":              "Karriere",
		"careerDesc":          "Messen, Meetups und Workshops.",
		"loading":             "Lade Events...",
		"errorLoading":        "Fehler beim Laden der Events.",
		"booking":             "Jetzt buchen",
		"alreadyBooked":       "Bereits gebucht",
		"bookingSuccess":      "Buchung erfolgreich!",
		"loginRequired":       "Bitte melde dich an, um zu buchen.",
		"noBookings":          "Noch keine Buchungen.",
		"cancelBooking":       "Stornieren",
		"confirmCancel":       "Wirklich stornieren?",
		"locationUpdated":     "Standort aktualisiert",
		"share":               "Teilen",
		"shareTitle":          "Event teilen",
		"shareOn":             "Teilen auf",
		"copyLink":            "Link kopieren",
		"premiumMember":       "Premium-Mitglied",
		"registrationSuccess": "Registrierung erfolgreich! Bitte notiere deine Zugangsdaten.",
		"fullName":            "Vollständiger Name",
		"email":               "E-Mail",
		"password":            "Passwort",
		"subject":             "Betreff",
		"message":             "Nachricht",
		"submit":              "Absenden",
		"messageSuccess":      "Deine Nachricht wurde gesendet.",
		"thankYou":            "Vielen Dank!",
		"newMessage":          "Neue Nachricht",
		"helpPlaceholder":     "Wie können wir helfen?",
		"bookingIssue":        "Problem mit einer Buchung",
		"organizerFeedback":   "Feedback an Veranstalter",
		"technicalIssue":      "Technisches Problem",
		"other":               "Sonstiges",
		"aboutUs":             "Über uns",
		"aboutTitle":          "Über EventKompass",
		"aboutSubtitle":       "Dein Kompass für Erlebnisse in ganz Deutschland.",
		"aboutIntroText":      "EventKompass bündelt Veranstaltungen, Restaurants und Karriere-Events an einem Ort.",
		"aboutMissionTitle":   "Unsere Mission",
		"aboutMissionText":    "Jeder soll in Sekunden das passende Erlebnis in seiner Stadt finden.",
		"aboutWhatWeDoTitle":  "Was wir tun",
		"aboutWhatWeDoDesc":   "Wir kuratieren aktuelle Angebote mit KI und verlässlichen Quellen.",
		"aboutChampionsTitle": "Lokale Champions",
		"aboutChampionsText":  "Wir arbeiten mit Veranstaltern und Gastronomen vor Ort zusammen.",
		"aboutFoundersTitle":  "Die Gründer",
		"founderRole":         "Gründer & Geschäftsführer",
		"grievances":          "Beschwerden",
		"grievanceTitle":      "Kontakt & Beschwerden",
		"grievanceText":       "Etwas ist schiefgelaufen? Schreib uns, wir kümmern uns darum.",
		"careersTitle":        "Karriere bei EventKompass",
		"careersSub":          "Gestalte mit uns die Zukunft der Freizeitplanung.",
		"engineering":         "Entwicklung",
		"marketing":           "Marketing",
		"job1Title":           "Senior Backend Engineer (m/w/d)",
		"job1Desc":            "Baue die Plattform, die Millionen Erlebnisse vermittelt.",
		"job2Title":           "Growth Marketing Manager (m/w/d)",
		"job2Desc":            "Bring EventKompass in jede deutsche Stadt.",
		"pressTitle":          "Presse",
		"pressNews":           "Aktuelle Meldungen",
		"pressNews1Title":     "EventKompass startet KI-gestützte Eventsuche",
		"pressNews1Date":      "März 2025",
		"pressNews1Desc":      "Festivals, Sport, Kulinarik und Karriere-Events werden jetzt live mit Quellen recherchiert.",
		"pressNews2Title":     "Über 100 Städte jetzt verfügbar",
		"pressNews2Date":      "Mai 2025",
		"pressNews2Desc":      "Von Flensburg bis Garmisch: EventKompass deckt jetzt ganz Deutschland ab.",
	},
	models.LanguageEN: {
		"home":                "Home",
		"login":               "Log in",
		"logout":              "Log out",
		"register":            "Register",
		"myBookings":          "My bookings",
		"heroTitle":           "Rediscover Germany",
		"heroSubtitle":        "Festivals, sports, dining and career events in your city.",
		"searchPlaceholder":   "What are you looking for? e.g. jazz in Berlin",
		"festivent":           "Festivent",
		"festiventDesc":       "Festivals, concerts and street fairs.",
		"sports":              "Sports",
		"sportsDesc":          "Matches, tournaments and races.",
		"dining":              "Dining",
		"diningDesc":          "Restaurants and food events.",
		"career":              "Career",
		"careerDesc":          "Fairs, meetups and workshops.",
		"loading":             "Loading events...",
		"errorLoading":        "Error loading events.",
		"booking":             "Book now",
		"alreadyBooked":       "Already booked",
		"bookingSuccess":      "Booking successful!",
		"loginRequired":       "Please log in to book.",
		"noBookings":          "No bookings yet.",
		"cancelBooking":       "Cancel",
		"confirmCancel":       "Really cancel?",
		"locationUpdated":     "Location updated",
		"share":               "Share",
		"shareTitle":          "Share event",
		"shareOn":             "Share on",
		"copyLink":            "Copy link",
		"premiumMember":       "Premium member",
		"registrationSuccess": "Registration successful! Please note your credentials.",
		"fullName":            "Full name",
		"email":               "Email",
		"password":            "Password",
		"subject":             "Subject",
		"message":             "Message",
		"submit":              "Submit",
		"messageSuccess":      "Your message has been sent.",
		"thankYou":            "Thank you!",
		"newMessage":          "New message",
		"helpPlaceholder":     "How can we help?",
		"bookingIssue":        "Problem with a booking",
		"organizerFeedback":   "Feedback for organizers",
		"technicalIssue":      "Technical issue",
		"other":               "Other",
		"aboutUs":             "About us",
		"aboutTitle":          "About EventKompass",
		"aboutSubtitle":       "Your compass for experiences all over Germany.",
		"aboutIntroText":      "EventKompass brings events, restaurants and career events together in one place.",
		"aboutMissionTitle":   "Our mission",
		"aboutMissionText":    "Everyone should find the right experience in their city within seconds.",
		"aboutWhatWeDoTitle":  "What we do",
		"aboutWhatWeDoDesc":   "We curate current offers with AI and reliable sources.",
		"aboutChampionsTitle": "Local champions",
		"aboutChampionsText":  "We work with local organizers and restaurateurs.",
		"aboutFoundersTitle":  "The founders",
		"founderRole":         "Founder & CEO",
		"grievances":          "Grievances",
		"grievanceTitle":      "Contact & grievances",
		"grievanceText":       "Something went wrong? Write to us and we will take care of it.",
		"careersTitle":        "Careers at EventKompass",
		"careersSub":          "Help us shape the future of leisure planning.",
		"engineering":         "Engineering",
		"marketing":           "Marketing",
		"job1Title":           "Senior Backend Engineer (f/m/d)",
		"job1Desc":            "Build the platform that connects people with millions of experiences.",
		"job2Title":           "Growth Marketing Manager (f/m/d)",
		"job2Desc":            "Bring EventKompass to every German city.",
		"pressTitle":          "Press",
		"pressNews":           "Latest news",
		"pressNews1Title":     "EventKompass launches AI-powered event search",
		"pressNews1Date":      "March 2025",
		"pressNews1Desc":      "Festivals, sports, dining and career events are now researched live with sources.",
		"pressNews2Title":     "More than 100 cities now available",
		"pressNews2Date":      "May 2025",
		"pressNews2Desc":      "From Flensburg to Garmisch: EventKompass now covers all of Germany.",
	},
}

// For returns a copy of the table for lang. Unsupported languages get German.
func For(lang models.Language) Table {
	src, ok := tables[lang]
	if !ok {
		src = tables[models.LanguageDE]
	}
	out := make(Table, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// T looks up a single key, falling back to German and then to the key itself.
func T(lang models.Language, key string) string {
	if v, ok := tables[lang][key]; ok {
		return v
	}
	if v, ok := tables[models.LanguageDE][key]; ok {
		return v
	}
	return key
}

// CategoryLabel returns the localized name and description of a category.
func CategoryLabel(lang models.Language, c models.Category) (string, string) {
	switch c {
	case models.CategorySports:
		return T(lang, "sports"), T(lang, "sportsDesc")
	case models.CategoryDining:
		return T(lang, "dining"), T(lang, "diningDesc")
	case models.CategoryCareer:
		return T(lang, "career"), T(lang, "careerDesc")
	default:
		return T(lang, "festivent"), T(lang, "festiventDesc")
	}
}
