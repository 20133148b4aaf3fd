// Package pages assembles the localized informational pages and handles the
// grievance form.
package pages

import (
	"eventkompass/i18n"
	"eventkompass/models"
)

// Section is one block of a page.
type Section struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Text     string `json:"text,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

// Page is the content of an informational view.
type Page struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle,omitempty"`
	Sections []Section `json:"sections"`
}

var founders = []string{"Ankit Bhattacharjee", "Shiva Sai Ram Reddy Pallolu"}

// Get returns the page called name in lang.
func Get(name string, lang models.Language) (Page, bool) {
	t := i18n.For(lang)

	switch name {
	case "about":
		p := Page{
			Name:     name,
			Title:    t["aboutTitle"],
			Subtitle: t["aboutSubtitle"],
			Sections: []Section{
				{Text: t["aboutIntroText"]},
				{Title: t["aboutMissionTitle"], Text: t["aboutMissionText"]},
				{Title: t["aboutWhatWeDoTitle"], Text: t["aboutWhatWeDoDesc"]},
				{Title: t["aboutChampionsTitle"], Text: t["aboutChampionsText"]},
			},
		}
		for _, f := range founders {
			p.Sections = append(p.Sections, Section{Title: f, Subtitle: t["founderRole"], Tag: t["aboutFoundersTitle"]})
		}
		return p, true
	case "careers":
		return Page{
			Name:     name,
			Title:    t["careersTitle"],
			Subtitle: t["careersSub"],
			Sections: []Section{
				{Title: t["job1Title"], Text: t["job1Desc"], Tag: t["engineering"]},
				{Title: t["job2Title"], Text: t["job2Desc"], Tag: t["marketing"]},
			},
		}, true
	case "press":
		return Page{
			Name:  name,
			Title: t["pressTitle"],
			Sections: []Section{
				{Title: t["pressNews1Title"], Subtitle: t["pressNews1Date"], Text: t["pressNews1Desc"], Tag: t["pressNews"]},
				{Title: t["pressNews2Title"], Subtitle: t["pressNews2Date"], Text: t["pressNews2Desc"], Tag: t["pressNews"]},
			},
		}, true
	case "grievances":
		p := Page{
			Name:     name,
			Title:    t["grievanceTitle"],
			Subtitle: t["grievanceText"],
		}
		for _, s := range GrievanceSubjects {
			p.Sections = append(p.Sections, Section{Tag: string(s), Title: t[string(s)]})
		}
		return p, true
	}
	return Page{}, false
}
