package remote

import "github.com/mattsolo1/grove-zeplin/pkg/models"

// AssignPaths fills in BarrelID, SectionIDs and SectionNames of every
// component in details from its position in the section hierarchy.
func AssignPaths(details *models.BarrelDetails) {
	for i := range details.Components {
		c := &details.Components[i]
		c.BarrelID = details.ID
		c.SectionIDs = []string{}
		c.SectionNames = []string{}
	}
	assignSectionPaths(details.ID, details.Sections, nil, nil)
}

func assignSectionPaths(barrelID string, sections []models.ComponentSection, ids, names []string) {
	for i := range sections {
		s := &sections[i]
		sectionIDs := append(append([]string{}, ids...), s.ID)
		sectionNames := append(append([]string{}, names...), s.Name)
		for j := range s.Components {
			c := &s.Components[j]
			c.BarrelID = barrelID
			c.SectionIDs = sectionIDs
			c.SectionNames = sectionNames
		}
		assignSectionPaths(barrelID, s.Sections, sectionIDs, sectionNames)
	}
}
