package udrf

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SectionID identifies one of the five rubric sections.
type SectionID int

const (
	SectionResearch SectionID = iota + 1
	SectionStudents
	SectionTeaching
	SectionOutreach
	SectionGovernance
)

const (
	SectionCount = 5
	MaxTotal     = 725.0
)

var ErrInvalidSection = errors.New("invalid section")

// Sections lists every section in rubric order.
var Sections = [SectionCount]SectionID{
	SectionResearch,
	SectionStudents,
	SectionTeaching,
	SectionOutreach,
	SectionGovernance,
}

func (id SectionID) Valid() bool {
	return id >= SectionResearch && id <= SectionGovernance
}

// Index is the zero-based position of the section in per-section arrays.
func (id SectionID) Index() int {
	return int(id) - 1
}

func (id SectionID) Max() float64 {
	switch id {
	case SectionResearch:
		return 300
	case SectionStudents:
		return 100
	case SectionTeaching:
		return 110
	case SectionOutreach:
		return 140
	case SectionGovernance:
		return 75
	}
	return 0
}

func (id SectionID) Name() string {
	switch id {
	case SectionResearch:
		return "Research & Faculty Profile"
	case SectionStudents:
		return "Student Performance"
	case SectionTeaching:
		return "Teaching, Learning & Innovation"
	case SectionOutreach:
		return "Extension, Collaboration & Outreach"
	case SectionGovernance:
		return "Governance, Infrastructure & Finance"
	}
	return ""
}

func (id SectionID) String() string {
	return strconv.Itoa(int(id))
}

// ParseSectionID parses "1".."5".
func ParseSectionID(s string) (SectionID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !SectionID(n).Valid() {
		return 0, errors.Wrapf(ErrInvalidSection, "%q", s)
	}
	return SectionID(n), nil
}

// ItemID identifies a rubric item inside a section, eg. "1.3".
type ItemID string

const (
	ItemFacultyFill       ItemID = "1.1"
	ItemPhDFaculty        ItemID = "1.2"
	ItemPublications      ItemID = "1.3"
	ItemBooksChapters     ItemID = "1.4"
	ItemPatents           ItemID = "1.5"
	ItemGovtProjects      ItemID = "1.6"
	ItemNonGovtProjects   ItemID = "1.7"
	ItemConsultancy       ItemID = "1.8"
	ItemFacultyAwards     ItemID = "1.9"
	ItemPassPercentage    ItemID = "2.1"
	ItemPlacement         ItemID = "2.2"
	ItemHigherStudies     ItemID = "2.3"
	ItemCompetitiveExams  ItemID = "2.4"
	ItemStudentAwards     ItemID = "2.5"
	ItemMOOCsDeveloped    ItemID = "3.1"
	ItemMOOCsCompleted    ItemID = "3.2"
	ItemICTCourses        ItemID = "3.3"
	ItemCurriculum        ItemID = "3.4"
	ItemWorkshops         ItemID = "3.5"
	ItemBestPractices     ItemID = "3.6"
	ItemMoUs              ItemID = "4.1"
	ItemIndustry          ItemID = "4.2"
	ItemExtension         ItemID = "4.3"
	ItemInternational     ItemID = "4.4"
	ItemAlumni            ItemID = "4.5"
	ItemSocialImpact      ItemID = "4.6"
	ItemBudgetUtilization ItemID = "5.1"
	ItemRevenue           ItemID = "5.2"
	ItemInfrastructure    ItemID = "5.3"
	ItemGovernance        ItemID = "5.4"
)

// ItemKey is the composite identifier of a rubric item.
type ItemKey struct {
	Section SectionID `json:"section"`
	Item    ItemID    `json:"item"`
}

// Item is one row of the rubric.
type Item struct {
	ID    ItemID  `json:"id"`
	Title string  `json:"title"`
	Cap   float64 `json:"cap"`
}

var rubric = map[SectionID][]Item{
	SectionResearch: {
		{ItemFacultyFill, "Faculty fill ratio", 30},
		{ItemPhDFaculty, "PhD faculty ratio", 40},
		{ItemPublications, "Indexed publications", 60},
		{ItemBooksChapters, "Books & chapters", 20},
		{ItemPatents, "Patents", 30},
		{ItemGovtProjects, "Govt-sponsored projects", 40},
		{ItemNonGovtProjects, "Non-govt-sponsored projects", 20},
		{ItemConsultancy, "Consultancy & training", 30},
		{ItemFacultyAwards, "Faculty awards", 30},
	},
	SectionStudents: {
		{ItemPassPercentage, "Pass percentage", 30},
		{ItemPlacement, "Placement percentage", 30},
		{ItemHigherStudies, "Higher studies", 10},
		{ItemCompetitiveExams, "Competitive exams qualified", 15},
		{ItemStudentAwards, "Student achievements", 15},
	},
	SectionTeaching: {
		{ItemMOOCsDeveloped, "MOOCs developed", 20},
		{ItemMOOCsCompleted, "MOOCs completed by faculty", 10},
		{ItemICTCourses, "ICT-enabled courses", 15},
		{ItemCurriculum, "Curriculum revisions & new programmes", 15},
		{ItemWorkshops, "Workshops & conferences organised", 20},
		{ItemBestPractices, "Best practices", 30},
	},
	SectionOutreach: {
		{ItemMoUs, "Active MoUs", 30},
		{ItemIndustry, "Industry collaborations", 20},
		{ItemExtension, "Extension activities", 30},
		{ItemInternational, "International collaborations & visiting faculty", 20},
		{ItemAlumni, "Alumni contributions", 20},
		{ItemSocialImpact, "Social impact", 20},
	},
	SectionGovernance: {
		{ItemBudgetUtilization, "Budget utilisation", 25},
		{ItemRevenue, "Self-generated revenue", 15},
		{ItemInfrastructure, "Infrastructure additions", 15},
		{ItemGovernance, "Governance & feedback", 20},
	},
}

// Rubric returns the items of a section.
func Rubric(id SectionID) []Item {
	items := rubric[id]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
