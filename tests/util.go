package testutil

import (
	"context"
	"io/ioutil"
	"log"
	"testing"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
	logsvc "github.com/Swapnil27012000/uomdcs-sub003/services/logger"
	inmemdb "github.com/Swapnil27012000/uomdcs-sub003/storage/database/inmem"
)

const Year = "2024-2025"

// NewLogger returns a logger that reports nowhere.
func NewLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), conf)
	logger.Enable(false)
	return logger
}

// NewService returns a service over an in-memory store.
func NewService(db *inmemdb.DB, cache udrf.ScoreCache, obs udrf.Observer) *udrf.Service {
	conf := core.NewTestConfig()
	return udrf.NewService(inmemdb.NewUDRFRepository(db), cache, obs, NewLogger(conf), conf)
}

func AddDepartment(t *testing.T, db *inmemdb.DB, id int, code, category string, years ...string) udrf.Department {
	t.Helper()
	if len(years) == 0 {
		years = []string{Year}
	}
	dept := udrf.Department{ID: id, Code: code, Name: code + " Department", Category: category}
	db.AddDepartment(dept, years...)
	return dept
}

func AssignExpert(t *testing.T, svc *udrf.Service, category, email string) {
	t.Helper()
	if _, err := svc.AssignExpert(context.Background(), udrf.NewAssignment{Category: category, ExpertEmail: email}); err != nil {
		t.Fatalf("AssignExpert() failed: %v", err)
	}
}

// MaxedRawData returns raw data scoring the maximum of each given section and 0 elsewhere.
func MaxedRawData(deptID int, year string, sections ...udrf.SectionID) udrf.RawData {
	raw := udrf.RawData{DepartmentID: deptID, AcademicYear: year}
	narr := []udrf.NarrativeEntry{{Title: "Outstanding", Score: 100}}
	for _, id := range sections {
		switch id {
		case udrf.SectionResearch:
			raw.Research = udrf.ResearchData{
				SanctionedFaculty: 10, FilledFaculty: 10, PhDFaculty: 10,
				Publications: 30, BooksChapters: 20, PatentsGranted: 3,
				Projects: []udrf.LineItem{
					{Type: udrf.TagGovtSponsored, Amount: 80},
					{Type: udrf.TagNonGovtSponsored, Amount: 70},
				},
				Consultancy: []udrf.LineItem{{Type: udrf.TagConsultancy, Amount: 15}},
				Awards:      narr,
			}
		case udrf.SectionStudents:
			raw.Students = udrf.StudentsData{
				Appeared: 50, Passed: 50, PlacementEligible: 40, Placed: 40,
				HigherStudies: 5, CompetitiveExams: 8, Achievements: narr,
			}
		case udrf.SectionTeaching:
			moocs := make([]udrf.LineItem, 0, 14)
			for i := 0; i < 4; i++ {
				moocs = append(moocs, udrf.LineItem{Type: udrf.TagMOOCDeveloped})
			}
			for i := 0; i < 10; i++ {
				moocs = append(moocs, udrf.LineItem{Type: udrf.TagMOOCCompleted})
			}
			raw.Teaching = udrf.TeachingData{
				MOOCs: moocs, TotalCourses: 12, ICTCourses: 12,
				CurriculumRevisions: 3, Workshops: 10, BestPractices: narr,
			}
		case udrf.SectionOutreach:
			raw.Outreach = udrf.OutreachData{
				MoUs: 6, IndustryCollabs: 5, ExtensionActivities: 15, International: 4,
				AlumniContribution: 1000000, SocialImpact: narr,
			}
		case udrf.SectionGovernance:
			raw.Governance = udrf.GovernanceData{
				BudgetAllocated: 500000, BudgetUtilized: 500000, RevenueGenerated: 1500000,
				Infrastructure: 5, GovernanceEntries: narr,
			}
		}
	}
	return raw
}
