package udrf

// RawData is everything a department submitted for one academic year, section by section.
// Zero values stand for missing data.
type RawData struct {
	DepartmentID int    `json:"department_id"`
	AcademicYear string `json:"academic_year"`

	Research   ResearchData   `json:"research"`
	Students   StudentsData   `json:"students"`
	Teaching   TeachingData   `json:"teaching"`
	Outreach   OutreachData   `json:"outreach"`
	Governance GovernanceData `json:"governance"`
}

// ResearchData feeds SectionResearch.
type ResearchData struct {
	SanctionedFaculty int              `json:"sanctioned_faculty"`
	FilledFaculty     int              `json:"filled_faculty"`
	PhDFaculty        int              `json:"phd_faculty"`
	Publications      int              `json:"publications"`
	BooksChapters     int              `json:"books_chapters"`
	PatentsPublished  int              `json:"patents_published"`
	PatentsGranted    int              `json:"patents_granted"`
	Projects          []LineItem       `json:"projects"`
	Consultancy       []LineItem       `json:"consultancy"`
	Awards            []NarrativeEntry `json:"awards"`
}

// StudentsData feeds SectionStudents.
type StudentsData struct {
	Appeared          int              `json:"appeared"`
	Passed            int              `json:"passed"`
	PlacementEligible int              `json:"placement_eligible"`
	Placed            int              `json:"placed"`
	HigherStudies     int              `json:"higher_studies"`
	CompetitiveExams  int              `json:"competitive_exams"`
	Achievements      []NarrativeEntry `json:"achievements"`
}

// TeachingData feeds SectionTeaching.
type TeachingData struct {
	MOOCs               []LineItem       `json:"moocs"`
	TotalCourses        int              `json:"total_courses"`
	ICTCourses          int              `json:"ict_courses"`
	CurriculumRevisions int              `json:"curriculum_revisions"`
	Workshops           int              `json:"workshops"`
	BestPractices       []NarrativeEntry `json:"best_practices"`
}

// OutreachData feeds SectionOutreach.
type OutreachData struct {
	MoUs                int              `json:"mous"`
	IndustryCollabs     int              `json:"industry_collaborations"`
	ExtensionActivities int              `json:"extension_activities"`
	International       int              `json:"international"`
	AlumniContribution  float64          `json:"alumni_contribution"` // rupees
	SocialImpact        []NarrativeEntry `json:"social_impact"`
}

// GovernanceData feeds SectionGovernance.
type GovernanceData struct {
	BudgetAllocated   float64          `json:"budget_allocated"`  // rupees
	BudgetUtilized    float64          `json:"budget_utilized"`   // rupees
	RevenueGenerated  float64          `json:"revenue_generated"` // rupees
	Infrastructure    int              `json:"infrastructure"`
	GovernanceEntries []NarrativeEntry `json:"governance"`
}
