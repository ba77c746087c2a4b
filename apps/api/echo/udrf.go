package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

type (
	udrfApi struct {
		svc      *udrf.Service
		validate *validator.Validate
	}

	AcademicYearResponse struct {
		AcademicYear string `json:"academic_year"`
	}

	RankingResponse struct {
		AcademicYear string             `json:"academic_year"`
		Category     string             `json:"category,omitempty"` // empty for the overall ranking
		Ranking      []udrf.RankedEntry `json:"ranking"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func registerUDRFAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *udrf.Service, validate *validator.Validate) {
	api := udrfApi{svc: svc, validate: validate}

	g.GET("/academic-year", api.academicYear)

	// authed endpoints
	ag := g.Group("", jwt)
	ag.GET("/rankings", api.overallRanking, reviewerMiddleware())
	ag.GET("/categories/:category/rankings", api.categoryRanking, reviewerMiddleware())
	ag.GET("/departments", api.queryDepartments, reviewerMiddleware())

	// detail endpoints
	dg := ag.Group("/departments/:id")
	dg.GET("/score", api.departmentScore, departmentViewerMiddleware())
	dg.POST("/score/invalidate", api.invalidateScores, adminMiddleware())
	dg.GET("/review", api.review, reviewerMiddleware())
	dg.PUT("/review/sections/:section", api.saveSectionReview, expertMiddleware())

	// assignments
	asg := ag.Group("/assignments", adminMiddleware())
	asg.GET("", api.assignments)
	asg.PUT("/:category", api.assignExpert)
}

// Handlers

func (api *udrfApi) academicYear(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, AcademicYearResponse{AcademicYear: udrf.CurrentAcademicYear()})
}

func (api *udrfApi) overallRanking(ctx echo.Context) error {
	return api.ranking(ctx, "")
}

func (api *udrfApi) categoryRanking(ctx echo.Context) error {
	category := core.CleanString(ctx.Param("category"))
	if category == "" {
		return errHttpNotFound
	}
	return api.ranking(ctx, category)
}

func (api *udrfApi) ranking(ctx echo.Context, category string) error {
	year, err := bindYear(ctx)
	if err != nil {
		return err
	}

	ranking, err := api.svc.Rank(ctx.Request().Context(), udrf.RankQuery{Category: category, AcademicYear: year})
	if err != nil {
		return errors.Wrap(err, "ranking departments")
	}
	return ctx.JSON(http.StatusOK, RankingResponse{AcademicYear: year, Category: category, Ranking: ranking})
}

func (api *udrfApi) queryDepartments(ctx echo.Context) error {
	year, err := bindYear(ctx)
	if err != nil {
		return err
	}
	var ord Ordering
	ord.Bind(ctx)

	depts, err := api.svc.QueryDepartments(ctx.Request().Context(), ctx.QueryParam("category"), year, ord.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying departments")
	}
	return ctx.JSON(http.StatusOK, depts)
}

func (api *udrfApi) departmentScore(ctx echo.Context) error {
	id, err := bindDepartmentID(ctx)
	if err != nil {
		return err
	}
	year, err := bindYear(ctx)
	if err != nil {
		return err
	}

	score, err := api.svc.ScoreDepartment(ctx.Request().Context(), id, year)
	if err != nil {
		return errors.Wrap(err, "scoring department")
	}
	return ctx.JSON(http.StatusOK, score)
}

func (api *udrfApi) invalidateScores(ctx echo.Context) error {
	id, err := bindDepartmentID(ctx)
	if err != nil {
		return err
	}
	year, err := bindYear(ctx)
	if err != nil {
		return err
	}

	if err = api.svc.InvalidateScores(ctx.Request().Context(), id, year); err != nil {
		return errors.Wrap(err, "invalidating scores")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "scores will be recomputed on the next read"})
}

func (api *udrfApi) review(ctx echo.Context) error {
	id, err := bindDepartmentID(ctx)
	if err != nil {
		return err
	}
	year, err := bindYear(ctx)
	if err != nil {
		return err
	}

	review, err := api.svc.GetReview(ctx.Request().Context(), id, year)
	if err != nil {
		return errors.Wrap(err, "getting review")
	}
	return ctx.JSON(http.StatusOK, review)
}

func (api *udrfApi) saveSectionReview(ctx echo.Context) error {
	id, err := bindDepartmentID(ctx)
	if err != nil {
		return err
	}
	year, err := bindYear(ctx)
	if err != nil {
		return err
	}
	section, err := udrf.ParseSectionID(ctx.Param("section"))
	if err != nil {
		return errHttpNotFound
	}

	var data udrf.SectionReview
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SectionReview")
	}
	data.Section = section
	data.Clean()
	if err = api.validate.Struct(data); err != nil {
		return err
	}

	actor, err := contextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	review, err := api.svc.SaveSectionReview(ctx.Request().Context(), actor, id, year, data)
	if err != nil {
		return errors.Wrap(err, "saving section review")
	}
	return ctx.JSON(http.StatusOK, review)
}

func (api *udrfApi) assignments(ctx echo.Context) error {
	assignments, err := api.svc.Assignments(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *udrfApi) assignExpert(ctx echo.Context) error {
	var data udrf.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	data.Category = core.CleanString(ctx.Param("category"))
	data.ExpertEmail = core.CleanString(data.ExpertEmail, true /* lower */)
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	ca, err := api.svc.AssignExpert(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "assigning expert")
	}
	return ctx.JSON(http.StatusOK, ca)
}
