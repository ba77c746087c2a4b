package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Swapnil27012000/uomdcs-sub003/core/reviewer"
)

const contextActorKey = "actor"

// actorMiddleware lets the request through when the caller passes allowed.
func actorMiddleware(allowed func(ctx echo.Context, actor reviewer.Actor) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, err := getContextActor(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context actor")
			}
			if !allowed(ctx, actor) {
				return errHttpForbidden
			}
			ctx.Set(contextActorKey, actor)
			return next(ctx)
		}
	}
}

func adminMiddleware() echo.MiddlewareFunc {
	return actorMiddleware(func(_ echo.Context, actor reviewer.Actor) bool { return actor.IsAdmin() })
}

func reviewerMiddleware() echo.MiddlewareFunc {
	return actorMiddleware(func(_ echo.Context, actor reviewer.Actor) bool { return actor.IsReviewer() })
}

func expertMiddleware() echo.MiddlewareFunc {
	return actorMiddleware(func(_ echo.Context, actor reviewer.Actor) bool { return actor.IsExpert() })
}

// departmentViewerMiddleware admits reviewers and the users of the department in the `:id` path param.
func departmentViewerMiddleware() echo.MiddlewareFunc {
	return actorMiddleware(func(ctx echo.Context, actor reviewer.Actor) bool {
		id, err := strconv.Atoi(ctx.Param("id"))
		return err == nil && actor.CanViewDepartment(id)
	})
}

// contextActor returns the actor stored by actorMiddleware.
func contextActor(ctx echo.Context) (reviewer.Actor, error) {
	if actor, ok := ctx.Get(contextActorKey).(reviewer.Actor); ok {
		return actor, nil
	}
	return getContextActor(ctx)
}
