package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/reviewer"
)

const (
	tokenContextKey = "userToken"
	tokenAudience   = "UDRF"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email        string   `json:"email"`
	Name         string   `json:"name,omitempty"`
	Roles        []string `json:"roles,omitempty"`
	DepartmentID int      `json:"department_id,omitempty"` // department users only
}

// Actor returns the caller identified by the claims.
func (c Claims) Actor() reviewer.Actor {
	return reviewer.NewActor(c.Email, c.Name, c.Roles, c.DepartmentID)
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		Claims:        new(Claims),
	}
}

func GetActorClaims(actor reviewer.Actor, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   actor.Email,
			Audience:  tokenAudience,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email:        actor.Email,
		Name:         actor.Name,
		Roles:        actor.Roles,
		DepartmentID: actor.DepartmentID,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims, conf *core.Config) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextActor(ctx echo.Context) (reviewer.Actor, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return reviewer.Actor{}, err
	}
	actor := claims.Actor()
	if actor.Email == "" {
		return reviewer.Actor{}, errUnauthorized
	}
	return actor, nil
}
