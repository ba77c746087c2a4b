package main

import (
	"fmt"
	"strings"

	echoapi "github.com/Swapnil27012000/uomdcs-sub003/apps/api/echo"
	"github.com/Swapnil27012000/uomdcs-sub003/core/reviewer"
)

// token prints a signed API token for the given caller.
func (cli *commandLine) token(email, name string, roles []string, departmentID int) error {
	cleaned := make([]string, 0, len(roles))
	for _, role := range roles {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		if !reviewer.IsRole(role) {
			return fmt.Errorf("unknown role %q", role)
		}
		cleaned = append(cleaned, role)
	}
	if len(cleaned) == 0 {
		return errHelp
	}

	actor := reviewer.NewActor(email, name, cleaned, departmentID)
	if actor.HasRole(reviewer.RoleDepartment) && actor.DepartmentID == 0 {
		return fmt.Errorf("role %q requires -department", reviewer.RoleDepartment)
	}

	ss, err := echoapi.GenerateToken(echoapi.GetActorClaims(actor, cli.conf), cli.conf)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, ss)
	return nil
}
