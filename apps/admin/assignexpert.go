package main

import (
	"context"
	"fmt"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

// assignExpert makes email the single expert of category, replacing any previous one.
func (cli *commandLine) assignExpert(category, email string) error {
	na := udrf.NewAssignment{
		Category:    core.CleanString(category),
		ExpertEmail: core.CleanString(email, true /* lower */),
	}
	if err := cli.validate.Struct(na); err != nil {
		return err
	}

	ca, err := cli.svc.AssignExpert(context.Background(), na)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s: %s\n", ca.Category, ca.ExpertEmail)
	return nil
}
