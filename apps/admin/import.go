package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

// importRecord is one department of an import file with its submitted data for one academic year.
type importRecord struct {
	Code     string       `json:"code" validate:"required,notblank"`
	Name     string       `json:"name" validate:"required,notblank"`
	Category string       `json:"category" validate:"required,notblank"`
	Data     udrf.RawData `json:"data"`
}

func (rec *importRecord) clean() {
	rec.Code = core.CleanString(rec.Code)
	rec.Name = core.CleanString(rec.Name)
	rec.Category = core.CleanString(rec.Category)
}

// importDepartments loads a JSON array of importRecord and imports each of them.
// Every record is validated before anything is written.
func (cli *commandLine) importDepartments(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var records []importRecord
	if err = json.Unmarshal(b, &records); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}

	for i := range records {
		rec := &records[i]
		rec.clean()
		if err = cli.validate.Struct(rec); err != nil {
			return errors.Wrapf(err, "record %d", i)
		}
		if !udrf.ValidAcademicYear(rec.Data.AcademicYear) {
			return errors.Wrapf(udrf.ErrInvalidYear, "record %d: %q", i, rec.Data.AcademicYear)
		}
	}

	ctx := context.Background()
	for _, rec := range records {
		dept, err := cli.importer.ImportDepartment(
			ctx,
			udrf.Department{Code: rec.Code, Name: rec.Name, Category: rec.Category},
			rec.Data,
		)
		if err != nil {
			return errors.Wrapf(err, "importing %s", rec.Code)
		}
		// stale cached scores would hide the new data
		if err = cli.svc.InvalidateScores(ctx, dept.ID, rec.Data.AcademicYear); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%d %s %s\n", dept.ID, dept.Code, rec.Data.AcademicYear)
	}
	return nil
}
