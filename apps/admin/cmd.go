package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

var (
	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } // mockable

	errHelp = errors.New("help provided")
)

type departmentImporter interface {
	ImportDepartment(ctx context.Context, dept udrf.Department, raw udrf.RawData) (udrf.Department, error)
}

type commandLine struct {
	conf     *core.Config
	db       *sql.DB
	svc      *udrf.Service
	importer departmentImporter
	validate *validator.Validate
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...] - run database migrations (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  assignexpert -category CATEGORY -email EMAIL - assign the expert of a category")
	fmt.Fprintln(cli.out, "  ranking [-year YEAR] [-category CATEGORY] [-compare YEAR] - print a ranking")
	fmt.Fprintln(cli.out, "  token -email EMAIL -roles ROLES [-name NAME] [-department ID] - issue an API token")
	fmt.Fprintln(cli.out, "  import -file PATH - import departments and their submitted data")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	assignCmd := flag.NewFlagSet("assignexpert", flag.ContinueOnError)
	assignCategory := assignCmd.String("category", "", "The department category.")
	assignEmail := assignCmd.String("email", "", "The expert's email.")

	rankingCmd := flag.NewFlagSet("ranking", flag.ContinueOnError)
	rankingYear := rankingCmd.String("year", "", "The academic year (YYYY-YYYY). Defaults to the current one.")
	rankingCategory := rankingCmd.String("category", "", "Rank a single category.")
	rankingCompare := rankingCmd.String("compare", "", "Show the changes from the ranking of this academic year.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenEmail := tokenCmd.String("email", "", "The caller's email.")
	tokenName := tokenCmd.String("name", "", "The caller's display name.")
	tokenRoles := tokenCmd.String("roles", "", "Comma separated roles, eg. admin:,expert:")
	tokenDept := tokenCmd.Int("department", 0, "The caller's department, for department roles.")

	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	importFile := importCmd.String("file", "", "Path to a JSON file of departments.")

	for _, fs := range []*flag.FlagSet{assignCmd, rankingCmd, tokenCmd, importCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "assignexpert":
		if err := assignCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *assignCategory == "" || *assignEmail == "" {
			assignCmd.Usage()
			return errHelp
		}
		return cli.assignExpert(*assignCategory, *assignEmail)

	case "ranking":
		if err := rankingCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		year := *rankingYear
		if year == "" {
			year = udrf.CurrentAcademicYear()
		}
		return cli.ranking(year, *rankingCategory, *rankingCompare)

	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *tokenEmail == "" || *tokenRoles == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenEmail, *tokenName, strings.Split(*tokenRoles, ","), *tokenDept)

	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importDepartments(*importFile)

	default:
		cli.printUsage()
		return errHelp
	}
}
