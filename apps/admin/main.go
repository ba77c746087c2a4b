package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
	logsvc "github.com/Swapnil27012000/uomdcs-sub003/services/logger"
	rediscache "github.com/Swapnil27012000/uomdcs-sub003/storage/cache/redis"
	"github.com/Swapnil27012000/uomdcs-sub003/storage/database"
	sqlxrepos "github.com/Swapnil27012000/uomdcs-sub003/storage/database/sqlx"
)

func main() {
	os.Exit(run())
}

func run() int {
	conf := core.NewConfig()

	std := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)
	defer logger.Close()

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Error("opening database", err)
		return 1
	}
	defer db.Close()
	repo := sqlxrepos.NewUDRFRepository(sqlx.NewDb(db, conf.Database.Engine))

	var cache udrf.ScoreCache
	if conf.Redis.Enabled {
		client := rediscache.NewClient(conf)
		defer func() { _ = client.Close() }()
		cache = rediscache.NewScoreCache(client, conf.Redis.TTL)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	udrf.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		conf:     conf,
		db:       db,
		svc:      udrf.NewService(repo, cache, nil, logger, conf),
		importer: repo,
		validate: validate,
		out:      os.Stdout,
	}
	if err = cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		return 1
	}
	return 0
}
