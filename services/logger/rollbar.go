package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/reviewer"
)

type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Close flushes the reports still queued for rollbar.
func (l RollbarLogger) Close() {
	rollbar.Wait()
}

// prepare splits args into the rollbar arguments and the acting reviewer, if any.
// expected fmt: msg | error, map[string]interface{}, reviewer.Actor
func (l RollbarLogger) prepare(msg string, args []interface{}) ([]interface{}, *reviewer.Actor) {
	var actor *reviewer.Actor
	rbArgs := make([]interface{}, 0, len(args)+1)
	rbArgs = append(rbArgs, msg)
	for _, arg := range args {
		a, ok := arg.(reviewer.Actor)
		if !ok {
			rbArgs = append(rbArgs, arg)
			continue
		}
		if actor == nil && a.Email != "" { // only report one person
			actor = &a
		}
	}
	if actor != nil {
		rollbar.SetPerson(actor.Email, actor.Name, actor.Email)
	} else {
		rollbar.ClearPerson()
	}
	return rbArgs, actor
}

func (l RollbarLogger) log(level, msg string, args []interface{}) {
	rbArgs, actor := l.prepare(msg, args)
	rollbar.Log(level, rbArgs...)

	if actor != nil {
		l.std.Printf("[%s] %s (%s)", level, msg, actor.Email)
	} else {
		l.std.Printf("[%s] %s", level, msg)
	}
	for _, arg := range rbArgs[1:] {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.log(rollbar.DEBUG, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log(rollbar.INFO, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log(rollbar.WARN, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.log(rollbar.ERR, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.CRIT, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
