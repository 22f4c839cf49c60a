package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/qianbao/config"
	log "github.com/sirupsen/logrus"
)

// Environment variables passed to extensions. They are the ones config.Load
// reads, so an extension using it sees the same settings as qb.
const (
	EnvStore     = config.EnvPrefix + "_STORE"
	EnvDir       = config.EnvPrefix + "_DIR"
	EnvKey       = config.EnvPrefix + "_KEY"
	EnvCurrency  = config.EnvPrefix + "_CURRENCY"
	EnvRedisAddr = config.EnvPrefix + "_REDIS_ADDR"
	EnvRedisDB   = config.EnvPrefix + "_REDIS_DB"
	EnvLogLevel  = config.EnvPrefix + "_LOG_LEVEL"
)

// extensionEnv returns the environment of an extension: the current one plus
// the effective settings.
func extensionEnv() []string {
	env := os.Environ()
	if settings == nil {
		return env
	}
	return append(env,
		EnvStore+"="+settings.Store,
		EnvDir+"="+settings.Dir,
		EnvKey+"="+settings.Key,
		EnvCurrency+"="+settings.Currency,
		EnvRedisAddr+"="+settings.Redis.Addr,
		EnvRedisDB+"="+strconv.Itoa(settings.Redis.DB),
		EnvLogLevel+"="+settings.Log.Level,
	)
}

// RunExtension attempts to find and execute an external qb-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "qb-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.WithError(err).Debugf("no extension %q in PATH", name)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
