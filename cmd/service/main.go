package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/prtracker/prtracker/internal"
	"github.com/prtracker/prtracker/internal/config"
	"github.com/prtracker/prtracker/internal/logging"
	"github.com/prtracker/prtracker/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "prtracker-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	jwtSecret := os.Getenv("PRTRACKER_JWT_SECRET")
	if jwtSecret == "" {
		log.Errorf("jwt signing secret not set, use PRTRACKER_JWT_SECRET env var to set it")
	}

	stravaClientID := os.Getenv("PRTRACKER_STRAVA_CLIENT_ID")
	if stravaClientID == "" {
		log.Errorf("strava client id not set. use PRTRACKER_STRAVA_CLIENT_ID")
	}
	stravaClientSecret := os.Getenv("PRTRACKER_STRAVA_CLIENT_SECRET")
	if stravaClientSecret == "" {
		log.Errorf("strava client secret not set. use PRTRACKER_STRAVA_CLIENT_SECRET")
	}
	stravaRedirectURI := os.Getenv("PRTRACKER_STRAVA_REDIRECT_URI")
	if stravaRedirectURI == "" {
		log.Errorf("strava redirect URI not set. use PRTRACKER_STRAVA_REDIRECT_URI")
	}

	redisPassword := os.Getenv("PRTRACKER_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use PRTRACKER_REDIS_PASS")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			JWTSecret:               jwtSecret,
			StravaClientID:          stravaClientID,
			StravaClientSecret:      stravaClientSecret,
			StravaRedirectURI:       stravaRedirectURI,
			RedisPassword:           redisPassword,
			VersionInfo:             versionInfo,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	// go to sleep 🥱
	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return pkg.BytesToString(stdout), nil
}
