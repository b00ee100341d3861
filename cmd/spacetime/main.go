package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"runtime"
	"strings"

	"github.com/mdouchement/spacetime/internal/database"
	"github.com/mdouchement/spacetime/internal/server"
	"github.com/mdouchement/spacetime/internal/server/token"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "spacetime",
		Short:   "Memories server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	c.PersistentFlags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)
	c.AddCommand(reindexCmd)
	c.AddCommand(serverCmd)
	c.AddCommand(tokenCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load(cfg)
			if err != nil {
				return err
			}

			return database.StormInit(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load(cfg)
			if err != nil {
				return err
			}

			return database.StormReIndex(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
		},
	}

	//
	tokenCmd = &coral.Command{
		Use:   "token USER_ID",
		Short: "Issue a JWT for the given user",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			konf, err := load(cfg)
			if err != nil {
				return err
			}

			if konf.String("auth.secret_key") == "" {
				return errors.New("auth.secret_key not found")
			}

			tk, err := token.Sign(konf.MustBytes("auth.secret_key"), args[0], konf.Duration("auth.token_ttl"))
			if err != nil {
				return err
			}

			fmt.Println(tk)
			return nil
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load(cfg)
			if err != nil {
				return err
			}

			output, err := setupLogger(konf)
			if err != nil {
				return err
			}

			authEnabled := konf.Bool("auth.enabled")
			if authEnabled && konf.String("auth.secret_key") == "" {
				return errors.New("auth.secret_key not found")
			}
			if !authEnabled {
				logrus.WithField("user_id", konf.String("auth.anonymous_user_id")).Warn("Authentication is disabled")
			}

			db, err := database.StormOpen(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			var signingKey []byte
			if authEnabled {
				signingKey = konf.MustBytes("auth.secret_key")
			}

			engine := server.EchoEngine(server.IOC{
				Version:         version,
				Database:        db,
				LogOutput:       output,
				AuthEnabled:     authEnabled,
				AnonymousUserID: konf.String("auth.anonymous_user_id"),
				SigningKey:      signingKey,
			})
			server.PrintRoutes(os.Stdout, engine)

			address := konf.String("address")
			message := "could not run server"
			logrus.Infof("Server listening on %s", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					logrus.Infof("Removing existing %s", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}
)
