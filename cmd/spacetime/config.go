package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/mdouchement/spacetime/internal/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	dbname    = "spacetime.db"
	envprefix = "SPACETIME_"
)

var defaults = map[string]any{
	"address":                "localhost:5000",
	"database_path":          "",
	"database_codec":         "msgpack",
	"auth.enabled":           true,
	"auth.token_ttl":         "720h",
	"auth.anonymous_user_id": model.AnonymousUserID,
	"log.level":              "info",
	"log.format":             "text",
	"log.max_size":           100,
	"log.max_backups":        3,
	"log.max_age":            28,
}

// load reads the configuration from defaults, the given YAML file and the environment, in that order.
// SPACETIME_AUTH__SECRET_KEY overrides auth.secret_key.
func load(filename string) (*koanf.Koanf, error) {
	konf := koanf.New(".")
	if err := konf.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, "could not load defaults")
	}

	if filename != "" {
		if err := konf.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "could not load configuration file")
		}
	}

	err := konf.Load(env.Provider(envprefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envprefix)), "__", ".")
	}), nil)
	return konf, errors.Wrap(err, "could not load environment")
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

// setupLogger configures logrus and returns the writer shared with the HTTP request logger.
func setupLogger(konf *koanf.Koanf) (io.Writer, error) {
	level, err := logrus.ParseLevel(konf.String("log.level"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	logrus.SetLevel(level)

	switch konf.String("log.format") {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, errors.Errorf("unsupported log format: %s", konf.String("log.format"))
	}

	var output io.Writer = os.Stdout
	if filename := konf.String("log.file"); filename != "" {
		output = &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    konf.Int("log.max_size"), // megabytes
			MaxBackups: konf.Int("log.max_backups"),
			MaxAge:     konf.Int("log.max_age"), // days
		}
	}
	logrus.SetOutput(output)

	return output, nil
}
