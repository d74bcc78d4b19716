package main

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging sets the global logrus level, format and output
func ConfigureLogging(level, format string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)

	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if out != nil {
		log.SetOutput(out)
	}
	return nil
}
