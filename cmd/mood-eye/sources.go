package main

import (
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/lixenwraith/mood-eye/command"
	"github.com/lixenwraith/mood-eye/config"
)

func interpreter(cfg *config.Settings) command.Interpreter {
	return command.Interpreter{Prefix: cfg.Command.Prefix}
}

// openSources starts every configured command source; the returned closer stops them all
func openSources(cfg *config.Settings, logger *zap.SugaredLogger) (command.Source, func(), error) {
	var (
		sources []command.Source
		closers []io.Closer
	)
	closeAll := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				logger.Warnw("close command source", "error", err)
			}
		}
	}

	if cfg.Command.Serial != "" {
		s, err := command.OpenSerial(cfg.Command.Serial, cfg.Command.Baud, logger)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sources = append(sources, s)
		closers = append(closers, lineCloser{name: "serial", src: s, logger: logger})
	}

	if cfg.Command.MoodFile != "" {
		f, err := command.WatchFile(cfg.Command.MoodFile, logger)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		logger.Infow("watching mood file", "path", cfg.Command.MoodFile)
		sources = append(sources, f)
		closers = append(closers, f)
	}

	if cfg.Command.Stdin {
		s := command.NewLineSource(os.Stdin, nil, logger)
		sources = append(sources, s)
		closers = append(closers, lineCloser{name: "stdin", src: s, logger: logger})
	}

	if cfg.Schedule.Enabled {
		moods, err := command.ParseMoods(cfg.Schedule.Moods)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		s, err := command.NewSchedule(clock.New(), cfg.Schedule.Period, moods)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		logger.Infow("mood schedule enabled", "period", cfg.Schedule.Period, "moods", cfg.Schedule.Moods)
		sources = append(sources, s)
	}

	return command.Multi(sources), closeAll, nil
}

// lineCloser closes a line source and reports how its reader ended
type lineCloser struct {
	name   string
	src    *command.LineSource
	logger *zap.SugaredLogger
}

func (c lineCloser) Close() error {
	switch err := c.src.Err(); {
	case err == nil:
	case err == io.EOF:
		c.logger.Infow("command source ended early", "source", c.name)
	default:
		c.logger.Warnw("command source failed", "source", c.name, "error", err)
	}
	return c.src.Close()
}
