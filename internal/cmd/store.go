package cmd

import (
	"github.com/filmdesk/filmdesk"
)

// openDesk creates a Filmdesk instance from the loaded configuration.
// This handles the common pattern of config.Load() -> filmdesk.New().
func openDesk() (filmdesk.Filmdesk, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	return filmdesk.New(
		filmdesk.WithDataDir(cfg.DataDir),
		filmdesk.WithRecommender(cfg.RecommenderPath, "", ""),
		filmdesk.WithRecommenderTimeout(cfg.RecommenderTimeout),
	)
}
