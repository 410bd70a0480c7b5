package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/app"
)

// runApp loads the bank and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(app.Options{
		Store:  rt.store,
		Config: rt.cfg,
		Logger: rt.logger,
	})
}
