package command

import (
	commandHandler "pattamap/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(NewCommand, commandHandler.NewResetMissionsHandler)

type Command struct {
	resetMissionsHandler *commandHandler.ResetMissionsHandler
}

// NewCommand .
func NewCommand(
	resetMissionsHandler *commandHandler.ResetMissionsHandler,
) *Command {
	return &Command{
		resetMissionsHandler: resetMissionsHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "reset-missions [daily|weekly]",
			Short: "重置指定週期的任務進度",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				command, cleanup, err := newCmd()
				if err != nil {
					panic(err)
				}
				defer cleanup()

				return command.resetMissionsHandler.Reset(cmd, args)
			},
		},
	)
}
