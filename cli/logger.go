package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/logging"
)

// GetLogger returns the structured logger for a command. With --json the
// log lines are JSON as well, so they can be collected next to the output.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	entry := logging.NewLogger("cli").WithField("command", cmd.Name())
	if GetOptions(cmd).JSONOutput {
		logging.SetFormatter(&logrus.JSONFormatter{})
	}
	return entry
}
