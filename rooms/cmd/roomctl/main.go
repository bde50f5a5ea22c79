package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imtaco/interview-lobby/internal/config"
	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/internal/validation"
	"github.com/imtaco/interview-lobby/rooms"
	"github.com/imtaco/interview-lobby/rooms/directory"
	"github.com/imtaco/interview-lobby/rooms/roomname"
	"github.com/imtaco/interview-lobby/rooms/service"
)

type Config struct {
	App   config.App       `mapstructure:"app"`
	Daily directory.Config `mapstructure:"daily"`
	Admin service.Config   `mapstructure:"admin"`
}

// cli holds what the commands run against. Tests fill flows and dir
// directly; otherwise they are built from configuration before the first
// command runs.
type cli struct {
	flows    rooms.FlowService
	dir      rooms.Directory
	clock    clockwork.Clock
	validate *validator.Validate

	password string
	verbose  bool
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "roomctl",
		Short:         "Manage interview rooms on the video provider",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if c.clock == nil {
				c.clock = clockwork.NewRealClock()
			}
			if c.validate == nil {
				c.validate = validator.New()
				if err := validation.Register(c.validate); err != nil {
					return err
				}
			}
			if c.flows != nil {
				return nil
			}
			return c.wire()
		},
	}

	root.PersistentFlags().StringVar(&c.password, "password", os.Getenv("ROOMCTL_PASSWORD"),
		"admin password (default from ROOMCTL_PASSWORD)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log to stdout")

	root.AddCommand(
		c.verifyCmd(),
		c.listCmd(),
		c.createCmd(),
		c.rescheduleCmd(),
		c.deleteCmd(),
	)
	return root
}

func (c *cli) wire() error {
	cfg, err := config.Load(&Config{}, os.Getenv("CONFIG_FILE"), func(v *viper.Viper) {
		config.Setup(v, "app")
		directory.Setup(v, "daily")
		service.Setup(v, "admin")
	})
	if err != nil {
		return err
	}

	logger := log.NewNop()
	if c.verbose {
		if logger, err = log.NewLogger(cfg.App.LogConfigFile); err != nil {
			return err
		}
	}

	codec, err := roomname.NewCodec(cfg.Daily.RoomBaseURL)
	if err != nil {
		return err
	}
	c.dir = directory.New(&cfg.Daily, codec, c.clock, logger.Module("Directory"))
	c.flows = service.NewFlowService(&cfg.Admin, c.dir, codec, c.clock, logger.Module("FlowSvc"))
	return nil
}

func main() {
	root := newRootCmd(&cli{})
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
