package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/rooms"
	"github.com/imtaco/interview-lobby/rooms/schedule"
)

const verifyParallelism = 4

type scheduleFlags struct {
	date string
	time string
}

func (f *scheduleFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "start date in IST, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.time, "time", "", "start time in IST, HH:MM")
}

func (c *cli) checkSchedule(f *scheduleFlags) error {
	if err := c.validate.Var(f.date, "omitempty,isodate"); err != nil {
		return schedule.InvalidDateTime()
	}
	if err := c.validate.Var(f.time, "omitempty,clocktime"); err != nil {
		return schedule.InvalidDateTime()
	}
	return nil
}

func (c *cli) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify ROOM...",
		Short: "Check that rooms exist and print their join URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := make([]*rooms.JoinTarget, len(args))
			failures := make([]error, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(verifyParallelism)
			for i, raw := range args {
				g.Go(func() error {
					targets[i], failures[i] = c.flows.VerifyRoom(ctx, raw)
					return nil
				})
			}
			_ = g.Wait()

			failed := 0
			out := cmd.OutOrStdout()
			for i, raw := range args {
				if failures[i] != nil {
					failed++
					fmt.Fprintf(out, "%s\t%v\n", raw, failures[i])
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", targets[i].Name, targets[i].URL)
			}
			if failed > 0 {
				return errors.Newf(rooms.ErrNotFound, "%d of %d rooms could not be verified", failed, len(args))
			}
			return nil
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	var upcoming bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.dir.List(cmd.Context())
			if err != nil {
				return err
			}
			now := c.clock.Now()
			if upcoming {
				kept := list[:0]
				for _, r := range list {
					if r.ScheduledAfter(now) {
						kept = append(kept, r)
					}
				}
				list = kept
			}
			return printRooms(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "only rooms scheduled to start in the future")
	return cmd
}

func printRooms(w io.Writer, list []*rooms.RoomRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTARTS\tURL")
	for _, r := range list {
		starts := "-"
		if r.NotBefore != nil {
			starts = schedule.FormatIST(*r.NotBefore)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, starts, r.URL)
	}
	return tw.Flush()
}

func (c *cli) createCmd() *cobra.Command {
	var sf scheduleFlags
	cmd := &cobra.Command{
		Use:   "create ROOM",
		Short: "Create a room, optionally scheduled to open at a date and time (IST)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.checkSchedule(&sf); err != nil {
				return err
			}
			return c.runFlow(cmd, rooms.FlowCreate, "", &rooms.DetailInput{
				RoomName: args[0],
				Date:     sf.date,
				Time:     sf.time,
			})
		},
	}
	sf.bind(cmd)
	return cmd
}

func (c *cli) rescheduleCmd() *cobra.Command {
	var sf scheduleFlags
	cmd := &cobra.Command{
		Use:   "reschedule ROOM",
		Short: "Move an upcoming room to a new date and time (IST)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.checkSchedule(&sf); err != nil {
				return err
			}
			return c.runFlow(cmd, rooms.FlowReschedule, "", &rooms.DetailInput{
				Room: args[0],
				Date: sf.date,
				Time: sf.time,
			})
		},
	}
	sf.bind(cmd)
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	var confirm string
	cmd := &cobra.Command{
		Use:   "delete ROOM",
		Short: "Delete a room; --confirm must repeat the room name exactly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFlow(cmd, rooms.FlowManage, rooms.ActionDelete, &rooms.DetailInput{
				Room:        args[0],
				ConfirmName: confirm,
			})
		},
	}
	cmd.Flags().StringVar(&confirm, "confirm", "", "room name, typed again")
	return cmd
}

// runFlow drives one lifecycle flow from password to completion.
func (c *cli) runFlow(cmd *cobra.Command, kind rooms.FlowKind, action rooms.Action, in *rooms.DetailInput) error {
	ctx := cmd.Context()

	state, err := c.flows.OpenFlow(ctx, kind)
	if err != nil {
		return err
	}
	id := state.ID
	defer func() { _ = c.flows.CloseFlow(context.WithoutCancel(ctx), id) }()

	if state, err = c.flows.SubmitPassword(ctx, id, c.password); err != nil {
		return err
	}
	if action != "" {
		if state, err = c.flows.ChooseAction(ctx, id, action); err != nil {
			return err
		}
	}
	if state.FetchingRooms {
		if state, err = c.flows.AwaitRooms(ctx, id); err != nil {
			return err
		}
	}
	if state.Notice != nil {
		return rooms.NewFlowError(rooms.ErrProvider, state.Notice.Title, state.Notice.Message)
	}

	result, err := c.flows.SubmitDetails(ctx, id, in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", result.Title, result.Message)
	if result.RoomURL != "" {
		fmt.Fprintln(out, result.RoomURL)
	}
	return nil
}
