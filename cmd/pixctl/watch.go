package main

import (
	"fmt"
	"pix_checkout/internal/domain/entities"
	"time"

	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [transaction-id]",
		Short: "Poll a pending charge until it is paid, expired or failed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			svc, err := loadServices(cmd)
			if err != nil {
				return err
			}
			defer svc.close()

			return watchCharge(cmd, svc, entities.PendingCharge(args[0]), asJSON)
		},
	}
}

// watchCharge blocks until the session ends. Ctrl-C cancels it through the
// command context.
func watchCharge(cmd *cobra.Command, svc *services, charge entities.Charge, asJSON bool) error {
	out := cmd.OutOrStdout()

	session, err := svc.poller.StartPolling(cmd.Context(), charge,
		func(s entities.ChargeStatus) {
			if !asJSON {
				fmt.Fprintf(out, "%s status=%s\n", time.Now().Format(time.TimeOnly), s)
			}
		},
		func(err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s status check failed: %v\n", time.Now().Format(time.TimeOnly), err)
		},
	)
	if err != nil {
		return err
	}
	if !asJSON {
		fmt.Fprintf(out, "Watching %s every %s...\n", charge.TransactionID, svc.cfg.Polling.Interval)
	}

	<-session.Done()
	snap := session.Snapshot()

	if asJSON {
		if err := printJSON(cmd, snap); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Session ended: state=%s status=%s\n", snap.State, snap.Status)
	}

	if snap.State != entities.PollingStateConfirmed {
		if err := session.Err(); err != nil {
			return err
		}
		return fmt.Errorf("charge %s was not paid (state %s)", charge.TransactionID, snap.State)
	}
	return nil
}
