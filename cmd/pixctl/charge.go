package main

import (
	"fmt"
	"pix_checkout/internal/domain/entities"

	"github.com/spf13/cobra"
)

func chargeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charge",
		Short: "Create a Pix charge",
		Example: `  pixctl charge --amount 3.50
  pixctl charge --amount 47 --watch --idempotency-key order-42`,
		Args: cobra.NoArgs,
		RunE: runCharge,
	}

	cmd.Flags().Float64P("amount", "a", 0, "Amount in major units (e.g. 3.50)")
	cmd.Flags().StringP("idempotency-key", "k", "", "Replay key; needs a shared IDEMPOTENCY_STORE")
	cmd.Flags().BoolP("watch", "w", false, "Poll the charge until it is paid, expired or failed")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runCharge(cmd *cobra.Command, _ []string) error {
	amount, _ := cmd.Flags().GetFloat64("amount")
	key, _ := cmd.Flags().GetString("idempotency-key")
	watch, _ := cmd.Flags().GetBool("watch")
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, err := loadServices(cmd)
	if err != nil {
		return err
	}
	defer svc.close()

	charge, err := svc.charges.RequestIdempotentCharge(cmd.Context(), key, amount)
	if err != nil {
		return err
	}
	if err := printCharge(cmd, charge, asJSON); err != nil {
		return err
	}

	if !watch {
		return nil
	}
	return watchCharge(cmd, svc, charge, asJSON)
}

func printCharge(cmd *cobra.Command, charge entities.Charge, asJSON bool) error {
	if asJSON {
		return printJSON(cmd, charge)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Transaction: %s\n", charge.TransactionID)
	fmt.Fprintf(out, "Amount:      R$ %s\n", charge.Amount.StringFixed(2))
	fmt.Fprintf(out, "Status:      %s\n", charge.Status)
	if charge.PaymentURL != "" {
		fmt.Fprintf(out, "Payment URL: %s\n", charge.PaymentURL)
	}
	fmt.Fprintf(out, "\nPix copy-and-paste code:\n%s\n", charge.QRCodeText)
	return nil
}
