package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pharmavault/backend/internal/adapters/catalog"
	"github.com/pharmavault/backend/internal/application/services"
	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/triage"
	"github.com/pharmavault/backend/internal/vitals"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pharmavault",
		Short:        "Run the PharmaVault analysis engines against the bundled catalog",
		SilenceUsage: true,
	}

	root.AddCommand(vitalsCmd())
	root.AddCommand(triageCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(verifyCmd())
	root.AddCommand(prescriptionCmd())
	return root
}

// inputText joins args, or reads stdin when there are none.
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no input: pass text as arguments or on stdin")
	}
	return text, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func vitalsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "vitals [text]",
		Short: "Parse and classify vital signs from free text",
		Example: `  pharmavault vitals "BP 150/95, HR 110, temp 38.5C"
  echo "SpO2 91%" | pharmavault vitals --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			if asJSON {
				v := vitals.Parse(text)
				return printJSON(cmd, map[string]any{"vitals": v, "analysis": vitals.Analyze(v)})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), vitals.GenerateResponse(text))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print parsed readings and analysis as JSON")
	return cmd
}

func triageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "triage [text]",
		Short: "Answer a symptom question from the triage tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), triage.GenerateMedicalResponse(text))
			return err
		},
	}
}

func compareCmd() *cobra.Command {
	var price, effectiveness, sideEffects, availability, alternatives, asJSON bool
	cmd := &cobra.Command{
		Use:   "compare <medicine-id> <medicine-id>...",
		Short: "Score catalog medicines against each other",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria := entities.ComparisonCriteria{
				Price:         price,
				Effectiveness: effectiveness,
				SideEffects:   sideEffects,
				Availability:  availability,
				Alternatives:  alternatives,
			}
			if !cmd.Flags().Changed("price") && !cmd.Flags().Changed("effectiveness") &&
				!cmd.Flags().Changed("side-effects") && !cmd.Flags().Changed("availability") &&
				!cmd.Flags().Changed("alternatives") {
				criteria = entities.AllCriteria()
			}

			service := services.NewComparisonService(catalog.NewSeededMemoryAdapter())
			result, err := service.CompareMedicines(cmd.Context(), args, criteria)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd, result)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), services.GenerateComparisonReport(result))
			return err
		},
	}
	cmd.Flags().BoolVar(&price, "price", false, "score by price")
	cmd.Flags().BoolVar(&effectiveness, "effectiveness", false, "score by effectiveness")
	cmd.Flags().BoolVar(&sideEffects, "side-effects", false, "score by side effect count")
	cmd.Flags().BoolVar(&availability, "availability", false, "score by pharmacy stock")
	cmd.Flags().BoolVar(&alternatives, "alternatives", false, "attach catalog alternatives")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func verifyCmd() *cobra.Command {
	var mfg, expiry string
	cmd := &cobra.Command{
		Use:   "verify <medicine-id> <batch-number>",
		Short: "Run the simulated batch authenticity check",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := services.NewAuthenticityService(catalog.NewSeededMemoryAdapter())
			check, err := service.VerifyMedicine(cmd.Context(), services.VerifyRequest{
				MedicineID:        args[0],
				BatchNumber:       args[1],
				ManufacturingDate: mfg,
				ExpiryDate:        expiry,
			})
			if err != nil {
				return err
			}
			recall, err := service.CheckRecallStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), services.GenerateAuthenticityReport(check, &recall))
			return err
		},
	}
	cmd.Flags().StringVar(&mfg, "manufacturing-date", "", "override the catalog manufacturing date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&expiry, "expiry-date", "", "override the catalog expiry date (YYYY-MM-DD)")
	return cmd
}

func prescriptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prescription [text]",
		Short: "Extract a prescription from OCR text and review it",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			service := services.NewPrescriptionService(catalog.NewSeededMemoryAdapter())
			p, err := service.ExtractFromText(cmd.Context(), text)
			if err != nil {
				return err
			}
			analysis, err := service.AnalyzePrescription(cmd.Context(), p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), services.GeneratePrescriptionReport(analysis))
			return err
		},
	}
}
