package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	httpdelivery "github.com/maternalrisk/backend/internal/delivery/http"
)

func newScoreCmd(rt *runtime) *cobra.Command {
	var (
		age, systolicBP, heartRate         float64
		sleep, stress, hydration, activity float64
		state                              string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the composite maternal risk score for one case",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := httpdelivery.PredictRequest{
				Age:             &age,
				SystolicBP:      &systolicBP,
				HeartRate:       &heartRate,
				SleepHours:      &sleep,
				StressLevel:     &stress,
				Hydration:       &hydration,
				ActivityMinutes: &activity,
				State:           state,
			}
			assessment, err := req.Validate()
			if err != nil {
				return err
			}

			result, err := rt.riskSvc.Assess(cmd.Context(), assessment)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&age, "age", 0, "Age in years [15, 60]")
	flags.Float64Var(&systolicBP, "systolic-bp", 0, "Systolic blood pressure [80, 200]")
	flags.Float64Var(&heartRate, "heart-rate", 0, "Heart rate [40, 200]")
	flags.Float64Var(&sleep, "sleep", 8, "Sleep hours per night [0, 14]")
	flags.Float64Var(&stress, "stress", 5, "Stress level [1, 10]")
	flags.Float64Var(&hydration, "hydration", 2, "Water intake in liters per day [0.5, 4]")
	flags.Float64Var(&activity, "activity", 30, "Physical activity minutes per day [0, 300]")
	flags.StringVar(&state, "state", "", "NFHS state or union territory")
	for _, name := range []string{"age", "systolic-bp", "heart-rate", "state"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
