package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BruksfildServices01/receptionist/internal/calendar"
	dbpkg "github.com/BruksfildServices01/receptionist/internal/db"
	infraRepo "github.com/BruksfildServices01/receptionist/internal/infra/repository"
	"github.com/BruksfildServices01/receptionist/internal/lock"
	ucAppointment "github.com/BruksfildServices01/receptionist/internal/usecase/appointment"
)

// NewSlotsCmd prints the free start times for a day, the same answer the
// availability endpoint gives.
func NewSlotsCmd(v *viper.Viper) *cobra.Command {
	var date, service string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List free slots for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(v)

			cal, err := calendar.Load(cfg.BusinessConfig)
			if err != nil {
				return err
			}
			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}

			repo := infraRepo.NewAppointmentGormRepository(db, lock.NewLocal())
			uc := ucAppointment.NewGetAvailability(
				repo,
				calendar.NewHolder(cal, cfg.BusinessConfig),
				cfg.DefaultDurationMin,
				nil,
				nil,
			)

			res, err := uc.Execute(cmd.Context(), ucAppointment.GetAvailabilityInput{
				Date:    date,
				Service: service,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Closed {
				fmt.Fprintf(out, "%s (%s): closed\n", res.Date, res.Weekday)
				return nil
			}
			fmt.Fprintf(out, "%s (%s) %s-%s, %d min\n", res.Date, res.Weekday, res.Open, res.Close, res.Duration)
			if len(res.Slots) == 0 {
				fmt.Fprintln(out, "no free slots")
				return nil
			}
			fmt.Fprintln(out, strings.Join(res.Slots, " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to check, YYYY-MM-DD")
	cmd.Flags().StringVar(&service, "service", "", "service name; default duration when empty")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
