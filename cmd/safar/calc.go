package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/safarshare/safar/internal/cli"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/pricing"
)

func calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Savings calculators",
	}
	cmd.AddCommand(commuteSavingsCmd())
	cmd.AddCommand(tripShareCmd())
	return cmd
}

func money(amount int64) string {
	return model.FormatAmount(pricing.CurrencyPKR, amount)
}

func commuteSavingsCmd() *cobra.Command {
	var in pricing.CommuteSavingsInput
	cmd := &cobra.Command{
		Use:   "commute-savings",
		Short: "Monthly savings from sharing a commute with four people",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			s := pricing.Commute(in)
			var sb strings.Builder
			fmt.Fprintf(&sb, "Driving alone:  %s / month\n", money(s.MonthlyCost))
			fmt.Fprintf(&sb, "Sharing:        %s / month\n", cli.PriceStyle.Render(money(s.SharedCost)))
			sb.WriteString(cli.SuccessStyle.Render(fmt.Sprintf("You save %s (%d%%)", money(s.Savings), s.Percent)))
			outln(cmd, cli.RenderBox("Commute savings", sb.String()))
		},
	}
	cmd.Flags().Float64Var(&in.DailyDistance, "distance", pricing.DefaultDailyDistance, "daily distance in km")
	cmd.Flags().Float64Var(&in.VehicleMileage, "mileage", pricing.DefaultVehicleMileage, "vehicle mileage in km per litre")
	cmd.Flags().Float64Var(&in.FuelRate, "fuel-rate", pricing.DefaultFuelRate, "fuel price per litre")
	cmd.Flags().Float64Var(&in.WorkingDays, "days", pricing.DefaultWorkingDays, "working days per month")
	return cmd
}

func tripShareCmd() *cobra.Command {
	var in pricing.TripShareInput
	cmd := &cobra.Command{
		Use:   "trip-share",
		Short: "Split the cost of a carpool trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := pricing.Trip(in)
			if err != nil {
				return err
			}
			var sb strings.Builder
			fmt.Fprintf(&sb, "Fuel:             %s\n", money(t.FuelCost))
			fmt.Fprintf(&sb, "Tolls and wear:   %s\n", money(t.ExtraCost))
			fmt.Fprintf(&sb, "Trip total:       %s\n", money(t.TotalCost))
			fmt.Fprintf(&sb, "Per person:       %s\n", cli.PriceStyle.Render(money(t.PerPerson)))
			sb.WriteString(cli.SuccessStyle.Render(fmt.Sprintf("Each saves %s, the group saves %s",
				money(t.SavingsPerPerson), money(t.GroupSavings))))
			outln(cmd, cli.RenderBox("Trip share", sb.String()))
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.Distance, "distance", 0, "trip distance in km")
	cmd.Flags().Float64Var(&in.FuelEfficiency, "efficiency", 0, "fuel efficiency in km per litre")
	cmd.Flags().Float64Var(&in.FuelPrice, "fuel-price", 0, "fuel price per litre")
	cmd.Flags().IntVar(&in.Passengers, "passengers", 0, "people sharing the trip, including the driver")
	return cmd
}
