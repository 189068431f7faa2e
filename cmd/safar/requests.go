package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/safarshare/safar/internal/cli"
	"github.com/safarshare/safar/internal/flow"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/storage"
	"github.com/safarshare/safar/internal/validate"
)

var requestShorts = map[string]string{
	flow.NameParcel:   "Send a parcel with a traveler on your route",
	flow.NameDocument: "Send documents with a verified carrier",
	flow.NameShopping: "Have a personal shopper buy and deliver items",
}

// mustFlow returns a registered flow. Command wiring only asks for the
// built-in names, so a miss is a programming error.
func mustFlow(name string) *flow.Definition {
	def, err := flow.Lookup(name)
	if err != nil {
		panic(err)
	}
	return def
}

func requestCmd(name string) *cobra.Command {
	def := mustFlow(name)
	cmd := &cobra.Command{
		Use:   name,
		Short: requestShorts[name],
	}
	cmd.AddCommand(wizardCmd("new", "Book a "+strings.ToLower(def.Title), def))
	cmd.AddCommand(quoteCmd(def))
	cmd.AddCommand(listCmd(def))
	return cmd
}

func quoteCmd(def *flow.Definition) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a " + strings.ToLower(def.Title) + " without booking it",
		Example: fmt.Sprintf("  safar %s quote --set pickupCity=Lahore --set deliveryCity=Karachi",
			def.Name),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !def.Priced() {
				return fmt.Errorf("%s requests are not priced", def.Name)
			}
			parsed, err := parseSets(sets)
			if err != nil {
				return err
			}
			values := validate.Values(parsed)
			for name, value := range def.Presets(values) {
				if values.Blank(name) {
					values[name] = value
				}
			}
			outln(cmd, cli.RenderBreakdown(def.Quote(values)))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as name=value (repeatable)")
	return cmd
}

func listCmd(def *flow.Definition) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved " + strings.ToLower(def.Title) + " records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return printRecords(ctx, cmd, a, def)
			})
		},
	}
}

func printRecords(ctx context.Context, cmd *cobra.Command, a *app, def *flow.Definition) error {
	order := storage.OldestFirst
	if def.NewestFirst {
		order = storage.NewestFirst
	}
	subs, err := a.store.List(ctx, def.Key, order)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		if def.Name == flow.NameContact {
			outln(cmd, cli.EmptyListMessage)
		} else {
			outln(cmd, cli.FormatInfo(fmt.Sprintf("No %s records yet.", strings.ToLower(def.Title))))
		}
		return nil
	}

	outln(cmd, cli.FormatTitle(fmt.Sprintf("%s (%d)", def.Title, len(subs))))
	for _, sub := range subs {
		outln(cmd, cli.RenderSubmission(sub))
		if line := summary(sub); line != "" {
			outln(cmd, "    "+cli.SubtleStyle.Render(line))
		}
	}
	return nil
}

// summary is the one-line gist of a stored record.
func summary(sub model.Submission) string {
	switch sub.Flow {
	case flow.NameParcel:
		var r model.ParcelRequest
		if sub.DecodeFields(&r) == nil {
			return fmt.Sprintf("%s → %s, %s %.1fkg, %s", r.PickupCity, r.DeliveryCity, r.ParcelType, r.Weight, r.PickupDate)
		}
	case flow.NameDocument:
		var r model.DocumentRequest
		if sub.DecodeFields(&r) == nil {
			return fmt.Sprintf("%s → %s, %s (%s), %s", r.PickupCity, r.DeliveryCity, r.DocumentType, r.SecurityLevel, r.PickupDate)
		}
	case flow.NameShopping:
		var r model.ShoppingRequest
		if sub.DecodeFields(&r) == nil {
			return fmt.Sprintf("%d × %s in %s, by %s", r.Quantity, r.ItemDescription, r.ShoppingCity, r.DeliveryDate)
		}
	case flow.NameCommute:
		var r model.CommuteSchedule
		if sub.DecodeFields(&r) == nil {
			return fmt.Sprintf("%s: %s → %s at %s, %d seats", r.ScheduleName, r.PickupPoint, r.DropPoint, r.StartTime, r.AvailableSeats)
		}
	case flow.NameJourney:
		var r model.JourneyPost
		if sub.DecodeFields(&r) == nil {
			return fmt.Sprintf("%s → %s on %s %s, %s", r.From, r.To, r.Date, r.Time, strings.Join(r.Services, ", "))
		}
	case flow.NameContact:
		var r model.ContactMessage
		if sub.DecodeFields(&r) == nil {
			return fmt.Sprintf("%s from %s (%s)", r.Subject, r.FullName, r.ContactInfo)
		}
	}
	return ""
}
