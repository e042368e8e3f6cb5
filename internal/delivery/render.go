package delivery

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// RenderEstimate writes the result block of the delivery page.
func RenderEstimate(w io.Writer, est *Estimate) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Vehicle:\t%s\n", est.Vehicle.Title)
	fmt.Fprintf(tw, "Distance:\t%.1f km\n", est.DistanceKm)
	fmt.Fprintf(tw, "Capacity:\tup to %s t\n", strconv.FormatFloat(est.Vehicle.CapacityTons, 'f', -1, 64))
	if est.InCity && est.Price != nil {
		fmt.Fprintf(tw, "Region:\tSaint Petersburg\n")
		fmt.Fprintf(tw, "Price:\t%d ₽\n", *est.Price)
		fmt.Fprintf(tw, "Note:\tthe final price may differ\n")
	} else {
		fmt.Fprintf(tw, "Region:\toutside Saint Petersburg\n")
		fmt.Fprintf(tw, "Price:\task a manager\n")
		fmt.Fprintf(tw, "Note:\tcontact us for delivery outside the city\n")
	}
	return tw.Flush()
}

// RenderFleet lists the vehicles with their position for selection.
func RenderFleet(w io.Writer, fleet []VehicleProfile) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tVEHICLE\tCAPACITY\tBASE PRICE")
	for i, v := range fleet {
		fmt.Fprintf(tw, "%d\t%s\t%s t\t%s ₽\n", i+1, v.Title, strconv.FormatFloat(v.CapacityTons, 'f', -1, 64), strconv.FormatFloat(v.BasePrice, 'f', -1, 64))
	}
	return tw.Flush()
}
