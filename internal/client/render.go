package client

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MKhiriev/rent-pe-easy/models"
)

func renderProperties(out io.Writer, properties []models.Property) error {
	if len(properties) == 0 {
		_, err := fmt.Fprintln(out, "No properties found")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tCITY\tPRICE\tFEATURED")
	for _, p := range properties {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Type, p.City, formatPrice(p), yesNo(p.IsFeatured))
	}

	return tw.Flush()
}

func renderProperty(out io.Writer, p models.Property) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", label, value)
		}
	}

	row("ID", p.ID.String())
	row("Title", p.Title)
	row("Type", string(p.Type))
	row("Location", strings.Trim(p.Locality+", "+p.City, ", "))
	row("Price", formatPrice(p))
	row("Beds", optionalInt(p.Beds))
	row("Baths", optionalInt(p.Baths))
	row("Area (sq ft)", optionalInt(p.SquareFeet))
	row("Featured", yesNo(p.IsFeatured))
	row("Verified", yesNo(p.IsVerified))
	row("Amenities", strings.Join(p.Amenities, ", "))
	row("Owner", p.OwnerName)
	row("Contact", optionalString(p.ContactNumber))
	row("Status", optionalString(p.Status))
	row("Description", optionalString(p.Description))

	return tw.Flush()
}

func formatPrice(p models.Property) string {
	price := p.Price.StringFixed(2)
	if unit := optionalString(p.PriceUnit); unit != "" {
		price += " " + unit
	}
	return price
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprint(*n)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
