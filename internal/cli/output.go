package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bookstore/services/storefront/internal/cart"
	"github.com/bookstore/services/storefront/internal/catalog"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeBooks(w io.Writer, books []catalog.Book) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tGENRE\tPUBLISHED\tRATING\tREVIEWS\tPRICE")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f\t%d\t%.2f\n",
			b.ID, b.Title, b.Author,
			strings.Join(b.Genres, ","),
			b.DatePublished.Format("2006-01-02"),
			b.DisplayRating(), b.ReviewCount, b.Price,
		)
	}
	return tw.Flush()
}

func writeResult(w io.Writer, r catalog.Result) error {
	if r.NoMatches {
		_, err := fmt.Fprintln(w, "No books match the current search and genre.")
		return err
	}
	if err := writeBooks(w, r.Books); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nPage %d of %d (%d books)\n", r.Page, r.TotalPages, r.Total)
	return err
}

func writeCarousel(w io.Writer, v catalog.CarouselView) error {
	if v.TotalPages == 0 {
		_, err := fmt.Fprintln(w, "No featured books.")
		return err
	}
	if err := writeBooks(w, v.Books); err != nil {
		return err
	}
	if !v.ShowNavigation {
		return nil
	}
	_, err := fmt.Fprintf(w, "\n%s\n", dots(v.Page, v.TotalPages))
	return err
}

// dots renders the carousel page indicator, the active page filled
func dots(active, total int) string {
	var sb strings.Builder
	for i := 0; i < total; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i == active {
			sb.WriteString("●")
		} else {
			sb.WriteString("○")
		}
	}
	return sb.String()
}

func writeSummary(w io.Writer, s cart.Summary) error {
	if len(s.Lines) == 0 {
		_, err := fmt.Fprintln(w, "Your cart is empty.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tQTY\tSUBTOTAL")
	for _, line := range s.Lines {
		title := "(no longer in catalog)"
		if line.Book != nil {
			title = line.Book.Title
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\n", line.BookID, title, line.Quantity, line.Subtotal)
	}
	fmt.Fprintf(tw, "\t\t%d\t%.2f\n", s.TotalItemCount, s.Subtotal)
	return tw.Flush()
}
