// Command demo seeds the demo fleet, books two rooms and prints the rooms,
// bookings and users reports to stdout.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/warp/hotel-engine/hotel"
	"github.com/warp/hotel-engine/store/memory"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := run(context.Background(), os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, "demo failed:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, logger *slog.Logger) error {
	opts := []hotel.Option{hotel.WithLogger(logger)}

	ledger, err := hotel.NewBookingLedger(ctx, memory.NewMemory(), opts...)
	if err != nil {
		return err
	}
	rooms := hotel.NewRoomStore(opts...)
	users := hotel.NewUserStore(opts...)
	svc := hotel.NewReservationService(rooms, users, ledger, opts...)

	sc, _ := hotel.FindScenario("demo-run")
	if err := sc.Load(ctx, svc); err != nil {
		// A rejected booking is part of the story, not a reason to stop.
		fmt.Fprintln(out, "Booking failed:", err)
	}

	report, err := hotel.NewReporter(rooms, users, ledger, opts...).Build(ctx)
	if err != nil {
		return err
	}
	printReport(out, report)
	return nil
}

func printReport(out io.Writer, report hotel.Report) {
	balances := make(map[int]int, len(report.Users))
	for _, u := range report.Users {
		balances[u.ID] = u.Balance
	}

	section(out, "ROOMS (Latest to Oldest)", func(w *tabwriter.Writer) {
		for _, r := range report.Rooms {
			fmt.Fprintf(w, "Room %d\t| Type: %s\t| Price/night: %d\t| Created: %s\n",
				r.Number, r.Type, r.PricePerNight, stamp(r.CreatedAt))
		}
	})

	section(out, "BOOKINGS (Latest to Oldest)", func(w *tabwriter.Writer) {
		for _, b := range report.Bookings {
			fmt.Fprintf(w, "Booking #%d\t| User: %d (Balance: %d)\t| Room: %d (%s, %d/night)\t| %s to %s (%d nights)\t| Total: %d\t| Created: %s\n",
				b.ID, b.UserID, balances[b.UserID], b.RoomNumber, b.RoomType, b.PricePerNight,
				b.CheckIn, b.CheckOut, b.NumberOfNights, b.TotalCost, stamp(b.CreatedAt))
		}
	})

	section(out, "USERS (Latest to Oldest)", func(w *tabwriter.Writer) {
		for _, u := range report.Users {
			fmt.Fprintf(w, "User %d\t| Balance: %d\t| Created: %s\n", u.ID, u.Balance, stamp(u.CreatedAt))
		}
	})

	s := report.Summary
	fmt.Fprintf(out, "%d bookings, %d nights, revenue %d, average nightly rate %s\n",
		s.BookingCount, s.TotalNights, s.TotalRevenue, s.AverageNightlyRate.StringFixed(2))
}

func section(out io.Writer, title string, rows func(w *tabwriter.Writer)) {
	separator := strings.Repeat("=", 80)
	fmt.Fprintf(out, "\n%s\n%s\n%s\n", separator, title, separator)
	w := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)
	rows(w)
	w.Flush()
	fmt.Fprintf(out, "%s\n\n", separator)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}
