package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	facilityService "campus/internal/domains/facility/service"
	reservationDto "campus/internal/domains/reservation/model/dto"
	reservationService "campus/internal/domains/reservation/service"
	userDto "campus/internal/domains/user/model/dto"
	userService "campus/internal/domains/user/service"
	"campus/internal/session"
	"campus/shared/constant"
)

var ErrUsage = errors.New("invalid arguments")

// App is the terminal front end. Every command maps onto one service
// operation and prints its outcome; the services own all reservation
// and session rules.
type App struct {
	session      session.Provider
	users        userService.Auth
	facilities   facilityService.Facility
	reservations reservationService.Reservation
	out          io.Writer
}

func New(
	sessionProvider session.Provider,
	users userService.Auth,
	facilities facilityService.Facility,
	reservations reservationService.Reservation,
	out io.Writer,
) *App {
	return &App{
		session:      sessionProvider,
		users:        users,
		facilities:   facilities,
		reservations: reservations,
		out:          out,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()

		return ErrUsage
	}

	command, rest := args[0], args[1:]

	switch command {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "register":
		return a.register(ctx, rest)
	case "whoami":
		return a.whoami(ctx)
	case "facilities":
		return a.listFacilities(ctx)
	case "facility":
		return a.showFacility(ctx, rest)
	case "grid":
		return a.showGrid(ctx, rest)
	case "reserve":
		return a.reserve(ctx, rest)
	case "extend":
		return a.extend(ctx, rest)
	case "cancel":
		return a.cancel(ctx, rest)
	case "my":
		return a.myReservations(ctx)
	default:
		a.usage()

		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, strings.TrimSpace(`
usage: campus <command> [arguments]

  login <userId> <password>            sign in and store the session
  logout                               drop the stored session
  register <userId> <password> <name> [phone]
  whoami                               show the signed-in user id
  facilities                           list reservable facilities
  facility <facilityId>                show one facility's details
  grid <facilityId>                    render the occupancy grid
  reserve <facilityId> <label> [HH:00] reserve a seat or a room slot
  extend <reservationId>               extend an active reservation
  cancel <reservationId> [facilityId]  cancel a reservation
  my                                   list my reservations
`))
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: login <userId> <password>", ErrUsage)
	}

	user, err := a.users.Login(ctx, userDto.LoginRequest{UserID: args[0], Password: args[1]})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "signed in as %s (%s)\n", user.Name, user.UserID)

	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.users.Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "signed out")

	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("%w: register <userId> <password> <name> [phone]", ErrUsage)
	}

	req := userDto.RegisterRequest{UserID: args[0], Password: args[1], Name: args[2]}
	if len(args) == 4 {
		req.PhoneNumber = args[3]
	}

	user, err := a.users.Register(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "registered %s (%s)\n", user.Name, user.UserID)

	return nil
}

func (a *App) whoami(_ context.Context) error {
	userID := a.session.UserID()
	if userID == constant.Empty {
		fmt.Fprintln(a.out, "not signed in")

		return nil
	}

	fmt.Fprintln(a.out, userID)

	return nil
}

func (a *App) listFacilities(ctx context.Context) error {
	facilities, err := a.facilities.List(ctx)
	if err != nil {
		return err
	}

	for _, facility := range facilities {
		fmt.Fprintf(a.out, "%-12s %-36s %s  %d/%d (%s)\n",
			facility.ID, facility.Name, facility.OperatingHours,
			facility.CurrentCount, facility.MaxCount, facility.CongestionLevel)
	}

	return nil
}

func (a *App) showFacility(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: facility <facilityId>", ErrUsage)
	}

	facility, err := a.facilities.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s)\n", facility.Name, facility.ID)
	fmt.Fprintf(a.out, "hours:      %s\n", facility.OperatingHours)
	fmt.Fprintf(a.out, "occupancy:  %d/%d (%s)\n", facility.CurrentCount, facility.MaxCount, facility.CongestionLevel)

	if facility.Address != constant.Empty {
		fmt.Fprintf(a.out, "address:    %s\n", facility.Address)
	}

	if facility.Notice != constant.Empty {
		fmt.Fprintf(a.out, "notice:     %s\n", facility.Notice)
	}

	if facility.Rules != constant.Empty {
		fmt.Fprintf(a.out, "rules:      %s\n", facility.Rules)
	}

	return nil
}

func (a *App) showGrid(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: grid <facilityId>", ErrUsage)
	}

	l, err := a.facilities.Layout(args[0])
	if err != nil {
		return err
	}

	index, err := a.reservations.Occupancy(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprint(a.out, renderGrid(l, index))
	fmt.Fprintf(a.out, "%d free / %d total\n", index.FreeCount(), l.Total())

	return nil
}

func (a *App) reserve(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: reserve <facilityId> <label> [HH:00]", ErrUsage)
	}

	sel := reservationDto.Selection{FacilityID: args[0], Label: args[1]}
	if len(args) == 3 {
		sel.Slot = args[2]
	}

	result, err := a.reservations.Reserve(ctx, sel)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, result.Notice)

	if result.State == reservationService.StateConflicted {
		l, layoutErr := a.facilities.Layout(sel.FacilityID)
		if layoutErr == nil {
			fmt.Fprint(a.out, renderGrid(l, result.Index))
		}
	}

	return nil
}

func (a *App) extend(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: extend <reservationId>", ErrUsage)
	}

	res, err := a.reservations.Extend(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "extended %s until %s\n", res.Label, res.TimeRange)

	return nil
}

func (a *App) cancel(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: cancel <reservationId> [facilityId]", ErrUsage)
	}

	facilityID := constant.Empty
	if len(args) == 2 {
		facilityID = args[1]
	}

	if err := a.reservations.Cancel(ctx, args[0], facilityID); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "reservation cancelled")

	return nil
}

func (a *App) myReservations(ctx context.Context) error {
	mine, err := a.reservations.Mine(ctx)
	if err != nil {
		return err
	}

	if mine.Active != nil {
		fmt.Fprintf(a.out, "active: %s %s %s %s\n",
			mine.Active.FacilityID, mine.Active.Label, mine.Active.Date, mine.Active.TimeRange)
	} else {
		fmt.Fprintln(a.out, "no active reservation")
	}

	for _, past := range mine.Past {
		fmt.Fprintf(a.out, "past:   %s %s %s %s (%s)\n",
			past.FacilityID, past.Label, past.Date, past.TimeRange, past.Status)
	}

	return nil
}
