package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/metalldk/storefront/internal/auth"
	"github.com/metalldk/storefront/internal/cartview"
	"github.com/metalldk/storefront/internal/checkout"
	"github.com/metalldk/storefront/internal/contact"
	"github.com/metalldk/storefront/internal/delivery"
	"github.com/metalldk/storefront/internal/feeds"
	"github.com/metalldk/storefront/pkg/enums"
	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/routing"
	"github.com/metalldk/storefront/pkg/storefront"
	"github.com/metalldk/storefront/pkg/types"
)

// errReported marks failures the user has already been told about.
type errReported struct{ error }

func (e errReported) Unwrap() error { return e.error }

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

const (
	usageCart           = "cart [-html]"
	usageAdd            = "add [-qty N] <product-id>"
	usageQty            = "qty <item-id> <N|+|->"
	usageRemove         = "remove <item-id>"
	usageClear          = "clear"
	usageCheckout       = "checkout"
	usageLogin          = "login [-id email|phone] [-password P] [-remember]"
	usageRegister       = "register -email E -phone P -password P"
	usageProfile        = "profile -email E -phone P [-first F] [-last L]"
	usageLogout         = "logout"
	usageWhoami         = "whoami"
	usageFeatured       = "featured [-watch]"
	usageNews           = "news [-year Y] [-id N]"
	usageSocial         = "social"
	usageVehicles       = "vehicles"
	usageDelivery       = "delivery -vehicle V -lat LAT -lng LNG"
	usageFeedback       = "feedback -name N -email E -message M [-attach a,b]"
	usageServiceRequest = "service-request -service S -name N -phone P [-email E]"
)

var commands = map[string]command{
	"cart":            {usageCart, cmdCart},
	"add":             {usageAdd, cmdAdd},
	"qty":             {usageQty, cmdQty},
	"remove":          {usageRemove, cmdRemove},
	"clear":           {usageClear, cmdClear},
	"checkout":        {usageCheckout, cmdCheckout},
	"login":           {usageLogin, cmdLogin},
	"register":        {usageRegister, cmdRegister},
	"profile":         {usageProfile, cmdProfile},
	"logout":          {usageLogout, cmdLogout},
	"whoami":          {usageWhoami, cmdWhoami},
	"featured":        {usageFeatured, cmdFeatured},
	"news":            {usageNews, cmdNews},
	"social":          {usageSocial, cmdSocial},
	"vehicles":        {usageVehicles, cmdVehicles},
	"delivery":        {usageDelivery, cmdDelivery},
	"feedback":        {usageFeedback, cmdFeedback},
	"service-request": {usageServiceRequest, cmdServiceRequest},
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "usage: storefront <command> [flags]")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

func newFlags(name, usage string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "usage: storefront %s\n", usage)
		fs.PrintDefaults()
	}
	return fs
}

func cmdCart(ctx context.Context, a *app, args []string) error {
	fs := newFlags("cart", usageCart, a.out)
	html := fs.Bool("html", false, "render the cart page markup")
	if err := fs.Parse(args); err != nil {
		return err
	}
	model := cartview.Project(a.cart.Read(ctx))
	if *html {
		return cartview.NewView(a.logg).Render(a.out, model)
	}
	return cartview.RenderText(a.out, model)
}

func cmdAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("add", usageAdd, a.out)
	qty := fs.Int("qty", 1, "quantity to add")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return flag.ErrHelp
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id must be numeric")
	}

	products, err := feeds.NewCatalogFeed(a.api, a.logg).Featured(ctx)
	if err != nil {
		return err
	}
	product, ok := feeds.FindProduct(products, id)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", id))
	}

	item := product.LineItem(*qty)
	if _, err := a.cart.AddItem(ctx, item); err != nil {
		return err
	}
	if err := a.api.AddServerCartItem(ctx, storefront.CartItem(item)); err != nil {
		a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "cart.server_mirror.failed")
	}
	a.term.Notify(ctx, "Added to cart: "+product.Name)
	return nil
}

func cmdQty(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		fmt.Fprintf(a.out, "usage: storefront %s\n", usageQty)
		return flag.ErrHelp
	}
	controls, err := cartview.NewControls(a.cart, a.term)
	if err != nil {
		return err
	}
	switch args[1] {
	case "+":
		_, err = controls.Increment(ctx, args[0])
	case "-":
		_, err = controls.Decrement(ctx, args[0])
	default:
		_, err = controls.SetQuantityInput(ctx, args[0], args[1])
	}
	return err
}

func cmdRemove(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		fmt.Fprintf(a.out, "usage: storefront %s\n", usageRemove)
		return flag.ErrHelp
	}
	controls, err := cartview.NewControls(a.cart, a.term)
	if err != nil {
		return err
	}
	_, err = controls.Remove(ctx, args[0])
	return err
}

func cmdClear(ctx context.Context, a *app, _ []string) error {
	return a.cart.Clear(ctx)
}

func cmdCheckout(ctx context.Context, a *app, _ []string) error {
	ctl, err := checkout.NewController(checkout.Deps{
		Store:     a.cart,
		Backend:   a.api,
		Confirmer: a.term,
		Notifier:  a.term,
		Logger:    a.logg,
		Metrics:   a.checkout,
	})
	if err != nil {
		return err
	}
	outcome, err := ctl.Submit(ctx)
	a.logg.Debug(a.logg.WithField(ctx, "outcome", outcome.String()), "checkout.finished")
	if err != nil && (outcome == enums.CheckoutOutcomeFailed || pkgerrors.IsCode(err, pkgerrors.CodeValidation)) {
		return errReported{err}
	}
	return err
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login", usageLogin, a.out)
	id := fs.String("id", "", "email or phone")
	password := fs.String("password", "", "password")
	remember := fs.Bool("remember", false, "remember the identifier on this device")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := auth.LoginForm{Identifier: *id, Password: *password, Remember: *remember}
	if form.Identifier == "" {
		prompt := "Email or phone: "
		prefill := a.auth.Prefill(ctx)
		if prefill != "" {
			prompt = fmt.Sprintf("Email or phone [%s]: ", prefill)
		}
		answer, err := a.term.Ask(ctx, prompt)
		if err != nil {
			return err
		}
		if answer == "" {
			answer = prefill
		}
		form.Identifier = answer
	}
	if form.Password == "" {
		answer, err := a.term.Ask(ctx, "Password: ")
		if err != nil {
			return err
		}
		form.Password = answer
	}

	if err := a.auth.Login(ctx, form); err != nil {
		return err
	}
	a.term.Notify(ctx, "Signed in")
	return nil
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register", usageRegister, a.out)
	email := fs.String("email", "", "email")
	phone := fs.String("phone", "", "phone, any format")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.auth.Register(ctx, auth.RegisterForm{
		Email:    *email,
		Phone:    auth.MaskPhone(*phone),
		Password: *password,
	}); err != nil {
		return err
	}
	a.term.Notify(ctx, "Registration complete. You can sign in now.")
	return nil
}

func cmdProfile(ctx context.Context, a *app, args []string) error {
	fs := newFlags("profile", usageProfile, a.out)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email")
	phone := fs.String("phone", "", "phone, any format")
	if err := fs.Parse(args); err != nil {
		return err
	}
	profile, err := a.auth.UpdateProfile(ctx, auth.ProfileForm{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Phone:     *phone,
	})
	if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		a.term.Notify(ctx, "Not signed in")
		return errReported{err}
	}
	if err != nil {
		return err
	}
	a.term.Notify(ctx, "Profile saved")
	fmt.Fprintf(a.out, "%s (%s)\n", profile.DisplayName(), profile.Initials())
	return nil
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	a.auth.Logout(ctx)
	a.term.Notify(ctx, "Signed out")
	return nil
}

func cmdWhoami(ctx context.Context, a *app, _ []string) error {
	profile, err := a.auth.Profile(ctx)
	if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		a.term.Notify(ctx, "Not signed in")
		return errReported{err}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", profile.DisplayName(), profile.Initials())
	if profile.Email != "" {
		fmt.Fprintf(a.out, "Email: %s\n", profile.Email)
	}
	if profile.Phone != "" {
		fmt.Fprintf(a.out, "Phone: %s\n", profile.Phone)
	}
	return nil
}

func cmdFeatured(ctx context.Context, a *app, args []string) error {
	fs := newFlags("featured", usageFeatured, a.out)
	watch := fs.Bool("watch", false, "rotate through the carousel until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}
	products, err := feeds.NewCatalogFeed(a.api, a.logg).Featured(ctx)
	if err != nil {
		return err
	}
	if err := feeds.RenderProducts(a.out, products); err != nil {
		return err
	}
	if !*watch || len(products) == 0 {
		return nil
	}

	carousel := feeds.NewProductCarousel(len(products), feeds.DefaultVisibleProducts)
	carousel.AutoAdvance(ctx, feeds.DefaultAutoAdvance, func(index int) {
		fmt.Fprintf(a.out, "▶ %s\n", products[index].Name)
	})
	return nil
}

func cmdNews(ctx context.Context, a *app, args []string) error {
	fs := newFlags("news", usageNews, a.out)
	year := fs.Int("year", 0, "only list articles from this year")
	id := fs.Int64("id", 0, "show the full text of one article")
	if err := fs.Parse(args); err != nil {
		return err
	}
	items, err := feeds.NewNewsFeed(a.api, a.logg).List(ctx, *year)
	if err != nil {
		return err
	}
	if *id == 0 {
		return feeds.RenderNews(a.out, items)
	}
	item, ok := feeds.Find(items, *id)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("article %d not found", *id))
	}
	return feeds.RenderArticle(a.out, item)
}

func cmdSocial(ctx context.Context, a *app, _ []string) error {
	return feeds.RenderLinks(a.out, feeds.NewSocialFeed(a.api, a.logg).Links(ctx))
}

func cmdVehicles(_ context.Context, a *app, _ []string) error {
	return delivery.RenderFleet(a.out, delivery.DefaultFleet())
}

func cmdDelivery(ctx context.Context, a *app, args []string) error {
	fs := newFlags("delivery", usageDelivery, a.out)
	vehicle := fs.String("vehicle", "", "vehicle title or number from `storefront vehicles`")
	lat := fs.Float64("lat", 0, "destination latitude")
	lng := fs.Float64("lng", 0, "destination longitude")
	if err := fs.Parse(args); err != nil {
		return err
	}

	router := routing.NewClient(
		routing.WithBaseURL(a.cfg.Routing.BaseURL),
		routing.WithProfile(a.cfg.Routing.Profile),
		routing.WithTimeout(a.cfg.Routing.Timeout),
	)
	estimator, err := delivery.NewEstimator(router, a.cfg.Delivery, nil, a.logg)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*vehicle) != "" {
		v, err := delivery.FindVehicle(estimator.Fleet(), *vehicle)
		if err != nil {
			return err
		}
		if err := estimator.Select(v); err != nil {
			return err
		}
	}

	est, err := estimator.Estimate(ctx, types.Coordinate{Lat: *lat, Lng: *lng})
	if err != nil {
		return err
	}
	return delivery.RenderEstimate(a.out, est)
}

func cmdFeedback(ctx context.Context, a *app, args []string) error {
	fs := newFlags("feedback", usageFeedback, a.out)
	form := &contact.FeedbackForm{}
	fs.StringVar(&form.Name, "name", "", "your name")
	fs.StringVar(&form.Email, "email", "", "your email")
	fs.StringVar(&form.Message, "message", "", "message text")
	attach := fs.String("attach", "", "comma-separated file paths")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var files []contact.Attachment
	for _, path := range strings.Split(*attach, ",") {
		if path = strings.TrimSpace(path); path == "" {
			continue
		}
		file, err := contact.AttachmentFromFile(path)
		if err != nil {
			return err
		}
		files = append(files, file)
	}
	if err := form.AddAttachments(files...); err != nil {
		return err
	}
	return contact.NewFeedbackDesk(a.term, a.logg).Submit(ctx, form)
}

func cmdServiceRequest(ctx context.Context, a *app, args []string) error {
	fs := newFlags("service-request", usageServiceRequest, a.out)
	var req contact.ServiceRequest
	fs.StringVar(&req.Service, "service", "", "service name")
	fs.StringVar(&req.Name, "name", "", "your name")
	fs.StringVar(&req.Phone, "phone", "", "phone, any format")
	fs.StringVar(&req.Email, "email", "", "email (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	desk, err := contact.NewServiceDesk(a.api, a.logg)
	if err != nil {
		return err
	}
	receipt, err := desk.Submit(ctx, req)
	if err != nil {
		return err
	}
	a.term.Notify(ctx, fmt.Sprintf("Request #%d received. A manager will call you back.", receipt.ID))
	return nil
}

// run dispatches one command and always persists the session state.
func run(ctx context.Context, a *app, args []string) (err error) {
	defer func() {
		err = multierr.Append(err, a.close(ctx))
	}()
	if len(args) == 0 {
		usage(a.out)
		return flag.ErrHelp
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage(a.out)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return cmd.run(ctx, a, args[1:])
}
