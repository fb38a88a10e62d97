package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/storefront/apiclient"
	"storefront/internal/storefront/render"
	"storefront/internal/storefront/state"
	"storefront/internal/storefront/storage"
	"storefront/pkg/config"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

type command struct {
	usage       string
	needCatalog bool
	run         func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"register":   {"register -name N -email E -password P -confirm P", false, (*app).register},
	"login":      {"login -email E -password P", false, (*app).login},
	"logout":     {"logout", false, (*app).logout},
	"whoami":     {"whoami", false, (*app).whoami},
	"products":   {"products [-category C]", true, (*app).products},
	"categories": {"categories", false, (*app).categories},
	"search":     {"search QUERY", true, (*app).search},
	"cart":       {"cart", true, (*app).showCart},
	"add":        {"add ID", true, (*app).add},
	"inc":        {"inc ID", true, (*app).inc},
	"dec":        {"dec ID", true, (*app).dec},
	"remove":     {"remove ID", true, (*app).remove},
	"checkout":   {"checkout -name N -email E -address A [-payment P]", true, (*app).submitOrder},
	"orders":     {"orders", false, (*app).orders},
	"wishlist":   {"wishlist", false, (*app).showWishlist},
	"wish":       {"wish ID", true, (*app).wish},
	"move":       {"move ID", true, (*app).move},
	"review":     {"review ID -rating R -comment C", false, (*app).review},
	"watch":      {"watch", true, (*app).watch},
}

type app struct {
	client   *apiclient.Client
	cart     *state.Manager
	session  *state.Session
	wishlist *state.Wishlist
	checkout *state.Checkout
	out      io.Writer
}

func newApp(cfg *config.Config, out io.Writer) (*app, error) {
	client := apiclient.New(cfg.APIBaseURL, cfg.HTTPTimeout)

	store, err := storage.NewFileStore(cfg.StateDir, cfg.APIBaseURL)
	if err != nil {
		return nil, err
	}

	cart := state.NewManager(client, store, logger.WarnLogger)
	session := state.NewSession(client, store, cart, client)

	return &app{
		client:   client,
		cart:     cart,
		session:  session,
		wishlist: state.NewWishlist(client, session, cart),
		checkout: state.NewCheckout(client, session, cart),
		out:      out,
	}, nil
}

// run handles one invocation. Like a page load, it first restores the
// session and cart from disk.
func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		a.usage()
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		a.usage()
		return errors.BadRequest(fmt.Sprintf("unknown command %q", args[0]), nil)
	}

	a.session.CheckAuth()
	if err := a.cart.Restore(); err != nil {
		logger.Warn("%v", err)
	}
	if cmd.needCatalog {
		if err := a.cart.LoadCatalog(ctx); err != nil {
			return err
		}
	}

	return cmd.run(a, ctx, args[1:])
}

func (a *app) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "Usage: storefront <command>")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s\n", commands[name].usage)
	}
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.Validation("a product ID is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Validation(fmt.Sprintf("invalid product ID %q", args[0]))
	}
	return id, nil
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlags("register")
	form := state.RegisterForm{}
	fs.StringVar(&form.Name, "name", "", "full name")
	fs.StringVar(&form.Email, "email", "", "email address")
	fs.StringVar(&form.Password, "password", "", "password")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "password again")
	if err := fs.Parse(args); err != nil {
		return errors.Validation(err.Error())
	}

	if _, err := a.session.Register(ctx, form); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Registration successful! Please login.")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return errors.Validation(err.Error())
	}

	user, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	return nil
}

func (a *app) logout(ctx context.Context, args []string) error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) whoami(ctx context.Context, args []string) error {
	user := a.session.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	return nil
}

// wishlisted marks wishlist products in listings when a user is logged in.
// A wishlist that cannot be loaded just shows no markers.
func (a *app) wishlisted(ctx context.Context) func(int64) bool {
	if a.session.CurrentUser() == nil {
		return nil
	}
	if err := a.wishlist.Load(ctx); err != nil {
		logger.Warn("Could not load wishlist: %v", err)
		return nil
	}
	return a.wishlist.Contains
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := newFlags("products")
	category := fs.String("category", "", "only show this category")
	if err := fs.Parse(args); err != nil {
		return errors.Validation(err.Error())
	}
	return render.Products(a.out, a.cart.FilterByCategory(*category), a.wishlisted(ctx))
}

func (a *app) categories(ctx context.Context, args []string) error {
	categories, err := a.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Fprintln(a.out, c)
	}
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	results, err := a.cart.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	return render.Products(a.out, results, a.wishlisted(ctx))
}

func (a *app) showCart(ctx context.Context, args []string) error {
	return render.Cart(a.out, a.cart.Snapshot())
}

// mutateCart runs one cart operation and prints the resulting cart.
func (a *app) mutateCart(args []string, op func(id int64) error) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	unsubscribe := a.cart.Subscribe(render.CartSubscriber(a.out))
	defer unsubscribe()

	return op(id)
}

func (a *app) add(ctx context.Context, args []string) error {
	return a.mutateCart(args, func(id int64) error {
		if err := a.checkAddable(id); err != nil {
			return err
		}
		return a.cart.AddItem(id)
	})
}

// checkAddable reports why a product cannot go into the cart, which
// AddItem itself ignores silently.
func (a *app) checkAddable(id int64) error {
	p, ok := a.cart.Product(id)
	if !ok {
		return errors.NotFound("Product", nil)
	}
	if !p.InStock() {
		return errors.Validation(fmt.Sprintf("%s is out of stock", p.Name))
	}
	return nil
}

func (a *app) inc(ctx context.Context, args []string) error {
	return a.mutateCart(args, func(id int64) error { return a.cart.UpdateQuantity(id, 1) })
}

func (a *app) dec(ctx context.Context, args []string) error {
	return a.mutateCart(args, func(id int64) error { return a.cart.UpdateQuantity(id, -1) })
}

func (a *app) remove(ctx context.Context, args []string) error {
	return a.mutateCart(args, a.cart.RemoveItem)
}

func (a *app) submitOrder(ctx context.Context, args []string) error {
	fs := newFlags("checkout")
	form := state.CheckoutForm{}
	fs.StringVar(&form.Name, "name", "", "customer name")
	fs.StringVar(&form.Email, "email", "", "customer email")
	fs.StringVar(&form.Address, "address", "", "shipping address")
	fs.StringVar(&form.PaymentMethod, "payment", entity.DefaultPaymentMethod, "payment method")
	if err := fs.Parse(args); err != nil {
		return errors.Validation(err.Error())
	}

	order, err := a.checkout.Submit(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order placed successfully! Order ID: %d, total $%.2f\n", order.ID, order.Total)
	return nil
}

func (a *app) orders(ctx context.Context, args []string) error {
	orders, err := a.checkout.History(ctx)
	if err != nil {
		return err
	}
	return render.Orders(a.out, orders)
}

func (a *app) showWishlist(ctx context.Context, args []string) error {
	if err := a.wishlist.Load(ctx); err != nil {
		return err
	}
	return render.Wishlist(a.out, a.wishlist.Items())
}

func (a *app) wish(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	added, err := a.wishlist.Toggle(ctx, id)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintln(a.out, "Added to wishlist.")
	} else {
		fmt.Fprintln(a.out, "Removed from wishlist.")
	}
	return nil
}

func (a *app) move(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.checkAddable(id); err != nil {
		return err
	}
	if err := a.wishlist.Load(ctx); err != nil {
		return err
	}
	if err := a.wishlist.MoveToCart(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Moved to cart.")
	return render.Cart(a.out, a.cart.Snapshot())
}

func (a *app) review(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	fs := newFlags("review")
	rating := fs.Int("rating", 0, "1 to 5")
	comment := fs.String("comment", "", "review text")
	if err := fs.Parse(args[1:]); err != nil {
		return errors.Validation(err.Error())
	}

	user := a.session.CurrentUser()
	if user == nil {
		return errors.Unauthorized("Please login to write a review", nil)
	}

	if _, err := a.client.CreateReview(ctx, apiclient.ReviewRequest{
		ProductID: id,
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    *rating,
		Comment:   *comment,
	}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Review submitted. Thank you!")
	return nil
}

// watch follows catalog events until interrupted, redrawing the catalog
// after each one.
func (a *app) watch(ctx context.Context, args []string) error {
	unsubscribe := a.cart.Subscribe(render.CatalogSubscriber(a.out, nil))
	defer unsubscribe()

	if err := render.Products(a.out, a.cart.Products(), nil); err != nil {
		return err
	}

	err := a.client.WatchCatalog(ctx, func(event entity.CatalogEvent) {
		switch event.Type {
		case entity.CatalogEventStockChanged:
			a.cart.ApplyCatalogEvent(event)
		case entity.CatalogEventRatingChanged:
			if err := a.cart.LoadCatalog(ctx); err != nil && !stderrors.Is(err, state.ErrSuperseded) {
				logger.Warn("Catalog refresh failed: %v", err)
			}
		}
	})
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
