package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/bbdap-client/authclient"
	"github.com/jrsteele09/bbdap-client/dashboard"
	"github.com/jrsteele09/bbdap-client/internal/config"
	apperrors "github.com/jrsteele09/bbdap-client/internal/errors"
	"github.com/jrsteele09/bbdap-client/sessions"
	"github.com/jrsteele09/bbdap-client/sessions/keyring"
	"github.com/jrsteele09/bbdap-client/token"
	"github.com/jrsteele09/bbdap-client/view"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `Usage: bbdap [flags] [command]

Commands:
  open        check the stored session and show the login or dashboard view (default)
  login       log in and store the session token
  logout      forget the stored session token
  dashboard   show KPIs and the sales chart
  forecast    show the next day sales forecast
  stock       show low stock alerts
  status      show the session state

Flags:
`

// errNotLoggedIn is reported by commands that need a session when none is stored
var errNotLoggedIn = errors.New("not logged in")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()

	flags := flag.NewFlagSet("bbdap", flag.ContinueOnError)
	flags.SetOutput(stderr)
	serverFlag := flags.String("server", "", "Override the dashboard API base URL (BBDAP_SERVER_URL)")
	bannerFlag := flags.Bool("banner", false, "Print the application banner")
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	setupLogging(c.GetLogLevel(), stderr)

	serverURL := c.GetServerURL()
	if *serverFlag != "" {
		serverURL = strings.TrimRight(*serverFlag, "/")
	}

	store, err := newTokenStore(c)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return err
	}

	httpClient := &http.Client{Timeout: c.GetHTTPTimeout()}
	authClient, err := authclient.New(serverURL, authclient.WithHTTPClient(httpClient))
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return err
	}
	dashClient, err := dashboard.New(serverURL, dashboard.WithHTTPClient(httpClient))
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return err
	}

	notifier := view.NewConsoleNotifier(stderr)
	controller, err := sessions.NewController(store, authClient, dashClient, notifier,
		sessions.OnStateChange(func(s sessions.State) {
			log.Debug().Stringer("state", s).Msg("session state")
		}))
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return err
	}

	if *bannerFlag {
		displayAppname(c.GetAppName(), stdout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := "open"
	if flags.NArg() > 0 {
		command = flags.Arg(0)
	}

	shell := &shell{
		appName:    c.GetAppName(),
		controller: controller,
		store:      store,
		prompt:     view.NewLoginPrompt(stdin, stdout),
		notifier:   notifier,
		out:        stdout,
	}
	return shell.dispatch(ctx, command)
}

// shell selects the view to show from the controller's session state
type shell struct {
	appName    string
	controller *sessions.Controller
	store      sessions.TokenStore
	prompt     *view.LoginPrompt
	notifier   sessions.Notifier
	out        io.Writer
}

func (s *shell) dispatch(ctx context.Context, command string) error {
	// An unreadable store has already been reported and leaves the session Unauthenticated;
	// login and logout replace or remove it.
	if _, err := s.controller.Start(ctx); err != nil {
		log.Warn().Err(err).Msg("continuing without a stored session")
	}

	switch command {
	case "open":
		return s.open(ctx)
	case "login":
		return s.login(ctx)
	case "logout":
		if err := s.controller.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Logged out")
		return nil
	case "dashboard":
		return s.requireSession(func() error { return s.showDashboard(ctx) })
	case "forecast":
		return s.requireSession(func() error {
			f, err := s.controller.Forecast(ctx)
			if err != nil {
				return err
			}
			return view.RenderForecast(s.out, f)
		})
	case "stock":
		return s.requireSession(func() error {
			alerts, err := s.controller.StockAlerts(ctx)
			if err != nil {
				return err
			}
			return view.RenderStockAlerts(s.out, alerts)
		})
	case "status":
		return s.status(ctx)
	default:
		s.notifier.Notify(sessions.TitleError, fmt.Sprintf("unknown command %q", command))
		return fmt.Errorf("unknown command %q", command)
	}
}

// open renders whichever view the session state selects
func (s *shell) open(ctx context.Context) error {
	switch s.controller.State() {
	case sessions.StateAuthenticated:
		return s.showDashboard(ctx)
	case sessions.StateUnauthenticated:
		if err := s.login(ctx); err != nil {
			return err
		}
		return s.showDashboard(ctx)
	default:
		return nil
	}
}

func (s *shell) login(ctx context.Context) error {
	creds, err := s.prompt.Prompt(s.appName)
	if err != nil {
		return err
	}
	return s.controller.Login(ctx, creds.Username, creds.Password)
}

func (s *shell) showDashboard(ctx context.Context) error {
	d, err := s.controller.LoadDashboard(ctx)
	if err != nil {
		return err
	}
	return view.RenderDashboard(s.out, d)
}

func (s *shell) requireSession(fn func() error) error {
	if s.controller.State() != sessions.StateAuthenticated {
		s.notifier.Notify(sessions.TitleError, "Not logged in, run `bbdap login`")
		return errNotLoggedIn
	}
	return fn()
}

func (s *shell) status(ctx context.Context) error {
	fmt.Fprintf(s.out, "Session: %s\n", s.controller.State())
	if s.controller.State() != sessions.StateAuthenticated {
		return nil
	}

	raw, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	claims, err := token.Inspect(raw)
	if apperrors.Is(err, apperrors.ErrInvalidToken) {
		// Opaque tokens carry nothing to show
		return nil
	}
	if err != nil {
		return err
	}

	if claims.Subject != "" {
		fmt.Fprintf(s.out, "User: %s\n", claims.Subject)
	}
	if claims.ExpiresAt != nil {
		note := ""
		if claims.Expired(time.Now()) {
			note = " (expired)"
		}
		fmt.Fprintf(s.out, "Expires: %s%s\n", claims.ExpiresAt.Local().Format(time.RFC1123), note)
	}
	return nil
}

func newTokenStore(c config.ClientConfig) (sessions.TokenStore, error) {
	switch c.GetTokenStore() {
	case config.TokenStoreKeyring:
		return keyring.New(), nil
	case config.TokenStoreFile:
		return sessions.NewFileTokenStore(c.GetTokenFile())
	default:
		return nil, fmt.Errorf("unknown token store %q", c.GetTokenStore())
	}
}

func setupLogging(level string, out io.Writer) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
}

func displayAppname(appname string, out io.Writer) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(out, myFigure.String())
}
