package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/govportal/portalctl/internal/client"
	"github.com/govportal/portalctl/internal/config"
	"github.com/govportal/portalctl/internal/config/data"
	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/demo"
	"github.com/govportal/portalctl/internal/logging"
	"github.com/govportal/portalctl/internal/view"
)

const (
	appName    = "portalctl"
	appVersion = "0.1.0"

	dbTimeout = 10 * time.Second
)

var (
	flags   *data.Flags
	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "A terminal back office for the government portal",
		Long:          `portalctl browses, searches, exports and edits the content of a government portal CMS from the terminal.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s version %s\n", appName, appVersion)
		},
	}
)

func init() {
	flags = config.NewFlags()
	initFlags()
	rootCmd.AddCommand(versionCmd, demoCmd(), exportCmd(), describeCmd())
}

func initFlags() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(flags.LogLevel, "logLevel", "l", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(flags.LogFile, "logFile", "", "Log file path")
	pf.StringVar(flags.Profile, "profile", "", "API profile to use")
	pf.StringVar(flags.APIURL, "api-url", "", "Portal API base URL")
	pf.StringVar(flags.MediaURL, "media-url", "", "Base URL of uploaded media")
	pf.StringVar(flags.Token, "token", "", "API bearer token")
	pf.StringVar(flags.DSN, "dsn", "", "Postgres DSN for direct database access")
	pf.BoolVar(flags.Demo, "demo", false, "Serve the fixture API in process")
	pf.BoolVar(flags.ReadOnly, "readonly", false, "Enable read-only mode")
	pf.BoolVar(flags.Write, "write", false, "Enable write mode (overrides readonly)")

	rootCmd.Flags().StringVarP(flags.Command, "command", "c", "", "Startup command/view")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	s, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	app := view.NewApp(s.cfg, s.log, appVersion)
	app.SetFactory(s.factory)
	if err := app.Init(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(*flags.Command)
}

// session bundles the wired configuration, logger and accessor factory.
type session struct {
	cfg     *config.Config
	log     *zap.Logger
	factory *dao.APIFactory
	closers []func()
}

func (r *session) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	_ = r.log.Sync()
}

func bootstrap(ctx context.Context) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := config.InitLocs(); err != nil {
		return nil, fmt.Errorf("failed to initialize locations: %w", err)
	}
	env, err := config.LoadEnv(".env", config.AppEnvFile)
	if err != nil {
		return nil, err
	}
	settings, err := client.NewProfileManager(config.AppAPIProfilesFile)
	if err != nil {
		return nil, err
	}

	cfg := config.NewConfig(settings)
	if err := cfg.Load(config.AppConfigFile, false); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Refine(flags, settings, env); err != nil {
		return nil, fmt.Errorf("failed to refine configuration: %w", err)
	}

	file := cfg.Portalctl.Logger.File
	if file == "" {
		file = config.AppLogFile
	}
	logger, err := logging.New(cfg.Portalctl.Logger.Level, file)
	if err != nil {
		return nil, err
	}
	rt := session{cfg: cfg, log: logger}

	if config.IsBoolSet(flags.Demo) {
		base, stop, err := serveDemo(logger)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, stop)
		cfg.Portalctl.APIURL, cfg.Portalctl.MediaURL = base+"/api", base
	}

	conn, err := client.NewAPIClient(settings, cfg.ClientConfig(), logger.Named("client"))
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	cfg.SetConnection(conn)

	var db *sql.DB
	if dsn := cfg.Portalctl.DSN(); dsn != "" {
		dctx, cancel := context.WithTimeout(ctx, dbTimeout)
		db, err = dao.OpenDB(dctx, dsn)
		cancel()
		if err != nil {
			rt.close()
			return nil, err
		}
		rt.closers = append(rt.closers, func() { _ = db.Close() })
	}

	rt.factory = dao.NewFactory(conn, db, dao.NewPageCache(dao.DefaultCacheTTL), cfg.Portalctl.IsReadOnly())
	logger.Info("portalctl started",
		zap.String("version", appVersion),
		zap.String("profile", cfg.Portalctl.ActiveProfile()),
		zap.String("api", conn.BaseURL()),
		zap.Bool("sql", db != nil),
		zap.Bool("readOnly", rt.factory.ReadOnly()),
	)

	return &rt, nil
}

// serveDemo starts the fixture API on a loopback port and returns its base URL.
func serveDemo(logger *zap.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to start demo API: %w", err)
	}
	srv := &http.Server{
		Handler:           demo.NewServer(logger.Named("demo")).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("demo API failed", zap.Error(err))
		}
	}()

	return "http://" + ln.Addr().String(), func() { _ = srv.Close() }, nil
}
