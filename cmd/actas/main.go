package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jinzhu/copier"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"
	"github.com/tendant/simple-actas/pkg/actas"
	"github.com/tendant/simple-actas/pkg/identity"
	"github.com/tendant/simple-actas/pkg/loginflow"
	"github.com/tendant/simple-actas/pkg/notification"
	"github.com/tendant/simple-actas/pkg/principal"
	"github.com/tendant/simple-actas/pkg/token"
)

type ActasDbConfig struct {
	Host     string `env:"ACTAS_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"ACTAS_PG_PORT" env-default:"5432"`
	Database string `env:"ACTAS_PG_DATABASE" env-default:"actas_db"`
	User     string `env:"ACTAS_PG_USER" env-default:"actas"`
	Password string `env:"ACTAS_PG_PASSWORD" env-default:"pwd"`
}

func (d ActasDbConfig) toDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

type JwtConfig struct {
	JwtSecret      string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	CookieHttpOnly bool   `env:"COOKIE_HTTP_ONLY" env-default:"true"`
	CookieSecure   bool   `env:"COOKIE_SECURE" env-default:"false"`
}

type ActasConfig struct {
	// Persistence selects the identity backend: postgres or memory. The
	// memory backend is seeded with demo accounts.
	Persistence string `env:"ACTAS_PERSISTENCE" env-default:"memory"`
	// Policy names the act-as policy: unrestricted or privileged.
	Policy string `env:"ACTAS_POLICY" env-default:"privileged"`
	// Filters is a comma-separated list of field=value lookup constraints,
	// e.g. "privileged=true" or "username__starts_with=svc-".
	Filters string `env:"ACTAS_FILTERS" env-default:""`
}

type SMTPConfig struct {
	Enabled  bool   `env:"SMTP_ENABLED" env-default:"false"`
	Host     string `env:"SMTP_HOST" env-default:"localhost"`
	Port     int    `env:"SMTP_PORT" env-default:"1025"`
	TLS      bool   `env:"SMTP_TLS" env-default:"false"`
	Username string `env:"SMTP_USERNAME" env-default:""`
	Password string `env:"SMTP_PASSWORD" env-default:""`
	From     string `env:"SMTP_FROM" env-default:"noreply@example.com"`
}

type Config struct {
	ActasDbConfig ActasDbConfig
	AppConfig     app.AppConfig
	JwtConfig     JwtConfig
	ActasConfig   ActasConfig
	SMTPConfig    SMTPConfig
}

func parseFilters(spec string) (principal.FilterSet, error) {
	if spec == "" {
		return nil, nil
	}
	params := map[string]any{}
	for _, pair := range strings.Split(spec, ",") {
		field, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, &invalidFilterError{pair}
		}
		params[strings.TrimSpace(field)] = strings.TrimSpace(value)
	}
	return principal.NewFilterSet(params)
}

type invalidFilterError struct {
	pair string
}

func (e *invalidFilterError) Error() string {
	return "invalid filter, expected field=value: " + e.pair
}

func seedDemoPrincipals(repo *identity.InMemoryIdentityRepository) {
	adminHash, err := actas.HashPassword("pwd")
	if err != nil {
		slog.Error("Failed hashing demo password", "err", err)
		os.Exit(-1)
	}
	userHash, err := actas.HashPassword("pwd")
	if err != nil {
		slog.Error("Failed hashing demo password", "err", err)
		os.Exit(-1)
	}

	repo.CreatePrincipal("admin", []byte(adminHash), true)
	repo.CreatePrincipal("user", []byte(userHash), false)
	slog.Info("Seeded demo principals", "usernames", []string{"admin", "user"}, "password", "pwd")
}

func newNotificationManager(config SMTPConfig) (*notification.NotificationManager, error) {
	var smtpConfig notification.SMTPConfig
	copier.Copy(&smtpConfig, &config)

	emailNotifier, err := notification.NewEmailNotifier(smtpConfig)
	if err != nil {
		return nil, err
	}

	nm := notification.NewNotificationManager("")
	nm.RegisterNotifier(notification.EmailSystem, emailNotifier)
	err = nm.RegisterNotification(notification.LoginCompleted, notification.EmailSystem, notification.NoticeTemplate{
		Subject: "New login",
		Text:    "A new session was started for {{.DisplayName}}.",
		Html:    "<p>A new session was started for <b>{{.DisplayName}}</b>.</p>",
	})
	if err != nil {
		return nil, err
	}
	return nm, nil
}

func main() {

	config := Config{}
	cleanenv.ReadEnv(&config)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	repoConfig := identity.RepositoryConfig{}
	if config.ActasConfig.Persistence == "postgres" || config.ActasConfig.Persistence == "postgresql" {
		dbConfig := config.ActasDbConfig.toDbConfig()
		pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
		if err != nil {
			slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
			os.Exit(-1)
		}
		repoConfig.Pool = pool
	}

	repo, err := identity.NewIdentityRepository(config.ActasConfig.Persistence, repoConfig)
	if err != nil {
		slog.Error("Failed creating identity repository", "persistence", config.ActasConfig.Persistence, "err", err)
		os.Exit(-1)
	}

	if inmem, ok := repo.(*identity.InMemoryIdentityRepository); ok {
		seedDemoPrincipals(inmem)
	}

	policy, ok := actas.NewPolicy(config.ActasConfig.Policy)
	if !ok {
		slog.Error("Unknown act-as policy", "policy", config.ActasConfig.Policy)
		os.Exit(-1)
	}

	filters, err := parseFilters(config.ActasConfig.Filters)
	if err != nil {
		slog.Error("Failed parsing lookup filters", "filters", config.ActasConfig.Filters, "err", err)
		os.Exit(-1)
	}

	lookupService := identity.NewLookupService(repo)
	actasService := actas.NewService(
		lookupService,
		actas.WithPolicy(policy),
		actas.WithFilters(filters),
	)

	flowOpts := []loginflow.Option{}
	if config.SMTPConfig.Enabled {
		nm, err := newNotificationManager(config.SMTPConfig)
		if err != nil {
			slog.Error("Failed creating notification manager", "err", err)
			os.Exit(-1)
		}
		flowOpts = append(flowOpts, loginflow.WithNotificationManager(nm))
	}
	flowService := loginflow.NewLoginFlowService(actasService, flowOpts...)

	// jwt service
	jwtService := token.NewJwtServiceOptions(
		config.JwtConfig.JwtSecret,
		token.WithCookieHttpOnly(config.JwtConfig.CookieHttpOnly),
		token.WithCookieSecure(config.JwtConfig.CookieSecure),
	)

	handle := loginflow.NewHandle(flowService, *jwtService)

	tokenAuth := jwtauth.New("HS256", []byte(config.JwtConfig.JwtSecret), nil)

	loginflow.Routes(server.R, handle, tokenAuth)

	server.Run()

}
