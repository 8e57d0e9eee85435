package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	sqliteadapter "github.com/seinn09/digforweb/internal/adapters/db/sqlite"
	httpadapter "github.com/seinn09/digforweb/internal/adapters/http"
	rpcadapter "github.com/seinn09/digforweb/internal/adapters/rpcjson"
	"github.com/seinn09/digforweb/internal/application"
	"github.com/seinn09/digforweb/internal/domain"
	"github.com/urfave/cli/v3"
)

func main() {
	_ = godotenv.Load()

	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "digforweb",
		Usage: "Digital forensics case management server and CLI",
		Commands: []*cli.Command{
			serverCommand(),
			authCommand(),
			victimsCommand(),
			casesCommand(),
			evidenceCommand(),
			actionsCommand(),
			statsCommand(),
			auditCommand(),
			browseCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx, serverOptions{
				addr:              ":8080",
				rpcSocket:         "/tmp/digforweb.sock",
				dbPath:            "digforweb.db",
				bootstrapName:     "Officer",
				bootstrapEmail:    "petugas@digforweb.local",
				bootstrapPassword: "petugas",
			})
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

type serverOptions struct {
	addr              string
	rpcSocket         string
	dbPath            string
	bootstrapName     string
	bootstrapEmail    string
	bootstrapPassword string
}

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Run HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "HTTP listen address", Sources: cli.EnvVars("DIGFORWEB_ADDR")},
			&cli.StringFlag{Name: "rpc-socket", Value: "/tmp/digforweb.sock", Usage: "JSON-RPC unix socket path", Sources: cli.EnvVars("DIGFORWEB_RPC_SOCKET")},
			&cli.StringFlag{Name: "db-path", Value: "digforweb.db", Usage: "SQLite database path", Sources: cli.EnvVars("DIGFORWEB_DB_PATH")},
			&cli.StringFlag{Name: "bootstrap-officer-name", Value: "Officer", Usage: "initial officer name"},
			&cli.StringFlag{Name: "bootstrap-officer-email", Value: "petugas@digforweb.local", Usage: "initial officer email"},
			&cli.StringFlag{Name: "bootstrap-officer-password", Value: "petugas", Usage: "initial officer password when users are empty"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, serverOptions{
				addr:              c.String("addr"),
				rpcSocket:         c.String("rpc-socket"),
				dbPath:            c.String("db-path"),
				bootstrapName:     c.String("bootstrap-officer-name"),
				bootstrapEmail:    c.String("bootstrap-officer-email"),
				bootstrapPassword: c.String("bootstrap-officer-password"),
			})
		},
	}
}

func runServer(ctx context.Context, opts serverOptions) error {
	db, err := sqliteadapter.Open(opts.dbPath)
	if err != nil {
		return err
	}
	if err := sqliteadapter.RunMigrations(ctx, db); err != nil {
		return err
	}

	repo := sqliteadapter.NewCaseRepository(db)
	service := application.NewCaseService(repo)
	if err := service.BootstrapOfficer(ctx, opts.bootstrapName, opts.bootstrapEmail, opts.bootstrapPassword); err != nil {
		return err
	}

	router := httpadapter.NewRouter(service)
	srv := &http.Server{Addr: opts.addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
	rpcSrv, err := rpcadapter.Start(opts.rpcSocket, service)
	if err != nil {
		return err
	}

	defer func() {
		_ = rpcSrv.Close()
	}()
	log.Printf("json-rpc listening on unix://%s", opts.rpcSocket)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authentication commands",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Login and store CLI token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "transport", Value: "uds"},
					&cli.StringFlag{Name: "server", Value: "http://127.0.0.1:8080"},
					&cli.StringFlag{Name: "socket", Value: "/tmp/digforweb.sock"},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "token-name", Value: "cli"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg := cliConfig{Transport: c.String("transport"), Server: c.String("server"), Socket: c.String("socket")}
					var out loginResult
					err := doLogin(ctx, cfg, c.String("email"), c.String("password"), c.String("token-name"), &out)
					if err != nil {
						return err
					}
					cfg.Token = out.Token
					if err := saveConfig(cfg); err != nil {
						return err
					}
					fmt.Printf("logged in as %s (%s)\n", out.Email, out.Role)
					return nil
				},
			},
			{
				Name:  "register",
				Usage: "Register a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "role", Value: domain.RoleViewer, Usage: "petugas or viewer"},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out loginResult
					if err := doRegister(ctx, cfg, c.String("role"), c.String("name"), c.String("email"), c.String("password"), &out); err != nil {
						return err
					}
					cfg.Token = out.Token
					if err := saveConfig(cfg); err != nil {
						return err
					}
					fmt.Printf("registered %s as %s\n", out.Email, out.Role)
					return nil
				},
			},
			{
				Name:  "whoami",
				Usage: "Show current authenticated user",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out whoAmIResult
					if err := doWhoAmI(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printKV([][2]string{{"id", uintToString(out.ID)}, {"name", out.Name}, {"email", out.Email}, {"role", out.Role}})
					return nil
				},
			},
			{
				Name:  "logout",
				Usage: "Clear local CLI auth token",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					_ = doLogout(ctx, cfg)
					cfg.Token = ""
					if err := saveConfig(cfg); err != nil {
						return err
					}
					fmt.Println("logged out")
					return nil
				},
			},
		},
	}
}

func victimsCommand() *cli.Command {
	return &cli.Command{
		Name:  "victims",
		Usage: "Victim commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List victims",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.Victim
					if err := doVictimsList(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printVictims(out)
					return nil
				},
			},
			{
				Name:  "get",
				Usage: "Show one victim",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}, &cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out domain.Victim
					if err := doVictimsGet(ctx, cfg, c.Uint("id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printVictimDetail(out)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Register a victim report",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "contact"},
					&cli.StringFlag{Name: "location"},
					&cli.StringFlag{Name: "report-date"},
					&cli.StringFlag{Name: "description"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					in := domain.Victim{
						Name:              c.String("name"),
						Contact:           c.String("contact"),
						Location:          c.String("location"),
						ReportDate:        c.String("report-date"),
						ReportDescription: c.String("description"),
					}
					var out domain.Victim
					if err := doVictimsCreate(ctx, cfg, in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printVictimDetail(out)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Update a victim report",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "contact"},
					&cli.StringFlag{Name: "location"},
					&cli.StringFlag{Name: "report-date"},
					&cli.StringFlag{Name: "description"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					in := domain.Victim{
						Name:              c.String("name"),
						Contact:           c.String("contact"),
						Location:          c.String("location"),
						ReportDate:        c.String("report-date"),
						ReportDescription: c.String("description"),
					}
					var out domain.Victim
					if err := doVictimsUpdate(ctx, cfg, c.Uint("id"), in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printVictimDetail(out)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a victim and everything filed under them",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := doVictimsDelete(ctx, cfg, c.Uint("id")); err != nil {
						return err
					}
					fmt.Printf("deleted victim %d with dependent cases, evidence and actions\n", c.Uint("id"))
					return nil
				},
			},
		},
	}
}

func casesCommand() *cli.Command {
	return &cli.Command{
		Name:  "cases",
		Usage: "Case commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cases",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.Case
					if err := doCasesList(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printCases(out)
					return nil
				},
			},
			{
				Name:  "get",
				Usage: "Show one case",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}, &cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out domain.Case
					if err := doCasesGet(ctx, cfg, c.Uint("id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printCaseDetail(out)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Open a case for a victim",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "victim-id", Required: true},
					&cli.StringFlag{Name: "type", Required: true},
					&cli.StringFlag{Name: "incident-date"},
					&cli.StringFlag{Name: "summary"},
					&cli.StringFlag{Name: "status"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					in := domain.Case{
						VictimID:     c.Uint("victim-id"),
						CaseType:     c.String("type"),
						IncidentDate: c.String("incident-date"),
						Summary:      c.String("summary"),
						Status:       c.String("status"),
					}
					var out domain.Case
					if err := doCasesCreate(ctx, cfg, in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printCaseDetail(out)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Update a case",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.UintFlag{Name: "victim-id", Required: true},
					&cli.StringFlag{Name: "type", Required: true},
					&cli.StringFlag{Name: "incident-date"},
					&cli.StringFlag{Name: "summary"},
					&cli.StringFlag{Name: "status"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					in := domain.Case{
						VictimID:     c.Uint("victim-id"),
						CaseType:     c.String("type"),
						IncidentDate: c.String("incident-date"),
						Summary:      c.String("summary"),
						Status:       c.String("status"),
					}
					var out domain.Case
					if err := doCasesUpdate(ctx, cfg, c.Uint("id"), in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printCaseDetail(out)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a case with its evidence and actions",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := doCasesDelete(ctx, cfg, c.Uint("id")); err != nil {
						return err
					}
					fmt.Printf("deleted case %d with dependent evidence and actions\n", c.Uint("id"))
					return nil
				},
			},
		},
	}
}

func evidenceCommand() *cli.Command {
	return &cli.Command{
		Name:  "evidence",
		Usage: "Evidence commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List evidence",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.Evidence
					if err := doEvidenceList(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printEvidenceList(out)
					return nil
				},
			},
			{
				Name:  "get",
				Usage: "Show one evidence item",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}, &cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out domain.Evidence
					if err := doEvidenceGet(ctx, cfg, c.Uint("id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printEvidenceDetail(out)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Attach evidence to a case",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "case-id", Required: true},
					&cli.StringFlag{Name: "type", Required: true},
					&cli.StringFlag{Name: "storage", Required: true},
					&cli.StringFlag{Name: "hash"},
					&cli.StringFlag{Name: "collected-at"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					in := domain.Evidence{
						CaseID:          c.Uint("case-id"),
						EvidenceType:    c.String("type"),
						StorageLocation: c.String("storage"),
						HashValue:       c.String("hash"),
						CollectionTime:  c.String("collected-at"),
					}
					var out domain.Evidence
					if err := doEvidenceCreate(ctx, cfg, in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printEvidenceDetail(out)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Update an evidence item",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.UintFlag{Name: "case-id", Required: true},
					&cli.StringFlag{Name: "type", Required: true},
					&cli.StringFlag{Name: "storage", Required: true},
					&cli.StringFlag{Name: "hash"},
					&cli.StringFlag{Name: "collected-at"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					in := domain.Evidence{
						CaseID:          c.Uint("case-id"),
						EvidenceType:    c.String("type"),
						StorageLocation: c.String("storage"),
						HashValue:       c.String("hash"),
						CollectionTime:  c.String("collected-at"),
					}
					var out domain.Evidence
					if err := doEvidenceUpdate(ctx, cfg, c.Uint("id"), in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printEvidenceDetail(out)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete an evidence item",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := doEvidenceDelete(ctx, cfg, c.Uint("id")); err != nil {
						return err
					}
					fmt.Printf("deleted evidence %d\n", c.Uint("id"))
					return nil
				},
			},
		},
	}
}

func actionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "actions",
		Usage: "Forensic action commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List forensic actions",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.ForensicAction
					if err := doActionsList(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printActions(out)
					return nil
				},
			},
			{
				Name:  "get",
				Usage: "Show one forensic action",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}, &cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out domain.ForensicAction
					if err := doActionsGet(ctx, cfg, c.Uint("id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printActionDetail(out)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Record a forensic action on a case",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "case-id", Required: true},
					&cli.StringFlag{Name: "stage", Required: true, Usage: "identification, preservation, collection, examination, analysis, documentation or presentation"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "pic", Usage: "person in charge"},
					&cli.StringFlag{Name: "executed-at"},
					&cli.StringFlag{Name: "status", Usage: "pending, in-progress or completed"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					in := domain.ForensicAction{
						CaseID:         c.Uint("case-id"),
						Stage:          c.String("stage"),
						Description:    c.String("description"),
						PersonInCharge: c.String("pic"),
						ExecutionTime:  c.String("executed-at"),
						Status:         c.String("status"),
					}
					var out domain.ForensicAction
					if err := doActionsCreate(ctx, cfg, in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printActionDetail(out)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Update a forensic action",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.UintFlag{Name: "case-id", Required: true},
					&cli.StringFlag{Name: "stage", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "pic", Usage: "person in charge"},
					&cli.StringFlag{Name: "executed-at"},
					&cli.StringFlag{Name: "status"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					in := domain.ForensicAction{
						CaseID:         c.Uint("case-id"),
						Stage:          c.String("stage"),
						Description:    c.String("description"),
						PersonInCharge: c.String("pic"),
						ExecutionTime:  c.String("executed-at"),
						Status:         c.String("status"),
					}
					var out domain.ForensicAction
					if err := doActionsUpdate(ctx, cfg, c.Uint("id"), in, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printActionDetail(out)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a forensic action",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := doActionsDelete(ctx, cfg, c.Uint("id")); err != nil {
						return err
					}
					fmt.Printf("deleted action %d\n", c.Uint("id"))
					return nil
				},
			},
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show dashboard counters",
		Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			var out domain.Stats
			if err := doStatsGet(ctx, cfg, &out); err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(out)
			}
			printStats(out)
			return nil
		},
	}
}

func auditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "Audit log commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List audit logs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 200},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.AuditRecord
					if err := doAuditList(ctx, cfg, c.Int("limit"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printAuditRecords(out)
					return nil
				},
			},
		},
	}
}

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Interactive read-only browser",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runBrowse(ctx, cfg)
		},
	}
}

func jsonMarshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
