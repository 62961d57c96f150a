package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/astegaru/linkedin-responder/agent"
	"github.com/astegaru/linkedin-responder/approve"
	"github.com/astegaru/linkedin-responder/config"
	"github.com/astegaru/linkedin-responder/persistence"
	"github.com/astegaru/linkedin-responder/respond"
	"github.com/astegaru/linkedin-responder/session"
	"github.com/astegaru/linkedin-responder/template"
)

// app wires configuration, templates, persistence, and the orchestrator
// together for the CLI commands.
type app struct {
	cfg       *config.Config
	templates *template.Store
	store     *persistence.Store
	agent     *agent.Agent
}

// buildApp loads and validates everything needed before a session opens.
// Configuration problems are fatal here, before any browser launches.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagTemplates != "" {
		cfg.TemplatesPath = flagTemplates
	}
	if flagUnattended {
		cfg.Unattended = true
	}

	templates, err := template.Load(cfg.TemplatesPath)
	if err != nil {
		return nil, err
	}

	store, err := persistence.NewStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	generator := respond.NewGenerator(cfg.OpenAIKey, templates, cfg.GenerationTimeout, cfg.MaxReplyLength)
	if generator.AIEnabled() {
		pterm.Success.Println("OpenAI API configured - using AI-generated replies")
	} else {
		pterm.Warning.Println("OpenAI API not configured - using template replies")
	}

	var gate approve.Gate
	if cfg.Unattended {
		gate = approve.NewPolicyGate(cfg.AutoSendCategories, cfg.AutoSendMinConf)
		if len(cfg.AutoSendCategories) == 0 {
			pterm.Info.Println("Unattended mode with no allow-list: every draft will be skipped")
		}
	} else {
		gate = approve.InteractiveGate{}
	}

	return &app{
		cfg:       cfg,
		templates: templates,
		store:     store,
		agent: &agent.Agent{
			Store:            store,
			Generator:        generator,
			Gate:             gate,
			MaxConversations: cfg.MaxConversations,
			SkipMarksRead:    cfg.SkipMarksRead,
			DailySendLimit:   cfg.DailySendLimit,
		},
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		fmt.Printf("⚠️ Failed to close store: %v\n", err)
	}
}

// runCycle opens a fresh browser session, runs one inbox cycle, and prints
// the summary. The session is per-cycle: a broken browser never leaks into
// the next check.
func (a *app) runCycle(ctx context.Context) error {
	if err := a.cfg.RequireCredentials(); err != nil {
		return err
	}

	sess, err := session.Connect(a.cfg.LinkedInEmail, a.cfg.LinkedInPassword, a.cfg.CookiesPath, a.cfg.Headless, flagDryRun)
	if err != nil {
		return err
	}
	defer sess.Close()

	rec, err := a.agent.RunCycle(ctx, sess)
	printSummary(rec)
	return err
}

func printSummary(rec persistence.RunRecord) {
	pterm.DefaultBox.WithTitle("Cycle summary").Printfln(
		"seen: %d\nsent: %d\nskipped: %d\nfailed: %d\nduration: %s",
		rec.Seen, rec.Sent, rec.Skipped, rec.Failed, rec.Duration().Round(time.Second),
	)
}
