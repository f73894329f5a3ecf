package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/nhasan/jobwatch/internal/models"
)

type SubscribeCmd struct {
	Email     string `arg:"" help:"Subscriber email."`
	Companies string `help:"Comma-separated companies to match."`
	Keywords  string `help:"Comma-separated keywords to match."`
}

func (s *SubscribeCmd) Run(ctx *Context) error {
	email := strings.TrimSpace(strings.ToLower(s.Email))
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email: %q", s.Email)
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	sub := models.Subscription{
		Email:     email,
		Companies: splitCSVFlag(s.Companies),
		Keywords:  splitCSVFlag(s.Keywords),
	}
	if err := db.AddSubscription(context.Background(), sub); err != nil {
		return err
	}

	ctx.UI.Successf("Subscribed %s (companies: %d, keywords: %d)", email, len(sub.Companies), len(sub.Keywords))
	return nil
}
