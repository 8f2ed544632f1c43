// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package view

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/fvbommel/sortorder"
	"go.uber.org/zap"

	"github.com/govportal/portalctl/internal/config"
	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/ui"
)

const (
	profileCmd = "profile"
	helpCmd    = "help"
	quitCmd    = "quit"

	// maxSuggestDistance bounds the edit distance of "did you mean" hints.
	maxSuggestDistance = 2
)

var builtinCmds = []string{profileCmd, helpCmd, quitCmd, "q"}

// Command handles user command interpretation and execution.
type Command struct {
	app     *App
	aliases *config.Aliases
}

// NewCommand creates a new command interpreter.
func NewCommand(app *App) *Command {
	return &Command{
		app:     app,
		aliases: config.NewAliases(),
	}
}

// Init loads the user aliases over the built-in ones.
func (c *Command) Init() error {
	if err := c.aliases.Load(); err != nil {
		return fmt.Errorf("failed to load aliases: %w", err)
	}

	return nil
}

// Aliases returns the command aliases.
func (c *Command) Aliases() *config.Aliases {
	return c.aliases
}

// Names returns every command name, naturally sorted.
func (c *Command) Names() []string {
	nn := append(c.aliases.Names(), builtinCmds...)
	for _, rid := range dao.AllRIDs {
		nn = append(nn, rid.String())
	}
	sort.Sort(sortorder.Natural(nn))

	return slices.Compact(nn)
}

// Run parses and executes a command. Trailing words become the initial
// search term of a resource view.
func (c *Command) Run(cmd string) error {
	cmd = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), ":"))
	if cmd == "" {
		return c.defaultCmd()
	}

	name, args := parseCommand(cmd)
	name = c.aliases.Get(name)

	switch name {
	case profileCmd:
		if len(args) == 0 {
			return c.profileView()
		}
		return c.switchProfile(args[0])
	case helpCmd:
		c.app.showHelp()
		return nil
	case quitCmd, "q":
		c.app.Stop()
		return nil
	}

	var rid dao.ResourceID
	if err := rid.Parse(name); err != nil || !knownRID(rid) {
		return c.unknown(name)
	}

	return c.resourceCmd(&rid, strings.Join(args, " "))
}

func (c *Command) defaultCmd() error {
	view := config.DefaultView
	if cfg := c.app.Config(); cfg != nil && cfg.Portalctl.DefaultView != "" {
		view = cfg.Portalctl.DefaultView
	}

	return c.Run(view)
}

func (c *Command) unknown(name string) error {
	if ss := Suggest(name, c.Names()); len(ss) > 0 {
		return fmt.Errorf("unknown command %q (did you mean %q?)", name, ss[0])
	}

	return fmt.Errorf("unknown command %q", name)
}

func (c *Command) profileView() error {
	v := NewProfileSwitcher(c.app)
	if err := v.Init(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize profile view: %w", err)
	}
	c.app.Push(v)

	return nil
}

func (c *Command) switchProfile(profile string) error {
	if err := c.app.SwitchProfile(profile); err != nil {
		return err
	}
	c.app.Flash().Infof("Switched to profile: %s", profile)
	c.app.RefreshCurrentView()

	return nil
}

func (c *Command) resourceCmd(rid *dao.ResourceID, search string) error {
	f := c.app.GetFactory()
	if f == nil {
		return fmt.Errorf("no connection to the portal API")
	}

	var v ui.Component
	switch *rid {
	case dao.PublicGalleryRID:
		v = NewGalleryList(c.app, rid)
	case dao.NoticeRID:
		v = NewNoticeList(c.app, rid, "published_at", "file")
	case dao.OpportunityRID:
		v = NewNoticeList(c.app, rid, "deadline", "document")
	default:
		v = NewBrowser(c.app, rid)
	}
	if s, ok := v.(ui.Pageable); ok && search != "" {
		s.SetSearch(search)
	}
	if err := v.Init(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", rid, err)
	}

	c.app.Logger().Debug("navigate", zap.Stringer("rid", rid), zap.String("search", search))
	c.app.Push(v)

	return nil
}

func knownRID(rid dao.ResourceID) bool {
	return slices.Contains(dao.AllRIDs, rid)
}

func parseCommand(cmd string) (string, []string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return "", nil
	}

	return strings.ToLower(parts[0]), parts[1:]
}

// Suggest returns the names closest to an unknown command, nearest first.
func Suggest(cmd string, names []string) []string {
	type candidate struct {
		name string
		dist int
	}
	cc := make([]candidate, 0, len(names))
	for _, n := range names {
		if n == cmd {
			continue
		}
		if d := levenshtein.ComputeDistance(cmd, n); d <= maxSuggestDistance {
			cc = append(cc, candidate{name: n, dist: d})
		}
	}
	sort.SliceStable(cc, func(i, j int) bool {
		if cc[i].dist != cc[j].dist {
			return cc[i].dist < cc[j].dist
		}
		return sortorder.NaturalLess(cc[i].name, cc[j].name)
	})

	ss := make([]string, 0, len(cc))
	for _, c := range cc {
		ss = append(ss, c.name)
	}

	return ss
}
