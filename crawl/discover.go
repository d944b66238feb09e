package crawl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/extract"
)

// DeadLink is a link to a topic page that does not exist.
type DeadLink struct {
	From   string
	Target string
}

// Report is the result of a link check.
type Report struct {
	Reachable []string   // BFS order from the home topic
	Dead      []DeadLink // sorted by target, then source
	Orphans   []string   // existing pages not reachable from home, sorted
	External  int        // external links skipped
}

// OK reports whether the check found no problems.
func (r Report) OK() bool {
	return len(r.Dead) == 0 && len(r.Orphans) == 0
}

// Check walks the pages reachable from home and compares them with the
// full page list.
func Check(ctx context.Context, home string, fetcher core.Fetcher, pages []string) (Report, error) {
	var (
		report    Report
		queue     = NewQueue()
		referrers = make(map[string][]string)
		extractor = extract.New()
		external  = make(map[string]bool)
		dead      = make(map[string]bool)
	)
	queue.Add(home)

	for queue.HasNext() {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		id := queue.Next()

		result, err := fetcher.Fetch(ctx, id)
		if errors.Is(err, os.ErrNotExist) {
			dead[id] = true
			for _, from := range referrers[id] {
				report.Dead = append(report.Dead, DeadLink{From: from, Target: id})
			}
			if id == home {
				return Report{}, fmt.Errorf("home topic %s: %w", home, err)
			}
			continue
		}
		if err != nil {
			return Report{}, err
		}

		page, err := extractor.Extract(result.HTML)
		if err != nil {
			return Report{}, fmt.Errorf("checking %s: %w", id, err)
		}
		linked := make(map[string]bool)
		for _, href := range page.Links {
			if IsExternal(href) {
				external[href] = true
				continue
			}
			target, ok := TopicID(href)
			if !ok || linked[target] {
				continue
			}
			linked[target] = true
			if dead[target] {
				report.Dead = append(report.Dead, DeadLink{From: id, Target: target})
				continue
			}
			referrers[target] = append(referrers[target], id)
			queue.Add(target)
		}
	}

	reachable := make(map[string]bool)
	for _, id := range queue.All() {
		if !dead[id] {
			report.Reachable = append(report.Reachable, id)
			reachable[id] = true
		}
	}
	for _, id := range pages {
		if !reachable[id] {
			report.Orphans = append(report.Orphans, id)
		}
	}
	sort.Strings(report.Orphans)
	sort.Slice(report.Dead, func(i, j int) bool {
		if report.Dead[i].Target != report.Dead[j].Target {
			return report.Dead[i].Target < report.Dead[j].Target
		}
		return report.Dead[i].From < report.Dead[j].From
	})
	report.External = len(external)
	return report, nil
}
