// Package extractor is a rule-pack entity extraction backend for the classifier
// it stands in for an ML model: same Open/Annotate/Close lifecycle, deterministic output
package extractor

import (
	"context"
	"sort"
	"time"
	"unicode"
	"unicode/utf8"

	"entitylens/internal/core/classifier"
	"entitylens/internal/core/entity"
	"entitylens/internal/core/phone"
	perr "entitylens/internal/platform/errors"
	"entitylens/internal/platform/logger"
)

// Backend opens a compiled rule pack as a classifier handle
type Backend struct {
	// PackPath overrides the embedded pack when set
	PackPath string
	// Region is the default dialing region for phone candidates
	Region string
	// Location resolves relative and zone-less dates, default UTC
	Location *time.Location
	// Now is the clock for relative dates, default time.Now
	Now func() time.Time
}

// Open loads and compiles the pack; failures are ModelUnavailable
func (b Backend) Open(ctx context.Context) (classifier.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeModelUnavailable, "extractor: open")
	}
	var (
		p   *Pack
		err error
	)
	if b.PackPath != "" {
		p, err = LoadPackFile(b.PackPath)
	} else {
		p, err = LoadPack()
	}
	if err != nil {
		return nil, err
	}

	loc := b.Location
	if loc == nil {
		loc = time.UTC
	}
	now := b.Now
	if now == nil {
		now = time.Now
	}
	h := &handle{
		pack:   p,
		region: phone.New(b.Region).Region(),
		loc:    loc,
		now:    now,
	}
	logger.Named("extractor").Debug().
		Int("rules", len(p.Rules)).
		Str("region", h.region).
		Str("pack", packName(b.PackPath)).
		Msg("rule pack loaded")
	return h, nil
}

func packName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

type handle struct {
	pack   *Pack
	region string
	loc    *time.Location
	now    func() time.Time
}

type candidate struct {
	start, end int
	order      int
	ent        entity.Entity
}

// Annotate runs every rule over text and resolves overlaps
// earliest start wins, then the longest match; candidates with identical
// extents are merged into one span in rule order
func (h *handle) Annotate(ctx context.Context, text string) (entity.Result, error) {
	var cands []candidate
	for i, r := range h.pack.Rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parse := parsers[r.Parser]
		for _, loc := range r.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[0], loc[1]
			if r.value >= 0 && loc[2*r.value] >= 0 {
				start, end = loc[2*r.value], loc[2*r.value+1]
			}
			if r.Parser == "phone" && !isolated(text, start, end) {
				continue
			}
			m := match{text: text[start:end], groups: groupsOf(r, text, loc)}
			ent, ok := parse(h, r, m)
			if !ok {
				continue
			}
			cands = append(cands, candidate{start: start, end: end, order: i, ent: ent})
		}
	}
	return resolve(text, cands), nil
}

func (h *handle) Close() error { return nil }

func groupsOf(r Rule, text string, loc []int) map[string]string {
	names := r.re.SubexpNames()
	out := make(map[string]string, len(names))
	for i, n := range names {
		if n == "" || loc[2*i] < 0 {
			continue
		}
		out[n] = text[loc[2*i]:loc[2*i+1]]
	}
	return out
}

// isolated reports whether text[start:end] is not glued to neighbouring letters or digits
func isolated(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func resolve(text string, cands []candidate) entity.Result {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end > b.end
		}
		return a.order < b.order
	})

	out := entity.Result{}
	var (
		cur     *candidate
		curEnts []entity.Entity
	)
	flush := func() {
		if cur != nil {
			out = append(out, entity.NewSpan(text[cur.start:cur.end], cur.start, cur.end, curEnts...))
		}
	}
	for i := range cands {
		c := &cands[i]
		switch {
		case cur == nil:
		case c.start == cur.start && c.end == cur.end:
			if !hasKind(curEnts, c.ent.Kind()) {
				curEnts = append(curEnts, c.ent)
			}
			continue
		case c.start < cur.end:
			continue
		}
		flush()
		cur, curEnts = c, []entity.Entity{c.ent}
	}
	flush()
	return out
}

func hasKind(es []entity.Entity, k entity.Kind) bool {
	for _, e := range es {
		if e.Kind() == k {
			return true
		}
	}
	return false
}

// Kinds lists the entity kinds the pack can produce, in kind order
func (p *Pack) Kinds() []entity.Kind {
	seen := map[entity.Kind]bool{}
	for _, r := range p.Rules {
		seen[r.Kind] = true
	}
	var out []entity.Kind
	for _, k := range entity.Kinds() {
		if seen[k] {
			out = append(out, k)
		}
	}
	return out
}

