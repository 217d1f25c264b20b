package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/heimdalr/dag"
	aclhelper "github.com/maxb-odessa/aclhelper"
)

// buildNode is one vertex in the dependency graph used to
// instantiate sources, option scopes, and checkers in the right
// order: a source has no dependencies, while an option scope or
// checker depends on the source it loads records from.
type buildNode struct {
	id    string
	kind  string
	value interface{}
}

func (n *buildNode) ID() string { return n.id }

var _ dag.IDInterface = &buildNode{}

// built holds the fully instantiated runtime components.
type built struct {
	sources map[string]aclhelper.Source
	options *aclhelper.OptionTable
	chain   *aclhelper.Chain
}

type emptySource struct{}

func (emptySource) Load() ([]string, error) { return nil, nil }

// filteringSource re-applies a case-insensitive POSIX ERE filter to
// another source's records, the way a checker's own source_filter
// field narrows a source it shares with other checkers.
type filteringSource struct {
	inner  aclhelper.Source
	filter *regexp.Regexp
}

func filteredSource(inner aclhelper.Source, filter string) aclhelper.Source {
	if inner == nil {
		inner = emptySource{}
	}
	if filter == "" {
		return inner
	}
	re, err := regexp.CompilePOSIX("(?i)" + filter)
	if err != nil {
		aclhelper.Log.WithField("filter", filter).WithError(err).Warn("ignoring unparsable source filter")
		return inner
	}
	return &filteringSource{inner: inner, filter: re}
}

func (s *filteringSource) Load() ([]string, error) {
	records, err := s.inner.Load()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, r := range records {
		if s.filter.MatchString(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// buildComponents instantiates sources, option scopes, and checkers
// in dependency order - sources first, since both option scopes and
// checkers reference one by name, then option scopes, since every
// checker's fields may substitute values from any of them - the same
// leaves-to-root DAG walk the teacher's config wiring uses for
// resolvers, groups, and routers. Option scopes are registered and
// checkers are added to the chain in the order they were declared.
// A checker that fails to build is left out of the chain, and an
// option scope that fails to load is left empty, with a warning
// rather than aborting the whole chain.
func buildComponents(cfg *Config, driverCfg aclhelper.DriverConfig, resolver *aclhelper.Resolver, locator *aclhelper.GeoIPLocator) (*built, error) {
	graph := dag.NewDAG()

	sourceNames := make(map[string]bool)
	for _, s := range cfg.Sources {
		sourceNames[s.Name] = true
		if _, err := graph.AddVertex(&buildNode{id: "source:" + s.Name, kind: "source", value: s}); err != nil {
			return nil, fmt.Errorf("duplicate source %q: %w", s.Name, err)
		}
	}
	for _, o := range cfg.Options {
		id := "options:" + o.Name
		if _, err := graph.AddVertex(&buildNode{id: id, kind: "options", value: o}); err != nil {
			return nil, fmt.Errorf("duplicate option scope %q: %w", o.Name, err)
		}
		if !sourceNames[o.SourceName] {
			return nil, fmt.Errorf("option scope %q references unknown source %q", o.Name, o.SourceName)
		}
		if err := graph.AddEdge(id, "source:"+o.SourceName); err != nil {
			return nil, err
		}
	}
	for _, c := range cfg.Checkers {
		id := "checker:" + c.Name
		if _, err := graph.AddVertex(&buildNode{id: id, kind: "checker", value: c}); err != nil {
			return nil, fmt.Errorf("duplicate checker %q: %w", c.Name, err)
		}
		if c.SourceName != "" && !sourceNames[c.SourceName] {
			return nil, fmt.Errorf("checker %q references unknown source %q", c.Name, c.SourceName)
		}
		if c.SourceName != "" {
			if err := graph.AddEdge(id, "source:"+c.SourceName); err != nil {
				return nil, err
			}
		}
		for _, o := range cfg.Options {
			if err := graph.AddEdge(id, "options:"+o.Name); err != nil {
				return nil, err
			}
		}
	}

	result := &built{
		sources: make(map[string]aclhelper.Source),
		options: aclhelper.NewOptionTable(),
		chain:   aclhelper.NewChain(),
	}

	checkers := make(map[string]*aclhelper.Checker)
	for graph.GetOrder() > 0 {
		leaves := graph.GetLeaves()
		scopes := make(map[string]*aclhelper.OptionScope)
		for id, v := range leaves {
			node := v.(*buildNode)
			switch node.kind {
			case "source":
				raw := node.value.(RawSource)
				src, err := aclhelper.NewSource(raw.Kind, raw.Fields)
				if err != nil {
					aclhelper.Log.WithField("source", raw.Name).WithError(err).Warn("source init failed, leaving it empty")
					src = emptySource{}
				}
				result.sources[raw.Name] = src
			case "options":
				raw := node.value.(RawOptionScope)
				scope, err := aclhelper.NewOptionScope(raw.Name, filteredSource(result.sources[raw.SourceName], raw.Filter))
				if err != nil {
					aclhelper.Log.WithField("scope", raw.Name).WithError(err).Warn("failed to load option scope, leaving it empty")
					scope, _ = aclhelper.NewOptionScope(raw.Name, emptySource{})
				}
				scopes[raw.Name] = scope
			case "checker":
				raw := node.value.(RawChecker)
				checker, err := instantiateChecker(raw, result.sources[raw.SourceName], result.options, driverCfg, resolver, locator)
				if err != nil {
					aclhelper.Log.WithField("checker", raw.Name).WithError(err).Warn("disabling checker")
				} else {
					checkers[raw.Name] = checker
				}
			}
			if err := graph.DeleteVertex(id); err != nil {
				return nil, err
			}
		}
		for _, o := range cfg.Options {
			if scope, ok := scopes[o.Name]; ok {
				result.options.Add(scope)
			}
		}
	}
	for _, c := range cfg.Checkers {
		if checker, ok := checkers[c.Name]; ok {
			result.chain.Add(checker)
		}
	}

	return result, nil
}

// instantiateChecker applies %{...} substitution to the enable,
// field index, driver, action, and notes fields in that order -
// matching the reference implementation's checkers_init - then
// parses the substituted values and builds the driver.
func instantiateChecker(raw RawChecker, src aclhelper.Source, options *aclhelper.OptionTable, driverCfg aclhelper.DriverConfig, resolver *aclhelper.Resolver, locator *aclhelper.GeoIPLocator) (*aclhelper.Checker, error) {
	enable := aclhelper.Subst(raw.Enable, options)
	if !isEnabled(enable) {
		return nil, fmt.Errorf("checker disabled via configuration")
	}

	fieldIdxStr := aclhelper.Subst(raw.FieldIdx, options)
	fieldIdx, err := strconv.Atoi(strings.TrimSpace(fieldIdxStr))
	if err != nil {
		return nil, fmt.Errorf("bad field index %q: %w", fieldIdxStr, err)
	}

	driverName := aclhelper.Subst(raw.Driver, options)
	action, err := aclhelper.ParseAction(aclhelper.Subst(raw.Action, options))
	if err != nil {
		return nil, err
	}
	notes := aclhelper.Subst(raw.Notes, options)

	driver, err := aclhelper.NewDriver(driverName, driverCfg, resolver, locator)
	if err != nil {
		return nil, err
	}

	records, err := filteredSource(src, raw.Filter).Load()
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	if err := driver.Build(records); err != nil {
		return nil, fmt.Errorf("building driver %q: %w", driverName, err)
	}

	return &aclhelper.Checker{
		ID:       raw.Name,
		FieldIdx: fieldIdx,
		Driver:   driver,
		Action:   action,
		Notes:    notes,
		Enabled:  true,
	}, nil
}

func isEnabled(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "1", "true", "enable", "enabled":
		return true
	default:
		return false
	}
}
