package model

import "strings"

// Transmuter rewrites a locator into zero or more replacement locators. An
// empty result means the locator is kept unchanged; a non-empty result is
// spliced in its place. Transmuters must leave locator types they do not
// own alone so chains can run in any registration order.
type Transmuter interface {
	Transmute(loc *Locator) ([]*Locator, error)
}

// Presentation is an ordered set of locators to display all at once plus
// the single screen extent they share.
type Presentation struct {
	Locators []*Locator
	Extent   *Extent

	typeSet       map[LocatorType]bool
	typeSetCached bool
}

// NewPresentation wraps locators in a presentation with no extent resolved
func NewPresentation(locators ...*Locator) *Presentation {
	return &Presentation{Locators: locators}
}

// PresentationFromString creates a presentation from a delimited list of
// locator strings.
func PresentationFromString(defs, delimiter string, extent *Extent) *Presentation {
	parts := strings.Split(defs, delimiter)
	locs := make([]*Locator, len(parts))
	for i, part := range parts {
		locs[i] = NewLocator(part)
	}
	return &Presentation{Locators: locs, Extent: extent}
}

// TypeSet returns the set of locator types in the presentation, cached
// until a transmuter changes the locator sequence.
func (p *Presentation) TypeSet() map[LocatorType]bool {
	if !p.typeSetCached {
		p.typeSet = make(map[LocatorType]bool, 2)
		for _, loc := range p.Locators {
			p.typeSet[loc.Type()] = true
		}
		p.typeSetCached = true
	}
	return p.typeSet
}

// ApplyTransmuter runs one transmuter over every locator, splicing any
// replacements in place. Untouched locators keep their position and
// identity; the type-set cache is invalidated only when something changed.
// On error the locator sequence is left as it was; replacements produced
// before the failure are released since the presentation never owns them.
func (p *Presentation) ApplyTransmuter(t Transmuter) error {
	changed := false
	updates := make([]*Locator, 0, len(p.Locators))
	var added []*Locator
	for _, loc := range p.Locators {
		repl, err := t.Transmute(loc)
		if err != nil {
			for _, r := range added {
				r.Deallocate()
			}
			return err
		}
		if len(repl) > 0 {
			updates = append(updates, repl...)
			added = append(added, repl...)
			changed = true
		} else {
			updates = append(updates, loc)
		}
	}
	if changed {
		p.Locators = updates
		p.typeSetCached = false
	}
	return nil
}

// Validate validates every locator, stopping at the first failure
func (p *Presentation) Validate() error {
	for _, loc := range p.Locators {
		if err := loc.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Deallocate releases every locator the presentation holds. It is safe to
// call after a partial failure; each locator releases at most once.
func (p *Presentation) Deallocate() {
	for _, loc := range p.Locators {
		loc.Deallocate()
	}
}
