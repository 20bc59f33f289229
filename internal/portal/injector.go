package portal

import (
	"context"
	"reflect"

	"github.com/zjrosen/portal/internal/log"
)

// Injector declares content for a channel. It renders nothing where it is
// declared; its content appears in the channel's Target instead.
//
// A host component calls Attach when it mounts, Update whenever its content
// or channel changes, and Detach when it unmounts. Each call is idempotent.
type Injector struct {
	portal   *Portal
	provider *Provider
	name     Name
	content  Content
	entry    *Entry
}

// Injector creates a detached injector in the provider scope carried by ctx.
func (p *Portal) Injector(ctx context.Context, name Name, content Content) (*Injector, error) {
	pr, err := p.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	resolved, err := p.Resolve(name)
	if err != nil {
		return nil, err
	}
	return &Injector{
		portal:   p,
		provider: pr,
		name:     resolved,
		content:  content,
	}, nil
}

// Name returns the channel the injector targets.
func (i *Injector) Name() Name { return i.name }

// Content returns the injector's current content.
func (i *Injector) Content() Content { return i.content }

// Attached reports whether the injector's content is registered.
func (i *Injector) Attached() bool { return i.entry != nil }

// Entry returns the registered entry, or nil when detached.
func (i *Injector) Entry() *Entry { return i.entry }

// Attach registers the content on the channel. It becomes the channel's
// active entry.
func (i *Injector) Attach() {
	if i.entry != nil {
		return
	}
	i.entry = NewEntry(i.name, i.content)
	log.Debug(log.CatPortal, "Injector attached", "channel", i.name, "entry", shortID(i.entry.ID))
	i.provider.store.Dispatch(context.Background(), Add(i.name, i.entry))
}

// Update changes the injector's channel and content. While attached, a change
// replaces the old entry with a new one in a single transition, so targets
// never observe the intermediate empty state.
func (i *Injector) Update(name Name, content Content) error {
	resolved, err := i.portal.Resolve(name)
	if err != nil {
		return err
	}
	if resolved == i.name && sameContent(i.content, content) {
		return nil
	}

	oldName, old := i.name, i.entry
	i.name, i.content = resolved, content
	if old == nil {
		return nil
	}

	i.entry = NewEntry(resolved, content)
	log.Debug(log.CatPortal, "Injector swapped",
		"from", oldName, "to", resolved,
		"old", shortID(old.ID), "new", shortID(i.entry.ID))
	i.provider.store.Dispatch(context.Background(),
		Remove(oldName, old),
		Add(resolved, i.entry),
	)
	return nil
}

// SetContent is Update on the current channel.
func (i *Injector) SetContent(content Content) {
	_ = i.Update(i.name, content)
}

// Detach unregisters the content. Detaching a detached injector does nothing.
func (i *Injector) Detach() {
	if i.entry == nil {
		return
	}
	old := i.entry
	i.entry = nil
	log.Debug(log.CatPortal, "Injector detached", "channel", i.name, "entry", shortID(old.ID))
	i.provider.store.Dispatch(context.Background(), Remove(i.name, old))
}

// View renders nothing.
func (i *Injector) View() string { return "" }

// sameContent reports whether a and b are the same content by identity:
// pointer-like values by address, other comparable values by ==.
// Slices, funcs and uncomparable values always count as new content.
func sameContent(a, b Content) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice, reflect.Func:
		return false
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
