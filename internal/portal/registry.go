// Package portal routes content declared in one part of a Bubble Tea model tree
// to a target declared somewhere else in the same tree.
//
// Injectors register content under a named channel; a Target on that channel
// renders the newest registration, or its own fallback when the channel is empty.
// Each Provider owns one isolated registry, replaced wholesale on every change.
package portal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Name identifies a channel.
type Name string

// DefaultName is the implicit channel of a portal created without explicit names.
const DefaultName Name = "default"

// Content is anything a Target can render.
type Content interface {
	View() string
}

// Text is static Content.
type Text string

// View implements Content.
func (t Text) View() string { return string(t) }

// Entry is one injector's registration on a channel.
// Entries are compared by pointer, never by value.
type Entry struct {
	ID      string
	Name    Name
	Content Content
}

// NewEntry allocates a fresh entry.
func NewEntry(name Name, content Content) *Entry {
	return &Entry{
		ID:      uuid.NewString(),
		Name:    name,
		Content: content,
	}
}

// Snapshot is an immutable view of every channel's stack, newest entry first.
// A channel with no entries is never present.
type Snapshot struct {
	channels map[Name][]*Entry
}

// EmptySnapshot returns a snapshot with no channels.
func EmptySnapshot() *Snapshot {
	return &Snapshot{channels: map[Name][]*Entry{}}
}

// Head returns the active entry of a channel, or nil.
func (s *Snapshot) Head(name Name) *Entry {
	if s == nil {
		return nil
	}
	stack := s.channels[name]
	if len(stack) == 0 {
		return nil
	}
	return stack[0]
}

// Stack returns a copy of the channel's entries, newest first.
func (s *Snapshot) Stack(name Name) []*Entry {
	if s == nil {
		return nil
	}
	stack := s.channels[name]
	if len(stack) == 0 {
		return nil
	}
	out := make([]*Entry, len(stack))
	copy(out, stack)
	return out
}

// Has reports whether the channel has at least one entry.
func (s *Snapshot) Has(name Name) bool {
	return s != nil && len(s.channels[name]) > 0
}

// Len returns the number of non-empty channels.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.channels)
}

// Names returns the non-empty channels in sorted order.
func (s *Snapshot) Names() []Name {
	if s == nil {
		return nil
	}
	names := make([]Name, 0, len(s.channels))
	for name := range s.channels {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Dump renders the snapshot as stable text, one line per entry.
//
//	header[0] 3f2c... "Dashboard"
//	header[1] 91aa... "Settings"
func (s *Snapshot) Dump() string {
	var sb strings.Builder
	for _, name := range s.Names() {
		for i, e := range s.channels[name] {
			fmt.Fprintf(&sb, "%s[%d] %s %q\n", name, i, shortID(e.ID), preview(e.Content))
		}
	}
	return sb.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func preview(c Content) string {
	if c == nil {
		return ""
	}
	v := c.View()
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		v = v[:i] + "…"
	}
	return v
}

// ActionType is the kind of registry transition.
type ActionType string

const (
	ActionAdd    ActionType = "add"
	ActionRemove ActionType = "remove"
)

// Action is one registry transition request.
type Action struct {
	Type  ActionType
	Name  Name
	Entry *Entry
}

// Add builds an add action.
func Add(name Name, e *Entry) Action {
	return Action{Type: ActionAdd, Name: name, Entry: e}
}

// Remove builds a remove action.
func Remove(name Name, e *Entry) Action {
	return Action{Type: ActionRemove, Name: name, Entry: e}
}

func (a Action) String() string {
	id := ""
	if a.Entry != nil {
		id = shortID(a.Entry.ID)
	}
	return fmt.Sprintf("%s(%s, %s)", a.Type, a.Name, id)
}

// Reduce applies a to s and returns the resulting snapshot.
// s is never modified. When nothing changes the same pointer is returned,
// and channels untouched by a keep their stack slices.
func Reduce(s *Snapshot, a Action) *Snapshot {
	if s == nil {
		s = EmptySnapshot()
	}
	if a.Entry == nil {
		return s
	}

	switch a.Type {
	case ActionAdd:
		old := s.channels[a.Name]
		stack := make([]*Entry, 0, len(old)+1)
		stack = append(stack, a.Entry)
		stack = append(stack, old...)
		return s.with(a.Name, stack)

	case ActionRemove:
		old := s.channels[a.Name]
		idx := -1
		for i, e := range old {
			if e == a.Entry {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s
		}
		stack := make([]*Entry, 0, len(old)-1)
		stack = append(stack, old[:idx]...)
		stack = append(stack, old[idx+1:]...)
		return s.with(a.Name, stack)

	default:
		return s
	}
}

// with copies the channel map, replacing or dropping one channel.
func (s *Snapshot) with(name Name, stack []*Entry) *Snapshot {
	next := make(map[Name][]*Entry, len(s.channels)+1)
	for k, v := range s.channels {
		next[k] = v
	}
	if len(stack) == 0 {
		delete(next, name)
	} else {
		next[name] = stack
	}
	return &Snapshot{channels: next}
}
